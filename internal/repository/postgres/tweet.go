package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/observ"
)

// TweetStore implements repository.TweetRepository.
type TweetStore struct {
	db DBTX
}

func NewTweetStore(db DBTX) *TweetStore {
	return &TweetStore{db: db}
}

const tweetColumns = `id, content, owner_id, created_at, updated_at`

func scanTweet(row pgx.Row) (*models.Tweet, error) {
	var t models.Tweet
	if err := row.Scan(&t.ID, &t.Content, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a tweet and returns the stored row.
func (s *TweetStore) Create(ctx context.Context, ownerID uuid.UUID, content string) (*models.Tweet, error) {
	defer observ.ObserveQuery("tweets.create", time.Now())

	query := `
		INSERT INTO tweets (content, owner_id)
		VALUES ($1, $2)
		RETURNING ` + tweetColumns

	t, err := scanTweet(s.db.QueryRow(ctx, query, content, ownerID))
	if err != nil {
		return nil, fmt.Errorf("insert tweet: %w", err)
	}
	return t, nil
}

// GetByID returns nil, nil when the tweet does not exist.
func (s *TweetStore) GetByID(ctx context.Context, tweetID uuid.UUID) (*models.Tweet, error) {
	defer observ.ObserveQuery("tweets.get_by_id", time.Now())

	t, err := scanTweet(s.db.QueryRow(ctx, `SELECT `+tweetColumns+` FROM tweets WHERE id = $1`, tweetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tweet: %w", err)
	}
	return t, nil
}

// UpdateContent returns nil, nil if the tweet vanished after it was loaded.
func (s *TweetStore) UpdateContent(ctx context.Context, tweetID uuid.UUID, content string) (*models.Tweet, error) {
	defer observ.ObserveQuery("tweets.update", time.Now())

	query := `
		UPDATE tweets
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + tweetColumns

	t, err := scanTweet(s.db.QueryRow(ctx, query, tweetID, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	return t, nil
}

// Delete reports whether a row was removed.
func (s *TweetStore) Delete(ctx context.Context, tweetID uuid.UUID) (bool, error) {
	defer observ.ObserveQuery("tweets.delete", time.Now())

	tag, err := s.db.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, tweetID)
	if err != nil {
		return false, fmt.Errorf("delete tweet: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByOwner returns a user's tweets with owner profile and like stats,
// newest first.
func (s *TweetStore) ListByOwner(ctx context.Context, ownerID, requester uuid.UUID, page models.PageRequest) ([]models.TweetView, int64, error) {
	q := pageQuery{
		name:      "tweets.list_by_owner",
		count:     `SELECT count(*) FROM tweets WHERE owner_id = $1`,
		countArgs: []any{ownerID},
		list: `
			SELECT t.id, t.content, t.created_at,
			       COALESCE(lk.likes_count, 0), COALESCE(lk.is_liked, false),
			       u.id, u.username, u.full_name, u.avatar_url
			FROM tweets t
			LEFT JOIN users u ON u.id = t.owner_id
			LEFT JOIN LATERAL (
				SELECT count(*) AS likes_count, bool_or(l.liked_by = $2) AS is_liked
				FROM likes l
				WHERE l.tweet_id = t.id
			) lk ON true
			WHERE t.owner_id = $1
			ORDER BY t.created_at DESC, t.id DESC
			LIMIT $3 OFFSET $4`,
		listArgs: []any{ownerID, requester},
	}

	return paginate(ctx, s.db, q, page, func(rows pgx.Rows) (models.TweetView, error) {
		var (
			v                          models.TweetView
			profileID                  pgtype.UUID
			username, fullName, avatar pgtype.Text
		)
		err := rows.Scan(
			&v.ID,
			&v.Content,
			&v.CreatedAt,
			&v.LikesCount,
			&v.IsLiked,
			&profileID,
			&username,
			&fullName,
			&avatar,
		)
		v.Owner = ownerProfile(profileID, username, fullName, avatar)
		return v, err
	})
}
