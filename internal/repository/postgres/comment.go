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

// CommentStore implements repository.CommentRepository.
type CommentStore struct {
	db DBTX
}

func NewCommentStore(db DBTX) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, content, video_id, owner_id, created_at, updated_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID,
		&c.Content,
		&c.VideoID,
		&c.OwnerID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a comment and returns the stored row.
func (s *CommentStore) Create(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*models.Comment, error) {
	defer observ.ObserveQuery("comments.create", time.Now())

	query := `
		INSERT INTO comments (content, video_id, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	c, err := scanComment(s.db.QueryRow(ctx, query, content, videoID, ownerID))
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

// GetByID returns nil, nil when the comment does not exist.
func (s *CommentStore) GetByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	defer observ.ObserveQuery("comments.get_by_id", time.Now())

	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	c, err := scanComment(s.db.QueryRow(ctx, query, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

// UpdateContent returns nil, nil if the comment no longer exists.
func (s *CommentStore) UpdateContent(ctx context.Context, commentID uuid.UUID, content string) (*models.Comment, error) {
	defer observ.ObserveQuery("comments.update", time.Now())

	query := `
		UPDATE comments
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + commentColumns

	c, err := scanComment(s.db.QueryRow(ctx, query, commentID, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c, nil
}

// Delete reports whether a row was removed.
func (s *CommentStore) Delete(ctx context.Context, commentID uuid.UUID) (bool, error) {
	defer observ.ObserveQuery("comments.delete", time.Now())

	tag, err := s.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByVideo returns a video's comments with owner profile and like
// stats, newest first. The requester only affects is_liked.
func (s *CommentStore) ListByVideo(ctx context.Context, videoID, requester uuid.UUID, page models.PageRequest) ([]models.CommentView, int64, error) {
	q := pageQuery{
		name:      "comments.list_by_video",
		count:     `SELECT count(*) FROM comments WHERE video_id = $1`,
		countArgs: []any{videoID},
		list: `
			SELECT c.id, c.content, c.created_at,
			       COALESCE(lk.likes_count, 0), COALESCE(lk.is_liked, false),
			       u.id, u.username, u.full_name, u.avatar_url
			FROM comments c
			LEFT JOIN users u ON u.id = c.owner_id
			LEFT JOIN LATERAL (
				SELECT count(*) AS likes_count, bool_or(l.liked_by = $2) AS is_liked
				FROM likes l
				WHERE l.comment_id = c.id
			) lk ON true
			WHERE c.video_id = $1
			ORDER BY c.created_at DESC, c.id DESC
			LIMIT $3 OFFSET $4`,
		listArgs: []any{videoID, requester},
	}

	return paginate(ctx, s.db, q, page, func(rows pgx.Rows) (models.CommentView, error) {
		var (
			v                          models.CommentView
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
