package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/observ"
)

// VideoStore reads videos. Uploading is out of scope, so it has no writes.
type VideoStore struct {
	db DBTX
}

func NewVideoStore(db DBTX) *VideoStore {
	return &VideoStore{db: db}
}

// GetByID returns nil, nil when the video does not exist.
func (s *VideoStore) GetByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	defer observ.ObserveQuery("videos.get_by_id", time.Now())

	query := `
		SELECT id, owner_id, title, description, video_file_url, thumbnail_url,
		       duration, views, is_published, created_at
		FROM videos
		WHERE id = $1`

	var v models.Video
	err := s.db.QueryRow(ctx, query, videoID).Scan(
		&v.ID,
		&v.OwnerID,
		&v.Title,
		&v.Description,
		&v.VideoFileURL,
		&v.ThumbnailURL,
		&v.Duration,
		&v.Views,
		&v.IsPublished,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get video: %w", err)
	}
	return &v, nil
}

// ListByOwner returns a channel's videos, newest first, including
// unpublished ones.
func (s *VideoStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, page models.PageRequest) ([]models.ChannelVideo, int64, error) {
	q := pageQuery{
		name:      "videos.list_by_owner",
		count:     `SELECT count(*) FROM videos WHERE owner_id = $1`,
		countArgs: []any{ownerID},
		list: `
			SELECT ` + channelVideoColumns("v") + `
			FROM videos v
			WHERE v.owner_id = $1
			ORDER BY v.created_at DESC, v.id DESC
			LIMIT $2 OFFSET $3`,
		listArgs: []any{ownerID},
	}

	return paginate(ctx, s.db, q, page, func(rows pgx.Rows) (models.ChannelVideo, error) {
		return scanChannelVideo(rows)
	})
}

func channelVideoColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.title, %[1]s.description, %[1]s.thumbnail_url, %[1]s.video_file_url,
		%[1]s.views, %[1]s.duration, %[1]s.is_published, %[1]s.created_at`, alias)
}

func scanChannelVideo(row pgx.Row) (models.ChannelVideo, error) {
	var v models.ChannelVideo
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.Thumbnail,
		&v.VideoFile,
		&v.Views,
		&v.Duration,
		&v.IsPublished,
		&v.CreatedAt,
	)
	return v, err
}
