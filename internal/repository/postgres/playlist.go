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

// PlaylistStore implements repository.PlaylistRepository. Membership lives
// in playlist_videos, ordered by position.
type PlaylistStore struct {
	db DBTX
}

func NewPlaylistStore(db DBTX) *PlaylistStore {
	return &PlaylistStore{db: db}
}

// playlistColumns selects a playlist row from alias p together with its
// member video ids in insertion order.
const playlistColumns = `
	p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at,
	ARRAY(
		SELECT pv.video_id FROM playlist_videos pv
		WHERE pv.playlist_id = p.id
		ORDER BY pv.position
	)`

func scanPlaylist(row pgx.Row) (*models.Playlist, error) {
	var p models.Playlist
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.OwnerID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Videos,
	)
	if err != nil {
		return nil, err
	}
	if p.Videos == nil {
		p.Videos = make([]uuid.UUID, 0)
	}
	return &p, nil
}

// Create inserts an empty playlist.
func (s *PlaylistStore) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*models.Playlist, error) {
	defer observ.ObserveQuery("playlists.create", time.Now())

	query := `
		INSERT INTO playlists (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, owner_id, created_at, updated_at`

	var p models.Playlist
	err := s.db.QueryRow(ctx, query, name, description, ownerID).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.OwnerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	p.Videos = make([]uuid.UUID, 0)
	return &p, nil
}

// GetByID loads the playlist with its member video ids in position order.
func (s *PlaylistStore) GetByID(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error) {
	defer observ.ObserveQuery("playlists.get_by_id", time.Now())

	query := `SELECT ` + playlistColumns + ` FROM playlists p WHERE p.id = $1`

	p, err := scanPlaylist(s.db.QueryRow(ctx, query, playlistID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return p, nil
}

// Update sets name and description, returning nil, nil if the playlist
// vanished.
func (s *PlaylistStore) Update(ctx context.Context, playlistID uuid.UUID, name, description string) (*models.Playlist, error) {
	defer observ.ObserveQuery("playlists.update", time.Now())

	query := `
		WITH p AS (
			UPDATE playlists
			SET name = $2, description = $3, updated_at = now()
			WHERE id = $1
			RETURNING id, name, description, owner_id, created_at, updated_at
		)
		SELECT ` + playlistColumns + ` FROM p`

	p, err := scanPlaylist(s.db.QueryRow(ctx, query, playlistID, name, description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update playlist: %w", err)
	}
	return p, nil
}

// Delete removes the playlist; membership rows go with it (ON DELETE CASCADE).
func (s *PlaylistStore) Delete(ctx context.Context, playlistID uuid.UUID) (bool, error) {
	defer observ.ObserveQuery("playlists.delete", time.Now())

	tag, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, playlistID)
	if err != nil {
		return false, fmt.Errorf("delete playlist: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AddVideo appends a video. Adding an existing member inserts nothing and
// leaves updated_at alone.
func (s *PlaylistStore) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	defer observ.ObserveQuery("playlists.add_video", time.Now())

	query := `
		WITH added AS (
			INSERT INTO playlist_videos (playlist_id, video_id)
			VALUES ($1, $2)
			ON CONFLICT (playlist_id, video_id) DO NOTHING
			RETURNING playlist_id
		)
		UPDATE playlists SET updated_at = now()
		WHERE id IN (SELECT playlist_id FROM added)`

	if _, err := s.db.Exec(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("add playlist video: %w", err)
	}
	return nil
}

// RemoveVideo is a no-op when the video is not a member.
func (s *PlaylistStore) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	defer observ.ObserveQuery("playlists.remove_video", time.Now())

	query := `
		WITH removed AS (
			DELETE FROM playlist_videos
			WHERE playlist_id = $1 AND video_id = $2
			RETURNING playlist_id
		)
		UPDATE playlists SET updated_at = now()
		WHERE id IN (SELECT playlist_id FROM removed)`

	if _, err := s.db.Exec(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("remove playlist video: %w", err)
	}
	return nil
}

// playlistViewSelect projects alias p into a PlaylistView row. Totals and
// the thumbnail only consider published member videos that still exist.
const playlistViewSelect = `
	SELECT p.id, p.name, p.description, p.created_at, p.updated_at,
	       COALESCE(agg.total_videos, 0) AS total_videos,
	       COALESCE(agg.total_views, 0) AS total_views,
	       COALESCE(cover.thumbnail_url, '') AS thumbnail
	FROM playlists p
	LEFT JOIN LATERAL (
		SELECT count(*) AS total_videos, sum(v.views)::bigint AS total_views
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = p.id AND v.is_published
	) agg ON true
	LEFT JOIN LATERAL (
		SELECT v.thumbnail_url
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = p.id AND v.is_published
		ORDER BY pv.position
		LIMIT 1
	) cover ON true`

func scanPlaylistView(row pgx.Row) (models.PlaylistView, error) {
	var v models.PlaylistView
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Description,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.TotalVideos,
		&v.TotalViews,
		&v.Thumbnail,
	)
	return v, err
}

// ListByOwner returns a user's playlists as views, newest first.
func (s *PlaylistStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, page models.PageRequest) ([]models.PlaylistView, int64, error) {
	q := pageQuery{
		name:      "playlists.list_by_owner",
		count:     `SELECT count(*) FROM playlists WHERE owner_id = $1`,
		countArgs: []any{ownerID},
		list: playlistViewSelect + `
			WHERE p.owner_id = $1
			ORDER BY p.created_at DESC, p.id DESC
			LIMIT $2 OFFSET $3`,
		listArgs: []any{ownerID},
	}

	return paginate(ctx, s.db, q, page, func(rows pgx.Rows) (models.PlaylistView, error) {
		return scanPlaylistView(rows)
	})
}

// GetDetail returns nil, nil when the playlist does not exist.
func (s *PlaylistStore) GetDetail(ctx context.Context, playlistID uuid.UUID) (*models.PlaylistDetail, error) {
	defer observ.ObserveQuery("playlists.get_detail", time.Now())

	query := `
		SELECT pl.*, u.id, u.username, u.full_name, u.avatar_url
		FROM (` + playlistViewSelect + ` WHERE p.id = $1) pl
		JOIN playlists owned ON owned.id = pl.id
		LEFT JOIN users u ON u.id = owned.owner_id`

	var (
		d                          models.PlaylistDetail
		profileID                  pgtype.UUID
		username, fullName, avatar pgtype.Text
	)
	err := s.db.QueryRow(ctx, query, playlistID).Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.TotalVideos,
		&d.TotalViews,
		&d.Thumbnail,
		&profileID,
		&username,
		&fullName,
		&avatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get playlist detail: %w", err)
	}
	d.Owner = ownerProfile(profileID, username, fullName, avatar)

	videosQuery := `
		SELECT ` + channelVideoColumns("v") + `
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = $1 AND v.is_published
		ORDER BY pv.position`

	rows, err := s.db.Query(ctx, videosQuery, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist videos: %w", err)
	}
	defer rows.Close()

	d.Videos = make([]models.ChannelVideo, 0)
	for rows.Next() {
		v, err := scanChannelVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan playlist video: %w", err)
		}
		d.Videos = append(d.Videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist videos: %w", err)
	}

	return &d, nil
}
