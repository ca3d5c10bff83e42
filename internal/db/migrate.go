package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Execer is the subset of pgxpool.Pool that Migrate needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// schema is applied in order on every start. Each statement is idempotent.
var schema = []struct {
	name string
	sql  string
}{
	{"extension pgcrypto", `CREATE EXTENSION IF NOT EXISTS pgcrypto`},
	{"table users", `
		CREATE TABLE IF NOT EXISTS users (
			id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			username        TEXT NOT NULL UNIQUE,
			email           TEXT NOT NULL UNIQUE,
			full_name       TEXT NOT NULL,
			avatar_url      TEXT NOT NULL DEFAULT '',
			cover_image_url TEXT NOT NULL DEFAULT '',
			password_hash   TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{"table videos", `
		CREATE TABLE IF NOT EXISTS videos (
			id             uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_id       uuid NOT NULL REFERENCES users(id),
			title          TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			video_file_url TEXT NOT NULL,
			thumbnail_url  TEXT NOT NULL DEFAULT '',
			duration       DOUBLE PRECISION NOT NULL DEFAULT 0,
			views          BIGINT NOT NULL DEFAULT 0,
			is_published   BOOLEAN NOT NULL DEFAULT TRUE,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{"index videos owner", `CREATE INDEX IF NOT EXISTS idx_videos_owner_created ON videos (owner_id, created_at DESC)`},
	{"table comments", `
		CREATE TABLE IF NOT EXISTS comments (
			id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			content    TEXT NOT NULL,
			video_id   uuid NOT NULL,
			owner_id   uuid NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{"index comments video", `CREATE INDEX IF NOT EXISTS idx_comments_video_created ON comments (video_id, created_at DESC)`},
	{"table tweets", `
		CREATE TABLE IF NOT EXISTS tweets (
			id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			content    TEXT NOT NULL,
			owner_id   uuid NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{"index tweets owner", `CREATE INDEX IF NOT EXISTS idx_tweets_owner_created ON tweets (owner_id, created_at DESC)`},
	{"table playlists", `
		CREATE TABLE IF NOT EXISTS playlists (
			id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			name        TEXT NOT NULL,
			description TEXT NOT NULL,
			owner_id    uuid NOT NULL REFERENCES users(id),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{"table playlist_videos", `
		CREATE TABLE IF NOT EXISTS playlist_videos (
			playlist_id uuid NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			video_id    uuid NOT NULL,
			position    BIGSERIAL,
			added_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (playlist_id, video_id)
		)`},
	{"table likes", `
		CREATE TABLE IF NOT EXISTS likes (
			id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			comment_id uuid,
			tweet_id   uuid,
			video_id   uuid,
			liked_by   uuid NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CHECK (num_nonnulls(comment_id, tweet_id, video_id) = 1)
		)`},
	{"index likes comment", `CREATE INDEX IF NOT EXISTS idx_likes_comment ON likes (comment_id) WHERE comment_id IS NOT NULL`},
	{"index likes tweet", `CREATE INDEX IF NOT EXISTS idx_likes_tweet ON likes (tweet_id) WHERE tweet_id IS NOT NULL`},
	{"index likes video", `CREATE INDEX IF NOT EXISTS idx_likes_video ON likes (video_id) WHERE video_id IS NOT NULL`},
	{"table subscriptions", `
		CREATE TABLE IF NOT EXISTS subscriptions (
			id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			subscriber_id uuid NOT NULL REFERENCES users(id),
			channel_id    uuid NOT NULL REFERENCES users(id),
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (subscriber_id, channel_id)
		)`},
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db Execer, logger *zap.Logger) error {
	for _, step := range schema {
		if _, err := db.Exec(ctx, step.sql); err != nil {
			return fmt.Errorf("migrate %s: %w", step.name, err)
		}
	}
	logger.Info("schema up to date", zap.Int("steps", len(schema)))
	return nil
}
