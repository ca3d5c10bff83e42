package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/models"
)

// Conventions shared by every repository:
//
//   - Single-row lookups return nil, nil when the row does not exist.
//   - Update and Delete report whether a row was affected, so the caller
//     can tell "vanished between load and write" apart from a driver error.
//   - Listing methods take the requester so per-row flags (isLiked) can be
//     computed in the same query. uuid.Nil means anonymous.
//   - Listing methods return an empty slice, never nil, plus the total
//     number of rows matching the scope.
//   - A write rejected by a unique constraint wraps ErrDuplicate.

var ErrDuplicate = errors.New("duplicate key")

type UserRepository interface {
	Create(ctx context.Context, username, email, fullName, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type VideoRepository interface {
	GetByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error)

	// ListByOwner returns the dashboard projection of a channel's videos,
	// newest first, published or not.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page models.PageRequest) ([]models.ChannelVideo, int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*models.Comment, error)
	GetByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error)
	UpdateContent(ctx context.Context, commentID uuid.UUID, content string) (*models.Comment, error)
	Delete(ctx context.Context, commentID uuid.UUID) (bool, error)
	ListByVideo(ctx context.Context, videoID, requester uuid.UUID, page models.PageRequest) ([]models.CommentView, int64, error)
}

type TweetRepository interface {
	Create(ctx context.Context, ownerID uuid.UUID, content string) (*models.Tweet, error)
	GetByID(ctx context.Context, tweetID uuid.UUID) (*models.Tweet, error)
	UpdateContent(ctx context.Context, tweetID uuid.UUID, content string) (*models.Tweet, error)
	Delete(ctx context.Context, tweetID uuid.UUID) (bool, error)
	ListByOwner(ctx context.Context, ownerID, requester uuid.UUID, page models.PageRequest) ([]models.TweetView, int64, error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*models.Playlist, error)
	GetByID(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error)
	Update(ctx context.Context, playlistID uuid.UUID, name, description string) (*models.Playlist, error)
	Delete(ctx context.Context, playlistID uuid.UUID) (bool, error)

	// AddVideo is a no-op when the video is already a member.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	// RemoveVideo is a no-op when the video is not a member.
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error

	ListByOwner(ctx context.Context, ownerID uuid.UUID, page models.PageRequest) ([]models.PlaylistView, int64, error)
	GetDetail(ctx context.Context, playlistID uuid.UUID) (*models.PlaylistDetail, error)
}

type DashboardRepository interface {
	// ChannelStats never returns nil stats for an existing or missing
	// channel; absent rows count as zero.
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error)
}
