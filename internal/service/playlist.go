package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/apperr"
	"github.com/lalith-99/vidstream/internal/events"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/repository"
)

type PlaylistInput struct {
	Name        string `json:"name" validate:"notblank,max=120"`
	Description string `json:"description" validate:"notblank,max=1000"`
}

// PlaylistService owns playlists, their membership and their read models.
type PlaylistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	users     repository.UserRepository
	events    events.Publisher
}

// NewPlaylistService wires the service. A nil pub disables events.
func NewPlaylistService(
	playlists repository.PlaylistRepository,
	videos repository.VideoRepository,
	users repository.UserRepository,
	pub events.Publisher,
) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, users: users, events: orNop(pub)}
}

// CreatePlaylist creates an empty playlist owned by the requester.
func (s *PlaylistService) CreatePlaylist(ctx context.Context, requester uuid.UUID, in PlaylistInput) (*models.Playlist, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if err := requireIdentity(requester); err != nil {
		return nil, err
	}

	p, err := s.playlists.Create(ctx, requester, in.Name, in.Description)
	if err != nil {
		return nil, apperr.Persistence("failed to create playlist", err)
	}

	s.publish(ctx, events.PlaylistCreated, p, requester)
	return p, nil
}

// ListUserPlaylists pages through a user's playlists with their totals
// and cover thumbnail.
func (s *PlaylistService) ListUserPlaylists(ctx context.Context, rawUserID string, page models.PageRequest) (*models.Page[models.PlaylistView], error) {
	userID, err := parseID(rawUserID, "user")
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	items, total, err := s.playlists.ListByOwner(ctx, userID, page)
	if err != nil {
		return nil, apperr.Persistence("failed to fetch playlists", err)
	}
	result := models.NewPage(items, page, total)
	return &result, nil
}

// GetPlaylist returns the playlist with its owner and published videos.
func (s *PlaylistService) GetPlaylist(ctx context.Context, rawPlaylistID string) (*models.PlaylistDetail, error) {
	playlistID, err := parseID(rawPlaylistID, "playlist")
	if err != nil {
		return nil, err
	}

	d, err := s.playlists.GetDetail(ctx, playlistID)
	if err != nil {
		return nil, apperr.Persistence("failed to fetch playlist", err)
	}
	if d == nil {
		return nil, apperr.NotFound("playlist")
	}
	return d, nil
}

// UpdatePlaylist renames a playlist the requester owns.
func (s *PlaylistService) UpdatePlaylist(ctx context.Context, requester uuid.UUID, rawPlaylistID string, in PlaylistInput) (*models.Playlist, error) {
	playlistID, err := parseID(rawPlaylistID, "playlist")
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	if _, err := authorizeOwner(ctx, "playlist", playlistID, requester, s.playlists.GetByID,
		"you are not authorized to update this playlist"); err != nil {
		return nil, err
	}

	p, err := s.playlists.Update(ctx, playlistID, in.Name, in.Description)
	if err != nil {
		return nil, apperr.Persistence("failed to update playlist", err)
	}
	if p == nil {
		return nil, apperr.Persistence("failed to update playlist", nil)
	}

	s.publish(ctx, events.PlaylistUpdated, p, requester)
	return p, nil
}

// DeletePlaylist removes a playlist the requester owns.
func (s *PlaylistService) DeletePlaylist(ctx context.Context, requester uuid.UUID, rawPlaylistID string) error {
	playlistID, err := parseID(rawPlaylistID, "playlist")
	if err != nil {
		return err
	}
	p, err := authorizeOwner(ctx, "playlist", playlistID, requester, s.playlists.GetByID,
		"you are not authorized to delete this playlist")
	if err != nil {
		return err
	}

	deleted, err := s.playlists.Delete(ctx, playlistID)
	if err != nil {
		return apperr.Persistence("failed to delete playlist", err)
	}
	if !deleted {
		return apperr.Persistence("failed to delete playlist", nil)
	}

	s.events.Publish(ctx, events.New(events.PlaylistDeleted, events.UserTopic(p.OwnerID), p.ID, requester, nil))
	return nil
}

// AddVideo appends an existing video to a playlist the requester owns.
// Adding a video twice is a no-op.
func (s *PlaylistService) AddVideo(ctx context.Context, requester uuid.UUID, rawPlaylistID, rawVideoID string) (*models.Playlist, error) {
	return s.changeMembership(ctx, requester, rawPlaylistID, rawVideoID, true)
}

// RemoveVideo drops a video from a playlist the requester owns.
func (s *PlaylistService) RemoveVideo(ctx context.Context, requester uuid.UUID, rawPlaylistID, rawVideoID string) (*models.Playlist, error) {
	return s.changeMembership(ctx, requester, rawPlaylistID, rawVideoID, false)
}

func (s *PlaylistService) changeMembership(ctx context.Context, requester uuid.UUID, rawPlaylistID, rawVideoID string, add bool) (*models.Playlist, error) {
	playlistID, err := parseID(rawPlaylistID, "playlist")
	if err != nil {
		return nil, err
	}
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}

	verb := "remove video from"
	if add {
		verb = "add video to"
	}
	if _, err := authorizeOwner(ctx, "playlist", playlistID, requester, s.playlists.GetByID,
		"you are not authorized to "+verb+" this playlist"); err != nil {
		return nil, err
	}

	if add {
		v, err := s.videos.GetByID(ctx, videoID)
		if err != nil {
			return nil, apperr.Persistence("failed to load video", err)
		}
		if v == nil {
			return nil, apperr.NotFound("video")
		}
		if err := s.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
			return nil, apperr.Persistence("failed to "+verb+" playlist", err)
		}
	} else if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, apperr.Persistence("failed to "+verb+" playlist", err)
	}

	p, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, apperr.Persistence("failed to reload playlist", err)
	}
	if p == nil {
		return nil, apperr.Persistence("failed to "+verb+" playlist", nil)
	}

	t := events.PlaylistVideoRemoved
	if add {
		t = events.PlaylistVideoAdded
	}
	s.publish(ctx, t, p, requester)
	return p, nil
}

func (s *PlaylistService) publish(ctx context.Context, t events.Type, p *models.Playlist, actor uuid.UUID) {
	s.events.Publish(ctx, events.New(t, events.UserTopic(p.OwnerID), p.ID, actor, p))
}
