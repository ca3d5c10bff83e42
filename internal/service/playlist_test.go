package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/apperr"
	"github.com/lalith-99/vidstream/internal/events"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type playlistFixture struct {
	playlists *mockPlaylistRepo
	videos    *mockVideoRepo
	users     *mockUserRepo
	events    *recorder
	svc       *PlaylistService
}

func newPlaylistFixture(t *testing.T) *playlistFixture {
	f := &playlistFixture{
		playlists: &mockPlaylistRepo{},
		videos:    &mockVideoRepo{},
		users:     &mockUserRepo{},
		events:    &recorder{},
	}
	f.svc = NewPlaylistService(f.playlists, f.videos, f.users, f.events)
	t.Cleanup(func() {
		f.playlists.AssertExpectations(t)
		f.videos.AssertExpectations(t)
		f.users.AssertExpectations(t)
	})
	return f
}

func TestCreatePlaylist(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("requires name and description", func(t *testing.T) {
		f := newPlaylistFixture(t)
		_, err := f.svc.CreatePlaylist(ctx, owner, PlaylistInput{Name: "Mix"})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("created empty", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("Create", ctx, owner, "Mix", "Best of").
			Return(&models.Playlist{ID: uuid.New(), Name: "Mix", Description: "Best of", OwnerID: owner, Videos: []uuid.UUID{}}, nil)

		p, err := f.svc.CreatePlaylist(ctx, owner, PlaylistInput{Name: "Mix", Description: "Best of"})
		require.NoError(t, err)
		assert.Empty(t, p.Videos)
		assert.Equal(t, []events.Type{events.PlaylistCreated}, f.events.types())
	})
}

func TestUpdatePlaylist_NonOwner(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	f := newPlaylistFixture(t)
	f.playlists.On("GetByID", ctx, id).Return(&models.Playlist{ID: id, OwnerID: uuid.New()}, nil)

	_, err := f.svc.UpdatePlaylist(ctx, uuid.New(), id.String(), PlaylistInput{Name: "n", Description: "d"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	f.playlists.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePlaylist(t *testing.T) {
	ctx := context.Background()
	id, owner := uuid.New(), uuid.New()

	f := newPlaylistFixture(t)
	f.playlists.On("GetByID", ctx, id).Return(&models.Playlist{ID: id, OwnerID: owner}, nil)
	f.playlists.On("Delete", ctx, id).Return(true, nil)

	require.NoError(t, f.svc.DeletePlaylist(ctx, owner, id.String()))
	assert.Equal(t, []events.Type{events.PlaylistDeleted}, f.events.types())
}

func TestAddVideo(t *testing.T) {
	ctx := context.Background()
	playlistID, videoID, owner := uuid.New(), uuid.New(), uuid.New()
	before := &models.Playlist{ID: playlistID, OwnerID: owner, Videos: []uuid.UUID{}}
	after := &models.Playlist{ID: playlistID, OwnerID: owner, Videos: []uuid.UUID{videoID}}

	t.Run("adds and returns the playlist", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("GetByID", ctx, playlistID).Return(before, nil).Once()
		f.videos.On("GetByID", ctx, videoID).Return(&models.Video{ID: videoID}, nil)
		f.playlists.On("AddVideo", ctx, playlistID, videoID).Return(nil)
		f.playlists.On("GetByID", ctx, playlistID).Return(after, nil).Once()

		p, err := f.svc.AddVideo(ctx, owner, playlistID.String(), videoID.String())
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{videoID}, p.Videos)
		assert.Equal(t, []events.Type{events.PlaylistVideoAdded}, f.events.types())
	})

	t.Run("adding twice keeps one membership", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("GetByID", ctx, playlistID).Return(after, nil)
		f.videos.On("GetByID", ctx, videoID).Return(&models.Video{ID: videoID}, nil)
		f.playlists.On("AddVideo", ctx, playlistID, videoID).Return(nil)

		p, err := f.svc.AddVideo(ctx, owner, playlistID.String(), videoID.String())
		require.NoError(t, err)
		assert.Len(t, p.Videos, 1)
	})

	t.Run("missing video", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("GetByID", ctx, playlistID).Return(before, nil)
		f.videos.On("GetByID", ctx, videoID).Return(nil, nil)

		_, err := f.svc.AddVideo(ctx, owner, playlistID.String(), videoID.String())
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		f.playlists.AssertNotCalled(t, "AddVideo", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed video id", func(t *testing.T) {
		f := newPlaylistFixture(t)
		_, err := f.svc.AddVideo(ctx, owner, playlistID.String(), "nope")
		assert.True(t, apperr.Is(err, apperr.KindInvalidIdentifier))
	})

	t.Run("non-owner", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("GetByID", ctx, playlistID).Return(before, nil)

		_, err := f.svc.AddVideo(ctx, uuid.New(), playlistID.String(), videoID.String())
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	})
}

func TestRemoveVideo(t *testing.T) {
	ctx := context.Background()
	playlistID, videoID, owner := uuid.New(), uuid.New(), uuid.New()
	p := &models.Playlist{ID: playlistID, OwnerID: owner, Videos: []uuid.UUID{}}

	t.Run("non-member is a no-op", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("GetByID", ctx, playlistID).Return(p, nil)
		f.playlists.On("RemoveVideo", ctx, playlistID, videoID).Return(nil)

		got, err := f.svc.RemoveVideo(ctx, owner, playlistID.String(), videoID.String())
		require.NoError(t, err)
		assert.Empty(t, got.Videos)
		f.videos.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("GetByID", ctx, playlistID).Return(p, nil)
		f.playlists.On("RemoveVideo", ctx, playlistID, videoID).Return(errors.New("boom"))

		_, err := f.svc.RemoveVideo(ctx, owner, playlistID.String(), videoID.String())
		assert.True(t, apperr.Is(err, apperr.KindPersistence))
		assert.Empty(t, f.events.types())
	})
}

func TestGetPlaylist(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("missing", func(t *testing.T) {
		f := newPlaylistFixture(t)
		f.playlists.On("GetDetail", ctx, id).Return(nil, nil)

		_, err := f.svc.GetPlaylist(ctx, id.String())
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("found", func(t *testing.T) {
		f := newPlaylistFixture(t)
		d := &models.PlaylistDetail{PlaylistView: models.PlaylistView{ID: id, TotalVideos: 2}, Videos: []models.ChannelVideo{{}, {}}}
		f.playlists.On("GetDetail", ctx, id).Return(d, nil)

		got, err := f.svc.GetPlaylist(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.TotalVideos)
	})
}

func TestListUserPlaylists(t *testing.T) {
	ctx := context.Background()
	user := uuid.New()
	page := models.PageRequest{Page: 1, Limit: 10}

	f := newPlaylistFixture(t)
	f.users.On("GetByID", ctx, user).Return(&models.User{ID: user}, nil)
	f.playlists.On("ListByOwner", ctx, user, page).
		Return([]models.PlaylistView{{ID: uuid.New(), Thumbnail: ""}}, int64(1), nil)

	res, err := f.svc.ListUserPlaylists(ctx, user.String(), page)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "", res.Items[0].Thumbnail)
	assert.Equal(t, int64(1), res.TotalPages)
}
