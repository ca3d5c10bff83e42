package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/events"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, username, email, fullName, passwordHash string) (*models.User, error) {
	args := m.Called(ctx, username, email, fullName, passwordHash)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

type mockVideoRepo struct{ mock.Mock }

func (m *mockVideoRepo) GetByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, videoID)
	v, _ := args.Get(0).(*models.Video)
	return v, args.Error(1)
}

func (m *mockVideoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, page models.PageRequest) ([]models.ChannelVideo, int64, error) {
	args := m.Called(ctx, ownerID, page)
	items, _ := args.Get(0).([]models.ChannelVideo)
	return items, args.Get(1).(int64), args.Error(2)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Create(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*models.Comment, error) {
	args := m.Called(ctx, videoID, ownerID, content)
	c, _ := args.Get(0).(*models.Comment)
	return c, args.Error(1)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	c, _ := args.Get(0).(*models.Comment)
	return c, args.Error(1)
}

func (m *mockCommentRepo) UpdateContent(ctx context.Context, commentID uuid.UUID, content string) (*models.Comment, error) {
	args := m.Called(ctx, commentID, content)
	c, _ := args.Get(0).(*models.Comment)
	return c, args.Error(1)
}

func (m *mockCommentRepo) Delete(ctx context.Context, commentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCommentRepo) ListByVideo(ctx context.Context, videoID, requester uuid.UUID, page models.PageRequest) ([]models.CommentView, int64, error) {
	args := m.Called(ctx, videoID, requester, page)
	items, _ := args.Get(0).([]models.CommentView)
	return items, args.Get(1).(int64), args.Error(2)
}

type mockTweetRepo struct{ mock.Mock }

func (m *mockTweetRepo) Create(ctx context.Context, ownerID uuid.UUID, content string) (*models.Tweet, error) {
	args := m.Called(ctx, ownerID, content)
	t, _ := args.Get(0).(*models.Tweet)
	return t, args.Error(1)
}

func (m *mockTweetRepo) GetByID(ctx context.Context, tweetID uuid.UUID) (*models.Tweet, error) {
	args := m.Called(ctx, tweetID)
	t, _ := args.Get(0).(*models.Tweet)
	return t, args.Error(1)
}

func (m *mockTweetRepo) UpdateContent(ctx context.Context, tweetID uuid.UUID, content string) (*models.Tweet, error) {
	args := m.Called(ctx, tweetID, content)
	t, _ := args.Get(0).(*models.Tweet)
	return t, args.Error(1)
}

func (m *mockTweetRepo) Delete(ctx context.Context, tweetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tweetID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTweetRepo) ListByOwner(ctx context.Context, ownerID, requester uuid.UUID, page models.PageRequest) ([]models.TweetView, int64, error) {
	args := m.Called(ctx, ownerID, requester, page)
	items, _ := args.Get(0).([]models.TweetView)
	return items, args.Get(1).(int64), args.Error(2)
}

type mockPlaylistRepo struct{ mock.Mock }

func (m *mockPlaylistRepo) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*models.Playlist, error) {
	args := m.Called(ctx, ownerID, name, description)
	p, _ := args.Get(0).(*models.Playlist)
	return p, args.Error(1)
}

func (m *mockPlaylistRepo) GetByID(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error) {
	args := m.Called(ctx, playlistID)
	p, _ := args.Get(0).(*models.Playlist)
	return p, args.Error(1)
}

func (m *mockPlaylistRepo) Update(ctx context.Context, playlistID uuid.UUID, name, description string) (*models.Playlist, error) {
	args := m.Called(ctx, playlistID, name, description)
	p, _ := args.Get(0).(*models.Playlist)
	return p, args.Error(1)
}

func (m *mockPlaylistRepo) Delete(ctx context.Context, playlistID uuid.UUID) (bool, error) {
	args := m.Called(ctx, playlistID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	return m.Called(ctx, playlistID, videoID).Error(0)
}

func (m *mockPlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	return m.Called(ctx, playlistID, videoID).Error(0)
}

func (m *mockPlaylistRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, page models.PageRequest) ([]models.PlaylistView, int64, error) {
	args := m.Called(ctx, ownerID, page)
	items, _ := args.Get(0).([]models.PlaylistView)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockPlaylistRepo) GetDetail(ctx context.Context, playlistID uuid.UUID) (*models.PlaylistDetail, error) {
	args := m.Called(ctx, playlistID)
	d, _ := args.Get(0).(*models.PlaylistDetail)
	return d, args.Error(1)
}

type mockDashboardRepo struct{ mock.Mock }

func (m *mockDashboardRepo) ChannelStats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error) {
	args := m.Called(ctx, channelID)
	st, _ := args.Get(0).(*models.ChannelStats)
	return st, args.Error(1)
}

// recorder collects published events.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
