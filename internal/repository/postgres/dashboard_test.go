package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// channelStatsSQL pins every total to a single-row subquery; sums that can
// see no rows must be COALESCEd.
var channelStatsSQL = sqlInOrder(
	"(SELECT count(*) FROM subscriptions WHERE channel_id = $1)",
	"(SELECT count(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1)",
	"(SELECT COALESCE(sum(views), 0)::bigint FROM videos WHERE owner_id = $1)",
	"(SELECT count(*) FROM videos WHERE owner_id = $1)",
)

func TestDashboardStore_ChannelStats(t *testing.T) {
	mock := newMock(t)
	store := NewDashboardStore(mock)
	channel := uuid.New()

	mock.ExpectQuery(channelStatsSQL).
		WithArgs(channel).
		WillReturnRows(pgxmock.NewRows([]string{"subs", "likes", "views", "videos"}).
			AddRow(int64(7), int64(30), int64(1200), int64(4)))

	st, err := store.ChannelStats(context.Background(), channel)
	require.NoError(t, err)
	assert.Equal(t, int64(7), st.TotalSubscribers)
	assert.Equal(t, int64(30), st.TotalLikes)
	assert.Equal(t, int64(1200), st.TotalViews)
	assert.Equal(t, int64(4), st.TotalVideos)
}

func TestDashboardStore_ChannelStats_EmptyChannel(t *testing.T) {
	mock := newMock(t)
	store := NewDashboardStore(mock)
	channel := uuid.New()

	mock.ExpectQuery(channelStatsSQL).
		WithArgs(channel).
		WillReturnRows(pgxmock.NewRows([]string{"subs", "likes", "views", "videos"}).
			AddRow(int64(0), int64(0), int64(0), int64(0)))

	st, err := store.ChannelStats(context.Background(), channel)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Zero(t, *st)
}

func TestVideoStore_ListByOwner(t *testing.T) {
	mock := newMock(t)
	store := NewVideoStore(mock)
	owner, video := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM videos WHERE owner_id`).
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(11)))
	mock.ExpectQuery(sqlInOrder(
		"FROM videos v",
		"WHERE v.owner_id = $1",
		"ORDER BY v.created_at DESC, v.id DESC",
		"LIMIT $2 OFFSET $3",
	)).
		WithArgs(owner, 10, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "description", "thumbnail_url", "video_file_url", "views", "duration", "is_published", "created_at",
		}).AddRow(video, "Oldest", "", "t.png", "v.mp4", int64(1), 3.0, false, now))

	items, total, err := store.ListByOwner(context.Background(), owner, models.PageRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsPublished)
}
