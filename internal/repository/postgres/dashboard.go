package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/observ"
)

// DashboardStore computes channel-level aggregates.
type DashboardStore struct {
	db DBTX
}

func NewDashboardStore(db DBTX) *DashboardStore {
	return &DashboardStore{db: db}
}

// ChannelStats computes all four totals in one round trip. Each scalar
// subquery yields exactly one row, so an empty channel scans as zeros.
func (s *DashboardStore) ChannelStats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error) {
	defer observ.ObserveQuery("dashboard.channel_stats", time.Now())

	query := `
		SELECT
			(SELECT count(*) FROM subscriptions WHERE channel_id = $1),
			(SELECT count(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1),
			(SELECT COALESCE(sum(views), 0)::bigint FROM videos WHERE owner_id = $1),
			(SELECT count(*) FROM videos WHERE owner_id = $1)`

	var st models.ChannelStats
	err := s.db.QueryRow(ctx, query, channelID).Scan(
		&st.TotalSubscribers,
		&st.TotalLikes,
		&st.TotalViews,
		&st.TotalVideos,
	)
	if err != nil {
		return nil, fmt.Errorf("channel stats: %w", err)
	}
	return &st, nil
}
