package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/apperr"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/repository"
)

// DashboardService reports on the requester's own channel.
type DashboardService struct {
	stats  repository.DashboardRepository
	videos repository.VideoRepository
}

// NewDashboardService wires the service.
func NewDashboardService(stats repository.DashboardRepository, videos repository.VideoRepository) *DashboardService {
	return &DashboardService{stats: stats, videos: videos}
}

// ChannelStats reports the requester's channel totals, all zero for an
// empty channel.
func (s *DashboardService) ChannelStats(ctx context.Context, requester uuid.UUID) (*models.ChannelStats, error) {
	if err := requireIdentity(requester); err != nil {
		return nil, err
	}

	st, err := s.stats.ChannelStats(ctx, requester)
	if err != nil {
		return nil, apperr.Persistence("failed to fetch channel stats", err)
	}
	if st == nil {
		st = &models.ChannelStats{}
	}
	return st, nil
}

// ChannelVideos pages through every video the requester uploaded,
// published or not.
func (s *DashboardService) ChannelVideos(ctx context.Context, requester uuid.UUID, page models.PageRequest) (*models.Page[models.ChannelVideo], error) {
	if err := requireIdentity(requester); err != nil {
		return nil, err
	}

	items, total, err := s.videos.ListByOwner(ctx, requester, page)
	if err != nil {
		return nil, apperr.Persistence("failed to fetch channel videos", err)
	}
	result := models.NewPage(items, page, total)
	return &result, nil
}
