package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/streamhub/video-platform-go/internal/db/models"
	"github.com/streamhub/video-platform-go/internal/db/repository"
)

// DashboardService serves owner-facing channel analytics.
type DashboardService struct {
	stats repository.StatsRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(stats repository.StatsRepository) *DashboardService {
	return &DashboardService{stats: stats}
}

// Stats aggregates the actor's channel totals: views, content counts,
// subscribers and reactions received per content kind.
func (s *DashboardService) Stats(ctx context.Context, actor uuid.UUID) (*models.ChannelStats, error) {
	stats, err := s.stats.ChannelStats(ctx, actor)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load channel stats", Cause: err}
	}

	return stats, nil
}

// Videos retrieves the actor's own videos, published or not, with reaction
// and comment counts.
func (s *DashboardService) Videos(ctx context.Context, actor uuid.UUID) ([]*models.DashboardVideo, error) {
	videos, err := s.stats.ChannelVideos(ctx, actor)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load channel videos", Cause: err}
	}

	if videos == nil {
		videos = []*models.DashboardVideo{}
	}
	return videos, nil
}
