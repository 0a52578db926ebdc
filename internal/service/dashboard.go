package service

import (
	"context"
	"fmt"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// DashboardService computes channel statistics at read time. Nothing is
// cached; every call counts against the live tables.
type DashboardService struct {
	videoRepo        repository.VideoRepository
	subscriptionRepo repository.SubscriptionRepository
	likeRepo         repository.LikeRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(videoRepo repository.VideoRepository, subscriptionRepo repository.SubscriptionRepository, likeRepo repository.LikeRepository) *DashboardService {
	return &DashboardService{
		videoRepo:        videoRepo,
		subscriptionRepo: subscriptionRepo,
		likeRepo:         likeRepo,
	}
}

// GetChannelStats aggregates totals for the channel owner's dashboard.
func (s *DashboardService) GetChannelStats(ctx context.Context, channelID int64) (*model.ChannelStats, error) {
	totalVideos, err := s.videoRepo.CountByOwner(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("count videos: %w", err)
	}

	totalViews, err := s.videoRepo.SumViewsByOwner(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("sum views: %w", err)
	}

	totalSubscribers, err := s.subscriptionRepo.CountSubscribers(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("count subscribers: %w", err)
	}

	totalLikes, err := s.likeRepo.CountForVideosOwnedBy(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	return &model.ChannelStats{
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalSubscribers: totalSubscribers,
		TotalLikes:       totalLikes,
	}, nil
}

// GetChannelVideos lists every video the channel owner has uploaded,
// published or not.
func (s *DashboardService) GetChannelVideos(ctx context.Context, channelID int64) ([]model.Video, error) {
	videos, err := s.videoRepo.ListByOwner(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("list channel videos: %w", err)
	}
	if videos == nil {
		videos = []model.Video{}
	}
	return videos, nil
}
