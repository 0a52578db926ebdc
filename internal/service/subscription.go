package service

import (
	"context"
	"log"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// SubscriptionService implements the subscription half of the edge toggle.
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

// Toggle flips the (subscriber, channel) edge: present -> removed ("off"),
// absent -> created ("on"). Self-subscription is rejected before any store
// access. The find-then-act sequence is a fast path only; the storage
// uniqueness constraint decides races, and a create that lost the race is
// still reported as "on".
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID int64) (*model.ToggleResult, error) {
	if subscriberID == channelID {
		return nil, model.ErrCannotSubscribeSelf
	}

	exists, err := s.userRepo.Exists(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	subscribed, err := s.subscriptionRepo.Exists(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	if subscribed {
		// A concurrent unsubscribe may have removed the edge already; either
		// way the resulting state is "off".
		if _, err := s.subscriptionRepo.Delete(ctx, subscriberID, channelID); err != nil {
			return nil, err
		}
		log.Printf("[SubscriptionService] User %d unsubscribed from channel %d", subscriberID, channelID)
		return &model.ToggleResult{State: model.ToggleOff}, nil
	}

	inserted, err := s.subscriptionRepo.Create(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		log.Printf("[SubscriptionService] User %d already subscribed to channel %d (concurrent toggle)", subscriberID, channelID)
	} else {
		log.Printf("[SubscriptionService] User %d subscribed to channel %d", subscriberID, channelID)
	}

	return &model.ToggleResult{State: model.ToggleOn}, nil
}

// GetSubscribers lists the channel's subscribers, newest first.
func (s *SubscriptionService) GetSubscribers(ctx context.Context, channelID int64) ([]model.UserSummary, error) {
	exists, err := s.userRepo.Exists(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	subscribers, err := s.subscriptionRepo.GetSubscribers(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if subscribers == nil {
		subscribers = []model.UserSummary{}
	}
	return subscribers, nil
}

// GetSubscribedChannels lists the channels a user subscribes to.
func (s *SubscriptionService) GetSubscribedChannels(ctx context.Context, subscriberID int64) ([]model.UserSummary, error) {
	channels, err := s.subscriptionRepo.GetSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []model.UserSummary{}
	}
	return channels, nil
}
