package service

import (
	"context"
	"errors"
	"testing"

	"vidtube/internal/model"
)

func existingChannel() *mockUserRepository {
	return &mockUserRepository{
		existsFn: func(ctx context.Context, id int64) (bool, error) {
			return true, nil
		},
	}
}

func TestSubscriptionService_Toggle_Self(t *testing.T) {
	subRepo := &mockSubscriptionRepository{}
	svc := NewSubscriptionService(subRepo, existingChannel())

	_, err := svc.Toggle(context.Background(), 5, 5)
	if !errors.Is(err, model.ErrCannotSubscribeSelf) {
		t.Fatalf("err = %v, want ErrCannotSubscribeSelf", err)
	}

	// Rejected before any store access.
	if subRepo.createCalls != 0 || subRepo.deleteCalls != 0 {
		t.Error("self-toggle must not touch the store")
	}
}

func TestSubscriptionService_Toggle_UnknownChannel(t *testing.T) {
	svc := NewSubscriptionService(&mockSubscriptionRepository{}, &mockUserRepository{})

	_, err := svc.Toggle(context.Background(), 1, 2)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestSubscriptionService_Toggle_OnThenOff(t *testing.T) {
	subscribed := false
	subRepo := &mockSubscriptionRepository{
		existsFn: func(ctx context.Context, subscriberID, channelID int64) (bool, error) {
			return subscribed, nil
		},
		createFn: func(ctx context.Context, subscriberID, channelID int64) (bool, error) {
			subscribed = true
			return true, nil
		},
		deleteFn: func(ctx context.Context, subscriberID, channelID int64) (bool, error) {
			subscribed = false
			return true, nil
		},
	}
	svc := NewSubscriptionService(subRepo, existingChannel())

	result, err := svc.Toggle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if result.State != model.ToggleOn {
		t.Errorf("first toggle state = %q, want on", result.State)
	}

	result, err = svc.Toggle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if result.State != model.ToggleOff {
		t.Errorf("second toggle state = %q, want off", result.State)
	}
}

func TestSubscriptionService_Toggle_LostInsertRaceStillOn(t *testing.T) {
	// Between the existence check and the insert, a concurrent request
	// created the edge. The insert reports no rows; the state is still on.
	subRepo := &mockSubscriptionRepository{
		existsFn: func(ctx context.Context, subscriberID, channelID int64) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, subscriberID, channelID int64) (bool, error) {
			return false, nil
		},
	}
	svc := NewSubscriptionService(subRepo, existingChannel())

	result, err := svc.Toggle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if result.State != model.ToggleOn {
		t.Errorf("state = %q, want on", result.State)
	}
}

func TestSubscriptionService_Toggle_ConcurrentDeleteStillOff(t *testing.T) {
	subRepo := &mockSubscriptionRepository{
		existsFn: func(ctx context.Context, subscriberID, channelID int64) (bool, error) {
			return true, nil
		},
		deleteFn: func(ctx context.Context, subscriberID, channelID int64) (bool, error) {
			return false, nil // edge already gone
		},
	}
	svc := NewSubscriptionService(subRepo, existingChannel())

	result, err := svc.Toggle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if result.State != model.ToggleOff {
		t.Errorf("state = %q, want off", result.State)
	}
}

func TestSubscriptionService_GetSubscribers_UnknownChannel(t *testing.T) {
	svc := NewSubscriptionService(&mockSubscriptionRepository{}, &mockUserRepository{})

	_, err := svc.GetSubscribers(context.Background(), 99)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestSubscriptionService_GetSubscribers_EmptyNotNil(t *testing.T) {
	svc := NewSubscriptionService(&mockSubscriptionRepository{}, existingChannel())

	subscribers, err := svc.GetSubscribers(context.Background(), 2)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if subscribers == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(subscribers) != 0 {
		t.Errorf("len = %d, want 0", len(subscribers))
	}
}
