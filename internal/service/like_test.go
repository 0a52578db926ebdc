package service

import (
	"context"
	"errors"
	"testing"

	"vidtube/internal/model"
)

func newLikeServiceWith(likeRepo *mockLikeRepository, videoExists, commentExists, tweetExists bool) *LikeService {
	return NewLikeService(
		likeRepo,
		&mockVideoRepository{existsFn: func(ctx context.Context, id int64) (bool, error) { return videoExists, nil }},
		&mockCommentRepository{existsFn: func(ctx context.Context, id int64) (bool, error) { return commentExists, nil }},
		&mockTweetRepository{existsFn: func(ctx context.Context, id int64) (bool, error) { return tweetExists, nil }},
	)
}

func TestLikeService_Toggle_VideoOnThenOff(t *testing.T) {
	liked := false
	likeRepo := &mockLikeRepository{
		existsFn: func(ctx context.Context, userID int64, target model.LikeTarget) (bool, error) {
			return liked, nil
		},
		createFn: func(ctx context.Context, userID int64, target model.LikeTarget) (bool, error) {
			liked = true
			return true, nil
		},
		deleteFn: func(ctx context.Context, userID int64, target model.LikeTarget) (bool, error) {
			liked = false
			return true, nil
		},
	}
	svc := newLikeServiceWith(likeRepo, true, false, false)

	result, err := svc.Toggle(context.Background(), 1, model.VideoTarget(10))
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if result.State != model.ToggleOn {
		t.Errorf("state = %q, want on", result.State)
	}

	result, err = svc.Toggle(context.Background(), 1, model.VideoTarget(10))
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if result.State != model.ToggleOff {
		t.Errorf("state = %q, want off", result.State)
	}
}

func TestLikeService_Toggle_TargetMissing(t *testing.T) {
	likeRepo := &mockLikeRepository{}
	svc := newLikeServiceWith(likeRepo, false, false, false)

	for _, target := range []model.LikeTarget{
		model.VideoTarget(1),
		model.CommentTarget(2),
		model.TweetTarget(3),
	} {
		_, err := svc.Toggle(context.Background(), 1, target)
		if !errors.Is(err, model.ErrLikeTargetNotFound) {
			t.Errorf("%s: err = %v, want ErrLikeTargetNotFound", target.Kind, err)
		}
	}

	if likeRepo.createCalls != 0 || likeRepo.deleteCalls != 0 {
		t.Error("missing target must not touch the like store")
	}
}

func TestLikeService_Toggle_InvalidKind(t *testing.T) {
	svc := newLikeServiceWith(&mockLikeRepository{}, true, true, true)

	_, err := svc.Toggle(context.Background(), 1, model.LikeTarget{Kind: "channel", ID: 1})
	if !errors.Is(err, model.ErrInvalidLikeKind) {
		t.Errorf("err = %v, want ErrInvalidLikeKind", err)
	}
}

func TestLikeService_Toggle_CommentAndTweetKinds(t *testing.T) {
	var seen []model.LikeTarget
	likeRepo := &mockLikeRepository{
		createFn: func(ctx context.Context, userID int64, target model.LikeTarget) (bool, error) {
			seen = append(seen, target)
			return true, nil
		},
	}
	svc := newLikeServiceWith(likeRepo, false, true, true)

	if _, err := svc.Toggle(context.Background(), 1, model.CommentTarget(20)); err != nil {
		t.Fatalf("comment toggle: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), 1, model.TweetTarget(30)); err != nil {
		t.Fatalf("tweet toggle: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("creates = %d, want 2", len(seen))
	}
	if seen[0].Kind != model.LikeComment || seen[0].ID != 20 {
		t.Errorf("first target = %+v", seen[0])
	}
	if seen[1].Kind != model.LikeTweet || seen[1].ID != 30 {
		t.Errorf("second target = %+v", seen[1])
	}
}

func TestLikeService_GetLikedVideos_EmptyNotNil(t *testing.T) {
	svc := newLikeServiceWith(&mockLikeRepository{}, true, true, true)

	videos, err := svc.GetLikedVideos(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if videos == nil {
		t.Error("expected empty slice, got nil")
	}
}
