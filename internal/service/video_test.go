package service

import (
	"context"
	"errors"
	"testing"

	"vidtube/internal/model"
)

func ownedVideoRepo(ownerID int64) *mockVideoRepository {
	return &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) {
			return &model.Video{ID: id, OwnerID: ownerID, Title: "t", IsPublished: true}, nil
		},
	}
}

func TestVideoService_List_DefaultsAndCap(t *testing.T) {
	videoRepo := &mockVideoRepository{}
	svc := NewVideoService(videoRepo, nil, nil)

	// Zero values fall back to defaults.
	resp, err := svc.List(context.Background(), model.VideoListQuery{})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if resp.Page != model.DefaultPage || resp.Limit != model.DefaultLimit {
		t.Errorf("page/limit = %d/%d, want %d/%d", resp.Page, resp.Limit, model.DefaultPage, model.DefaultLimit)
	}
	if resp.Videos == nil {
		t.Error("expected empty slice, got nil")
	}

	// Negative values fall back too.
	resp, err = svc.List(context.Background(), model.VideoListQuery{Page: -3, Limit: -1})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if resp.Page != model.DefaultPage || resp.Limit != model.DefaultLimit {
		t.Errorf("negative paging not defaulted: %d/%d", resp.Page, resp.Limit)
	}

	// Oversized limit is capped.
	resp, err = svc.List(context.Background(), model.VideoListQuery{Page: 2, Limit: 9999})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if resp.Limit != model.MaxLimit {
		t.Errorf("limit = %d, want %d", resp.Limit, model.MaxLimit)
	}
	if resp.Page != 2 {
		t.Errorf("page = %d, want 2", resp.Page)
	}

	// The repository sees the normalized query.
	last := videoRepo.listCalls[len(videoRepo.listCalls)-1]
	if last.Limit != model.MaxLimit || last.Page != 2 {
		t.Errorf("repo query = %+v", last)
	}
}

func TestVideoService_Update_NotOwner(t *testing.T) {
	svc := NewVideoService(ownedVideoRepo(1), nil, nil)

	_, err := svc.Update(context.Background(), 10, 2, model.UpdateVideoRequest{Title: "new"})
	if !errors.Is(err, model.ErrNotVideoOwner) {
		t.Errorf("err = %v, want ErrNotVideoOwner", err)
	}
}

func TestVideoService_Update_PartialFields(t *testing.T) {
	var updated *model.Video
	videoRepo := ownedVideoRepo(1)
	videoRepo.updateFn = func(ctx context.Context, video *model.Video) error {
		updated = video
		return nil
	}
	svc := NewVideoService(videoRepo, nil, nil)

	// Empty description leaves the existing value alone.
	_, err := svc.Update(context.Background(), 10, 1, model.UpdateVideoRequest{Title: "  new title  "})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.Title != "new title" {
		t.Errorf("title = %q, want %q", updated.Title, "new title")
	}
}

func TestVideoService_Delete_NotOwner(t *testing.T) {
	deleted := false
	videoRepo := ownedVideoRepo(1)
	videoRepo.deleteFn = func(ctx context.Context, id int64) error {
		deleted = true
		return nil
	}
	svc := NewVideoService(videoRepo, nil, nil)

	err := svc.Delete(context.Background(), 10, 2)
	if !errors.Is(err, model.ErrNotVideoOwner) {
		t.Errorf("err = %v, want ErrNotVideoOwner", err)
	}
	if deleted {
		t.Error("non-owner delete must not reach the store")
	}
}

func TestVideoService_TogglePublish(t *testing.T) {
	videoRepo := ownedVideoRepo(1)
	svc := NewVideoService(videoRepo, nil, nil)

	video, err := svc.TogglePublish(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if video.IsPublished {
		t.Error("published video should toggle to unpublished")
	}
}

func TestVideoService_GetByID_NotFound(t *testing.T) {
	svc := NewVideoService(&mockVideoRepository{}, nil, nil)

	_, err := svc.GetByID(context.Background(), 10, 1)
	if !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("err = %v, want ErrVideoNotFound", err)
	}
}
