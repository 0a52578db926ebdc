package service

import (
	"context"
	"errors"
	"testing"

	"vidtube/internal/model"
)

func ownedPlaylistRepo(ownerID int64) *mockPlaylistRepository {
	return &mockPlaylistRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Playlist, error) {
			return &model.Playlist{ID: id, OwnerID: ownerID, Name: "watch later"}, nil
		},
	}
}

func TestPlaylistService_Create_RequiresName(t *testing.T) {
	svc := NewPlaylistService(&mockPlaylistRepository{}, &mockVideoRepository{}, &mockUserRepository{})

	_, err := svc.Create(context.Background(), 1, model.PlaylistRequest{Name: "   "})
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestPlaylistService_AddVideo_NotOwner(t *testing.T) {
	playlistRepo := ownedPlaylistRepo(1)
	svc := NewPlaylistService(playlistRepo, videoRepoWithVideo(), &mockUserRepository{})

	_, err := svc.AddVideo(context.Background(), 5, 10, 2)
	if !errors.Is(err, model.ErrNotPlaylistOwner) {
		t.Errorf("err = %v, want ErrNotPlaylistOwner", err)
	}
	if playlistRepo.addVideoCalls != 0 {
		t.Error("non-owner add must not reach the store")
	}
}

func TestPlaylistService_AddVideo_UnknownVideo(t *testing.T) {
	svc := NewPlaylistService(ownedPlaylistRepo(1), &mockVideoRepository{}, &mockUserRepository{})

	_, err := svc.AddVideo(context.Background(), 5, 10, 1)
	if !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("err = %v, want ErrVideoNotFound", err)
	}
}

func TestPlaylistService_AddVideo_DuplicateIsNoop(t *testing.T) {
	playlistRepo := ownedPlaylistRepo(1)
	playlistRepo.addVideoFn = func(ctx context.Context, playlistID, videoID int64) (bool, error) {
		return false, nil // already in the playlist
	}
	svc := NewPlaylistService(playlistRepo, videoRepoWithVideo(), &mockUserRepository{})

	playlist, err := svc.AddVideo(context.Background(), 5, 10, 1)
	if err != nil {
		t.Fatalf("duplicate add should not error, got: %v", err)
	}
	if playlist == nil {
		t.Fatal("expected playlist")
	}
}

func TestPlaylistService_Delete_NotOwner(t *testing.T) {
	deleted := false
	playlistRepo := ownedPlaylistRepo(1)
	playlistRepo.deleteFn = func(ctx context.Context, id int64) error {
		deleted = true
		return nil
	}
	svc := NewPlaylistService(playlistRepo, &mockVideoRepository{}, &mockUserRepository{})

	err := svc.Delete(context.Background(), 5, 2)
	if !errors.Is(err, model.ErrNotPlaylistOwner) {
		t.Errorf("err = %v, want ErrNotPlaylistOwner", err)
	}
	if deleted {
		t.Error("non-owner delete must not reach the store")
	}
}

func TestPlaylistService_GetByUser_UnknownUser(t *testing.T) {
	svc := NewPlaylistService(&mockPlaylistRepository{}, &mockVideoRepository{}, &mockUserRepository{})

	_, err := svc.GetByUser(context.Background(), 9)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
