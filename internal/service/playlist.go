package service

import (
	"context"
	"fmt"
	"strings"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// PlaylistService handles owner-scoped playlists.
type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository, userRepo repository.UserRepository) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
	}
}

// Create makes a new empty playlist.
func (s *PlaylistService) Create(ctx context.Context, ownerID int64, req model.PlaylistRequest) (*model.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrValidation)
	}

	playlist := &model.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Videos:      []model.Video{},
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	return playlist, nil
}

// GetByID fetches a playlist with its videos.
func (s *PlaylistService) GetByID(ctx context.Context, playlistID int64) (*model.Playlist, error) {
	return s.playlistRepo.GetByID(ctx, playlistID)
}

// GetByUser returns all playlists owned by a user.
func (s *PlaylistService) GetByUser(ctx context.Context, userID int64) ([]model.Playlist, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	playlists, err := s.playlistRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	if playlists == nil {
		playlists = []model.Playlist{}
	}
	return playlists, nil
}

// Update changes name and description. Only the owner may update.
func (s *PlaylistService) Update(ctx context.Context, playlistID, userID int64, req model.PlaylistRequest) (*model.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, playlistID, userID)
	if err != nil {
		return nil, err
	}

	name := playlist.Name
	if n := strings.TrimSpace(req.Name); n != "" {
		name = n
	}
	description := playlist.Description
	if d := strings.TrimSpace(req.Description); d != "" {
		description = d
	}

	return s.playlistRepo.Update(ctx, playlistID, name, description)
}

// Delete removes a playlist and its membership rows. Only the owner may
// delete.
func (s *PlaylistService) Delete(ctx context.Context, playlistID, userID int64) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

// AddVideo adds a video to the playlist. Adding an already-present video is
// a no-op, not an error.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, userID int64) (*model.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return nil, err
	}

	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("check video: %w", err)
	}
	if !exists {
		return nil, model.ErrVideoNotFound
	}

	if _, err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, fmt.Errorf("add video to playlist: %w", err)
	}

	return s.playlistRepo.GetByID(ctx, playlistID)
}

// RemoveVideo removes a video from the playlist.
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, userID int64) (*model.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return nil, err
	}

	if err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, fmt.Errorf("remove video from playlist: %w", err)
	}

	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, playlistID, userID int64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, model.ErrNotPlaylistOwner
	}
	return playlist, nil
}
