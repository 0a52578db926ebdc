package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// objectRemover deletes a stored object by key. Satisfied by MediaService.
type objectRemover interface {
	DeleteObject(ctx context.Context, key string) error
}

// UserService handles account lifecycle and the viewer-relative read-side
// aggregations (channel profile, watch history).
type UserService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	watchHistoryRepo repository.WatchHistoryRepository
	storage          objectRemover
}

func NewUserService(
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
	watchHistoryRepo repository.WatchHistoryRepository,
	storage objectRemover,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		watchHistoryRepo: watchHistoryRepo,
		storage:          storage,
	}
}

// Register creates a new account. Uniqueness of username/email is enforced by
// the storage constraint; a duplicate maps to ErrUserExists.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	for name, value := range map[string]string{
		"username":  req.Username,
		"email":     req.Email,
		"full_name": req.FullName,
		"password":  req.Password,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s is required", model.ErrValidation, name)
		}
	}
	if req.AvatarURL == "" {
		return nil, fmt.Errorf("%w: avatar is required", model.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       strings.ToLower(strings.TrimSpace(req.Username)),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:       strings.TrimSpace(req.FullName),
		PasswordHashed: string(hashedPassword),
		AvatarURL:      req.AvatarURL,
		AvatarKey:      req.AvatarKey,
		CoverImageURL:  req.CoverImageURL,
		CoverImageKey:  req.CoverImageKey,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user with credential fields cleared.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.RefreshToken = nil
	return user, nil
}

// ChangePassword verifies the old password and stores a fresh hash.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *model.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return fmt.Errorf("%w: old and new passwords are required", model.ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.OldPassword)); err != nil {
		return model.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

// UpdateAccount updates the mutable profile fields.
func (s *UserService) UpdateAccount(ctx context.Context, userID int64, req *model.UpdateAccountRequest) (*model.User, error) {
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: full_name and email are required", model.ErrValidation)
	}

	user, err := s.userRepo.UpdateAccount(ctx, userID, strings.TrimSpace(req.FullName), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	user.RefreshToken = nil
	return user, nil
}

// GetChannelProfile computes the derived channel view for a viewer.
//
// Two-query approach: the profile row (with read-time edge counts) first,
// then the viewer's own subscription edge. The counts always reflect the
// edge records at query time; nothing is cached or maintained as a running
// counter.
func (s *UserService) GetChannelProfile(ctx context.Context, username string, viewerID int64) (*model.ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is missing", model.ErrValidation)
	}

	profile, err := s.userRepo.GetChannelProfile(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}

	isSubscribed, err := s.subscriptionRepo.Exists(ctx, viewerID, profile.ID)
	if err != nil {
		return nil, err
	}
	profile.IsSubscribed = isSubscribed

	return profile, nil
}

// GetWatchHistory returns the viewer's history, most recently watched first,
// each entry carrying the video and its owner's public identity.
func (s *UserService) GetWatchHistory(ctx context.Context, userID int64) ([]model.WatchHistoryEntry, error) {
	entries, err := s.watchHistoryRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.WatchHistoryEntry{}
	}
	return entries, nil
}

// UpdateAvatar swaps the avatar metadata after a successful upload and
// removes the previous object.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, upload *model.UploadResult) (*model.User, error) {
	current, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateAvatar(ctx, userID, upload.URL, upload.Key)
	if err != nil {
		return nil, err
	}
	s.cleanupObject(ctx, current.AvatarKey)

	user.RefreshToken = nil
	return user, nil
}

// UpdateCoverImage swaps the cover image metadata after a successful upload
// and removes the previous object.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID int64, upload *model.UploadResult) (*model.User, error) {
	current, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateCoverImage(ctx, userID, upload.URL, upload.Key)
	if err != nil {
		return nil, err
	}
	if current.CoverImageKey != nil {
		s.cleanupObject(ctx, *current.CoverImageKey)
	}

	user.RefreshToken = nil
	return user, nil
}

// cleanupObject best-effort deletes a superseded object. The metadata swap
// already happened, so a storage failure is logged rather than surfaced.
func (s *UserService) cleanupObject(ctx context.Context, key string) {
	if key == "" || s.storage == nil {
		return
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		log.Printf("[UserService] cleanup failed: key=%s err=%v", key, err)
	}
}
