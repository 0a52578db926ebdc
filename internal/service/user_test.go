package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/model"
)

func newUserService(userRepo *mockUserRepository, subRepo *mockSubscriptionRepository, historyRepo *mockWatchHistoryRepository) *UserService {
	if userRepo == nil {
		userRepo = &mockUserRepository{}
	}
	if subRepo == nil {
		subRepo = &mockSubscriptionRepository{}
	}
	if historyRepo == nil {
		historyRepo = &mockWatchHistoryRepository{}
	}
	return NewUserService(userRepo, subRepo, historyRepo, nil)
}

// =============================================================================
// REGISTER
// =============================================================================

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			return nil
		},
	}
	svc := newUserService(mockRepo, nil, nil)

	req := &model.RegisterRequest{
		Username:  "Alice",
		Email:     "Alice@Example.com",
		FullName:  "Alice Example",
		Password:  "securepassword123",
		AvatarURL: "https://cdn.example.com/avatars/a.jpg",
		AvatarKey: "avatars/a.jpg",
	}

	user, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Username and email are normalized to lowercase before storage.
	if user.Username != "alice" {
		t.Errorf("username = %q, want %q", user.Username, "alice")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", user.Email, "alice@example.com")
	}

	if user.PasswordHashed == req.Password {
		t.Error("password should be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		t.Error("password hash should be valid bcrypt hash")
	}

	if mockRepo.createCalls != 1 {
		t.Errorf("Create calls = %d, want 1", mockRepo.createCalls)
	}
}

func TestUserService_Register_MissingFields(t *testing.T) {
	svc := newUserService(nil, nil, nil)

	cases := []model.RegisterRequest{
		{Email: "a@b.c", FullName: "A", Password: "pw", AvatarURL: "u"},
		{Username: "a", FullName: "A", Password: "pw", AvatarURL: "u"},
		{Username: "a", Email: "a@b.c", Password: "pw", AvatarURL: "u"},
		{Username: "a", Email: "a@b.c", FullName: "A", AvatarURL: "u"},
		{Username: "a", Email: "a@b.c", FullName: "A", Password: "pw"}, // no avatar
	}

	for i, req := range cases {
		if _, err := svc.Register(context.Background(), &req); !errors.Is(err, model.ErrValidation) {
			t.Errorf("case %d: err = %v, want ErrValidation", i, err)
		}
	}
}

func TestUserService_Register_DuplicateUser(t *testing.T) {
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			return model.ErrUserExists
		},
	}
	svc := newUserService(mockRepo, nil, nil)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FullName:  "Alice",
		Password:  "pw",
		AvatarURL: "u",
	})
	if !errors.Is(err, model.ErrUserExists) {
		t.Errorf("err = %v, want ErrUserExists", err)
	}
}

// =============================================================================
// CHANGE PASSWORD
// =============================================================================

func TestUserService_ChangePassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	var storedHash string
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, PasswordHashed: string(hashed)}, nil
		},
		updatePasswordFn: func(ctx context.Context, userID int64, passwordHashed string) error {
			storedHash = passwordHashed
			return nil
		},
	}
	svc := newUserService(mockRepo, nil, nil)

	// Wrong old password is rejected.
	err := svc.ChangePassword(context.Background(), 1, &model.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-password",
	})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if storedHash != "" {
		t.Fatal("password must not change on failed verification")
	}

	// Correct old password stores a fresh hash of the new one.
	err = svc.ChangePassword(context.Background(), 1, &model.ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("new-password")); err != nil {
		t.Error("stored hash should match the new password")
	}
}

// =============================================================================
// CHANNEL PROFILE
// =============================================================================

func TestUserService_GetChannelProfile_ViewerSubscribed(t *testing.T) {
	mockRepo := &mockUserRepository{
		getChannelProfileFn: func(ctx context.Context, username string) (*model.ChannelProfile, error) {
			if username != "alice" {
				return nil, model.ErrUserNotFound
			}
			return &model.ChannelProfile{
				ID:                        2,
				Username:                  "alice",
				SubscribersCount:          3,
				ChannelsSubscribedToCount: 1,
			}, nil
		},
	}
	subRepo := &mockSubscriptionRepository{
		existsFn: func(ctx context.Context, subscriberID, channelID int64) (bool, error) {
			return subscriberID == 7 && channelID == 2, nil
		},
	}
	svc := newUserService(mockRepo, subRepo, nil)

	// Lookup is case-insensitive on username.
	profile, err := svc.GetChannelProfile(context.Background(), "Alice", 7)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if profile.SubscribersCount != 3 {
		t.Errorf("subscribers = %d, want 3", profile.SubscribersCount)
	}
	if !profile.IsSubscribed {
		t.Error("viewer 7 should see is_subscribed = true")
	}

	// A different viewer sees the same counts but their own flag.
	profile, err = svc.GetChannelProfile(context.Background(), "alice", 8)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if profile.IsSubscribed {
		t.Error("viewer 8 should see is_subscribed = false")
	}
}

func TestUserService_GetChannelProfile_UnknownChannel(t *testing.T) {
	svc := newUserService(nil, nil, nil)

	_, err := svc.GetChannelProfile(context.Background(), "nobody", 1)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

// =============================================================================
// WATCH HISTORY
// =============================================================================

func TestUserService_GetWatchHistory_EmptyNotNil(t *testing.T) {
	svc := newUserService(nil, nil, nil)

	history, err := svc.GetWatchHistory(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if history == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestUserService_GetByID_ClearsRefreshToken(t *testing.T) {
	token := "stored-refresh-token"
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, RefreshToken: &token}, nil
		},
	}
	svc := newUserService(mockRepo, nil, nil)

	user, err := svc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.RefreshToken != nil {
		t.Error("refresh token must never leave the service layer")
	}
}

// =============================================================================
// PROFILE IMAGES
// =============================================================================

func TestUserService_UpdateAvatar_RemovesPreviousObject(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, AvatarKey: "avatars/old"}, nil
		},
	}
	storage := &mockObjectRemover{}
	svc := NewUserService(mockRepo, &mockSubscriptionRepository{}, &mockWatchHistoryRepository{}, storage)

	user, err := svc.UpdateAvatar(context.Background(), 1, &model.UploadResult{
		URL: "https://cdn.example.com/avatars/new",
		Key: "avatars/new",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.AvatarKey != "avatars/new" {
		t.Errorf("avatar key = %q, want %q", user.AvatarKey, "avatars/new")
	}
	if len(storage.deletedKeys) != 1 || storage.deletedKeys[0] != "avatars/old" {
		t.Errorf("deleted keys = %v, want [avatars/old]", storage.deletedKeys)
	}
}

func TestUserService_UpdateAvatar_DeleteFailureIsNotFatal(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, AvatarKey: "avatars/old"}, nil
		},
	}
	storage := &mockObjectRemover{
		deleteFn: func(ctx context.Context, key string) error {
			return errors.New("storage unavailable")
		},
	}
	svc := NewUserService(mockRepo, &mockSubscriptionRepository{}, &mockWatchHistoryRepository{}, storage)

	// The metadata swap already succeeded; a cleanup failure only leaks the
	// old object, it must not fail the request.
	if _, err := svc.UpdateAvatar(context.Background(), 1, &model.UploadResult{Key: "avatars/new"}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestUserService_UpdateCoverImage_NoPreviousObject(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	storage := &mockObjectRemover{}
	svc := NewUserService(mockRepo, &mockSubscriptionRepository{}, &mockWatchHistoryRepository{}, storage)

	if _, err := svc.UpdateCoverImage(context.Background(), 1, &model.UploadResult{Key: "covers/new"}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(storage.deletedKeys) != 0 {
		t.Errorf("deleted keys = %v, want none", storage.deletedKeys)
	}
}

func TestUserService_UpdateCoverImage_RemovesPreviousObject(t *testing.T) {
	oldKey := "covers/old"
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, CoverImageKey: &oldKey}, nil
		},
	}
	storage := &mockObjectRemover{}
	svc := NewUserService(mockRepo, &mockSubscriptionRepository{}, &mockWatchHistoryRepository{}, storage)

	if _, err := svc.UpdateCoverImage(context.Background(), 1, &model.UploadResult{Key: "covers/new"}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(storage.deletedKeys) != 1 || storage.deletedKeys[0] != oldKey {
		t.Errorf("deleted keys = %v, want [%s]", storage.deletedKeys, oldKey)
	}
}
