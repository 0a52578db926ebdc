package service

// Function-field mocks for the repository interfaces. Each test sets only
// the fields it needs; unset fields return not-found or zero values.

import (
	"context"

	"vidtube/internal/model"
)

type mockUserRepository struct {
	createFn               func(ctx context.Context, user *model.User) error
	getByIDFn              func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameOrEmailFn func(ctx context.Context, username, email string) (*model.User, error)
	getChannelProfileFn    func(ctx context.Context, username string) (*model.ChannelProfile, error)
	updateRefreshTokenFn   func(ctx context.Context, userID int64, token *string) error
	updatePasswordFn       func(ctx context.Context, userID int64, passwordHashed string) error
	updateAccountFn        func(ctx context.Context, userID int64, fullName, email string) (*model.User, error)
	existsFn               func(ctx context.Context, id int64) (bool, error)

	// Track calls for assertions
	createCalls             int
	updateRefreshTokenCalls []*string
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	if m.getByUsernameOrEmailFn != nil {
		return m.getByUsernameOrEmailFn(ctx, username, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetChannelProfile(ctx context.Context, username string) (*model.ChannelProfile, error) {
	if m.getChannelProfileFn != nil {
		return m.getChannelProfileFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) UpdateRefreshToken(ctx context.Context, userID int64, token *string) error {
	m.updateRefreshTokenCalls = append(m.updateRefreshTokenCalls, token)
	if m.updateRefreshTokenFn != nil {
		return m.updateRefreshTokenFn(ctx, userID, token)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHashed string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, passwordHashed)
	}
	return nil
}

func (m *mockUserRepository) UpdateAccount(ctx context.Context, userID int64, fullName, email string) (*model.User, error) {
	if m.updateAccountFn != nil {
		return m.updateAccountFn(ctx, userID, fullName, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, userID int64, url, key string) (*model.User, error) {
	return &model.User{ID: userID, AvatarURL: url, AvatarKey: key}, nil
}

func (m *mockUserRepository) UpdateCoverImage(ctx context.Context, userID int64, url, key string) (*model.User, error) {
	return &model.User{ID: userID, CoverImageURL: &url, CoverImageKey: &key}, nil
}

func (m *mockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

type mockObjectRemover struct {
	deleteFn func(ctx context.Context, key string) error

	// Track calls for assertions
	deletedKeys []string
}

func (m *mockObjectRemover) DeleteObject(ctx context.Context, key string) error {
	m.deletedKeys = append(m.deletedKeys, key)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

type mockSubscriptionRepository struct {
	createFn                func(ctx context.Context, subscriberID, channelID int64) (bool, error)
	deleteFn                func(ctx context.Context, subscriberID, channelID int64) (bool, error)
	existsFn                func(ctx context.Context, subscriberID, channelID int64) (bool, error)
	getSubscribersFn        func(ctx context.Context, channelID int64) ([]model.UserSummary, error)
	getSubscribedChannelsFn func(ctx context.Context, subscriberID int64) ([]model.UserSummary, error)
	countSubscribersFn      func(ctx context.Context, channelID int64) (int64, error)

	createCalls int
	deleteCalls int
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, subscriberID, channelID)
	}
	return true, nil
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, subscriberID, channelID)
	}
	return true, nil
}

func (m *mockSubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, subscriberID, channelID)
	}
	return false, nil
}

func (m *mockSubscriptionRepository) GetSubscribers(ctx context.Context, channelID int64) ([]model.UserSummary, error) {
	if m.getSubscribersFn != nil {
		return m.getSubscribersFn(ctx, channelID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetSubscribedChannels(ctx context.Context, subscriberID int64) ([]model.UserSummary, error) {
	if m.getSubscribedChannelsFn != nil {
		return m.getSubscribedChannelsFn(ctx, subscriberID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	if m.countSubscribersFn != nil {
		return m.countSubscribersFn(ctx, channelID)
	}
	return 0, nil
}

type mockLikeRepository struct {
	createFn        func(ctx context.Context, userID int64, target model.LikeTarget) (bool, error)
	deleteFn        func(ctx context.Context, userID int64, target model.LikeTarget) (bool, error)
	existsFn         func(ctx context.Context, userID int64, target model.LikeTarget) (bool, error)
	getLikedVideosFn func(ctx context.Context, userID int64) ([]model.Video, error)
	countForOwnerFn  func(ctx context.Context, ownerID int64) (int64, error)

	createCalls int
	deleteCalls int
}

func (m *mockLikeRepository) Create(ctx context.Context, userID int64, target model.LikeTarget) (bool, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, userID, target)
	}
	return true, nil
}

func (m *mockLikeRepository) Delete(ctx context.Context, userID int64, target model.LikeTarget) (bool, error) {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, target)
	}
	return true, nil
}

func (m *mockLikeRepository) Exists(ctx context.Context, userID int64, target model.LikeTarget) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, target)
	}
	return false, nil
}

func (m *mockLikeRepository) GetLikedVideos(ctx context.Context, userID int64) ([]model.Video, error) {
	if m.getLikedVideosFn != nil {
		return m.getLikedVideosFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockLikeRepository) CountForVideosOwnedBy(ctx context.Context, ownerID int64) (int64, error) {
	if m.countForOwnerFn != nil {
		return m.countForOwnerFn(ctx, ownerID)
	}
	return 0, nil
}

type mockVideoRepository struct {
	createFn  func(ctx context.Context, video *model.Video) error
	getByIDFn func(ctx context.Context, id int64) (*model.Video, error)
	listFn    func(ctx context.Context, q model.VideoListQuery) ([]model.Video, int64, error)
	updateFn  func(ctx context.Context, video *model.Video) error
	deleteFn  func(ctx context.Context, id int64) error
	existsFn  func(ctx context.Context, id int64) (bool, error)

	countByOwnerFn    func(ctx context.Context, ownerID int64) (int64, error)
	sumViewsByOwnerFn func(ctx context.Context, ownerID int64) (int64, error)
	listByOwnerFn     func(ctx context.Context, ownerID int64) ([]model.Video, error)

	listCalls []model.VideoListQuery
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrVideoNotFound
}

func (m *mockVideoRepository) List(ctx context.Context, q model.VideoListQuery) ([]model.Video, int64, error) {
	m.listCalls = append(m.listCalls, q)
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return nil, 0, nil
}

func (m *mockVideoRepository) Update(ctx context.Context, video *model.Video) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockVideoRepository) IncrementViews(ctx context.Context, id int64, delta int64) error {
	return nil
}

func (m *mockVideoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

func (m *mockVideoRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	if m.countByOwnerFn != nil {
		return m.countByOwnerFn(ctx, ownerID)
	}
	return 0, nil
}

func (m *mockVideoRepository) SumViewsByOwner(ctx context.Context, ownerID int64) (int64, error) {
	if m.sumViewsByOwnerFn != nil {
		return m.sumViewsByOwnerFn(ctx, ownerID)
	}
	return 0, nil
}

func (m *mockVideoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Video, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

type mockCommentRepository struct {
	createFn      func(ctx context.Context, comment *model.Comment) error
	getByIDFn     func(ctx context.Context, id int64) (*model.Comment, error)
	updateFn      func(ctx context.Context, id int64, content string) (*model.Comment, error)
	deleteFn      func(ctx context.Context, id int64) error
	listByVideoFn func(ctx context.Context, videoID int64, page, limit int) ([]model.Comment, int64, error)
	existsFn      func(ctx context.Context, id int64) (bool, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Update(ctx context.Context, id int64, content string) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, content)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCommentRepository) ListByVideo(ctx context.Context, videoID int64, page, limit int) ([]model.Comment, int64, error) {
	if m.listByVideoFn != nil {
		return m.listByVideoFn(ctx, videoID, page, limit)
	}
	return nil, 0, nil
}

func (m *mockCommentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

type mockTweetRepository struct {
	createFn     func(ctx context.Context, tweet *model.Tweet) error
	getByIDFn    func(ctx context.Context, id int64) (*model.Tweet, error)
	getByOwnerFn func(ctx context.Context, ownerID int64) ([]model.Tweet, error)
	updateFn     func(ctx context.Context, id int64, content string) (*model.Tweet, error)
	deleteFn     func(ctx context.Context, id int64) error
	existsFn     func(ctx context.Context, id int64) (bool, error)
}

func (m *mockTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	if m.createFn != nil {
		return m.createFn(ctx, tweet)
	}
	return nil
}

func (m *mockTweetRepository) GetByID(ctx context.Context, id int64) (*model.Tweet, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrTweetNotFound
}

func (m *mockTweetRepository) GetByOwner(ctx context.Context, ownerID int64) ([]model.Tweet, error) {
	if m.getByOwnerFn != nil {
		return m.getByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTweetRepository) Update(ctx context.Context, id int64, content string) (*model.Tweet, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, content)
	}
	return nil, model.ErrTweetNotFound
}

func (m *mockTweetRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTweetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

type mockPlaylistRepository struct {
	createFn     func(ctx context.Context, playlist *model.Playlist) error
	getByIDFn    func(ctx context.Context, id int64) (*model.Playlist, error)
	getByOwnerFn func(ctx context.Context, ownerID int64) ([]model.Playlist, error)
	updateFn     func(ctx context.Context, id int64, name, description string) (*model.Playlist, error)
	deleteFn     func(ctx context.Context, id int64) error
	addVideoFn   func(ctx context.Context, playlistID, videoID int64) (bool, error)
	removeVideoFn func(ctx context.Context, playlistID, videoID int64) error

	addVideoCalls int
}

func (m *mockPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	if m.createFn != nil {
		return m.createFn(ctx, playlist)
	}
	return nil
}

func (m *mockPlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPlaylistNotFound
}

func (m *mockPlaylistRepository) GetByOwner(ctx context.Context, ownerID int64) ([]model.Playlist, error) {
	if m.getByOwnerFn != nil {
		return m.getByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockPlaylistRepository) Update(ctx context.Context, id int64, name, description string) (*model.Playlist, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, name, description)
	}
	return nil, model.ErrPlaylistNotFound
}

func (m *mockPlaylistRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	m.addVideoCalls++
	if m.addVideoFn != nil {
		return m.addVideoFn(ctx, playlistID, videoID)
	}
	return true, nil
}

func (m *mockPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) error {
	if m.removeVideoFn != nil {
		return m.removeVideoFn(ctx, playlistID, videoID)
	}
	return nil
}

type mockWatchHistoryRepository struct {
	recordFn func(ctx context.Context, userID, videoID int64) error
	listFn   func(ctx context.Context, userID int64) ([]model.WatchHistoryEntry, error)
}

func (m *mockWatchHistoryRepository) Record(ctx context.Context, userID, videoID int64) error {
	if m.recordFn != nil {
		return m.recordFn(ctx, userID, videoID)
	}
	return nil
}

func (m *mockWatchHistoryRepository) List(ctx context.Context, userID int64) ([]model.WatchHistoryEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}
