package repository

import (
	"context"

	"vidtube/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	GetChannelProfile(ctx context.Context, username string) (*model.ChannelProfile, error)
	UpdateRefreshToken(ctx context.Context, userID int64, token *string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHashed string) error
	UpdateAccount(ctx context.Context, userID int64, fullName, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID int64, url, key string) (*model.User, error)
	UpdateCoverImage(ctx context.Context, userID int64, url, key string) (*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type SubscriptionRepository interface {
	// Create inserts the edge, reporting false when it already existed.
	// Uniqueness is enforced by the storage constraint, not by callers.
	Create(ctx context.Context, subscriberID, channelID int64) (bool, error)
	// Delete removes the edge, reporting false when it was already gone.
	Delete(ctx context.Context, subscriberID, channelID int64) (bool, error)
	Exists(ctx context.Context, subscriberID, channelID int64) (bool, error)
	GetSubscribers(ctx context.Context, channelID int64) ([]model.UserSummary, error)
	GetSubscribedChannels(ctx context.Context, subscriberID int64) ([]model.UserSummary, error)
	CountSubscribers(ctx context.Context, channelID int64) (int64, error)
}

type LikeRepository interface {
	Create(ctx context.Context, userID int64, target model.LikeTarget) (bool, error)
	Delete(ctx context.Context, userID int64, target model.LikeTarget) (bool, error)
	Exists(ctx context.Context, userID int64, target model.LikeTarget) (bool, error)
	GetLikedVideos(ctx context.Context, userID int64) ([]model.Video, error)
	CountForVideosOwnedBy(ctx context.Context, ownerID int64) (int64, error)
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	List(ctx context.Context, q model.VideoListQuery) ([]model.Video, int64, error)
	Update(ctx context.Context, video *model.Video) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64, delta int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	SumViewsByOwner(ctx context.Context, ownerID int64) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Video, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Update(ctx context.Context, id int64, content string) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
	ListByVideo(ctx context.Context, videoID int64, page, limit int) ([]model.Comment, int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	GetByID(ctx context.Context, id int64) (*model.Tweet, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]model.Tweet, error)
	Update(ctx context.Context, id int64, content string) (*model.Tweet, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, id int64) (*model.Playlist, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]model.Playlist, error)
	Update(ctx context.Context, id int64, name, description string) (*model.Playlist, error)
	Delete(ctx context.Context, id int64) error
	AddVideo(ctx context.Context, playlistID, videoID int64) (bool, error)
	RemoveVideo(ctx context.Context, playlistID, videoID int64) error
}

type WatchHistoryRepository interface {
	// Record upserts the (user, video) row with the current timestamp, so a
	// re-watch moves the video to the front of the history.
	Record(ctx context.Context, userID, videoID int64) error
	List(ctx context.Context, userID int64) ([]model.WatchHistoryEntry, error)
}
