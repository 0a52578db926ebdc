package service

import (
	"context"
	"log"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// LikeService implements the like half of the edge toggle over the three
// polymorphic target kinds.
type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// Toggle flips the (user, target) like edge. The target must reference an
// existing entity of its kind. Races resolve the same way as subscriptions:
// the unique index is authoritative and a lost create still reports "on".
func (s *LikeService) Toggle(ctx context.Context, userID int64, target model.LikeTarget) (*model.ToggleResult, error) {
	if err := s.validateTarget(ctx, target); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Exists(ctx, userID, target)
	if err != nil {
		return nil, err
	}

	if liked {
		if _, err := s.likeRepo.Delete(ctx, userID, target); err != nil {
			return nil, err
		}
		log.Printf("[LikeService] User %d unliked %s %d", userID, target.Kind, target.ID)
		return &model.ToggleResult{State: model.ToggleOff}, nil
	}

	if _, err := s.likeRepo.Create(ctx, userID, target); err != nil {
		return nil, err
	}
	log.Printf("[LikeService] User %d liked %s %d", userID, target.Kind, target.ID)

	return &model.ToggleResult{State: model.ToggleOn}, nil
}

// GetLikedVideos returns the videos the user has liked, newest first.
func (s *LikeService) GetLikedVideos(ctx context.Context, userID int64) ([]model.Video, error) {
	videos, err := s.likeRepo.GetLikedVideos(ctx, userID)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []model.Video{}
	}
	return videos, nil
}

func (s *LikeService) validateTarget(ctx context.Context, target model.LikeTarget) error {
	var (
		exists bool
		err    error
	)

	switch target.Kind {
	case model.LikeVideo:
		exists, err = s.videoRepo.Exists(ctx, target.ID)
	case model.LikeComment:
		exists, err = s.commentRepo.Exists(ctx, target.ID)
	case model.LikeTweet:
		exists, err = s.tweetRepo.Exists(ctx, target.ID)
	default:
		return model.ErrInvalidLikeKind
	}

	if err != nil {
		return err
	}
	if !exists {
		return model.ErrLikeTargetNotFound
	}
	return nil
}
