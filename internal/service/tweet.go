package service

import (
	"context"
	"fmt"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// TweetService handles short channel posts.
type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

// NewTweetService creates a new TweetService.
func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
	}
}

// Create posts a tweet on the user's channel.
func (s *TweetService) Create(ctx context.Context, userID int64, content string) (*model.Tweet, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	tweet := &model.Tweet{
		OwnerID: userID,
		Content: content,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return tweet, nil
}

// GetByUser returns all tweets on a user's channel, newest first.
func (s *TweetService) GetByUser(ctx context.Context, userID int64) ([]model.Tweet, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	tweets, err := s.tweetRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	if tweets == nil {
		tweets = []model.Tweet{}
	}
	return tweets, nil
}

// Update changes a tweet's content. Only the owner may update.
func (s *TweetService) Update(ctx context.Context, tweetID, userID int64, content string) (*model.Tweet, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != userID {
		return nil, model.ErrNotTweetOwner
	}

	return s.tweetRepo.Update(ctx, tweetID, content)
}

// Delete removes a tweet. Only the owner may delete.
func (s *TweetService) Delete(ctx context.Context, tweetID, userID int64) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.OwnerID != userID {
		return model.ErrNotTweetOwner
	}

	return s.tweetRepo.Delete(ctx, tweetID)
}
