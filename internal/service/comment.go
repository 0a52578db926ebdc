package service

import (
	"context"
	"fmt"
	"strings"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// CommentService handles comments on videos.
type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

// Add creates a comment on an existing video.
func (s *CommentService) Add(ctx context.Context, userID, videoID int64, content string) (*model.Comment, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("check video: %w", err)
	}
	if !exists {
		return nil, model.ErrVideoNotFound
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: userID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListByVideo returns a paginated page of comments, newest first.
func (s *CommentService) ListByVideo(ctx context.Context, videoID int64, page, limit int) (*model.CommentListResponse, error) {
	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("check video: %w", err)
	}
	if !exists {
		return nil, model.ErrVideoNotFound
	}

	if page < 1 {
		page = model.DefaultPage
	}
	if limit < 1 {
		limit = model.DefaultLimit
	}
	if limit > model.MaxLimit {
		limit = model.MaxLimit
	}

	comments, total, err := s.commentRepo.ListByVideo(ctx, videoID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if comments == nil {
		comments = []model.Comment{}
	}

	return &model.CommentListResponse{
		Comments:   comments,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
	}, nil
}

// Update changes a comment's content. Only the owner may update.
func (s *CommentService) Update(ctx context.Context, commentID, userID int64, content string) (*model.Comment, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != userID {
		return nil, model.ErrNotCommentOwner
	}

	return s.commentRepo.Update(ctx, commentID, content)
}

// Delete removes a comment. Only the owner may delete.
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.OwnerID != userID {
		return model.ErrNotCommentOwner
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", model.ErrContentRequired
	}
	if len(content) > model.MaxCommentLength {
		return "", model.ErrContentTooLong
	}
	return content, nil
}
