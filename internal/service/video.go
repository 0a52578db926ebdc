package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"vidtube/internal/model"
	"vidtube/internal/queue"
	"vidtube/internal/repository"
)

// VideoService handles video publishing, listing, and ownership-guarded
// mutations. View counting happens asynchronously through the queue.
type VideoService struct {
	videoRepo repository.VideoRepository
	media     *MediaService
	publisher queue.Publisher
}

// NewVideoService creates a new VideoService.
func NewVideoService(videoRepo repository.VideoRepository, media *MediaService, publisher queue.Publisher) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		media:     media,
		publisher: publisher,
	}
}

// PublishInput carries the multipart parts of a publish request.
type PublishInput struct {
	Title           string
	Description     string
	DurationSeconds float64
	VideoFile       multipart.File
	VideoHeader     *multipart.FileHeader
	Thumbnail       multipart.File
	ThumbnailHeader *multipart.FileHeader
}

// Publish uploads the video and thumbnail, then creates the record. If the
// thumbnail upload or the insert fails, already-uploaded objects are removed
// so no orphans accumulate in the bucket.
func (s *VideoService) Publish(ctx context.Context, ownerID int64, in PublishInput) (*model.Video, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if in.VideoFile == nil || in.VideoHeader == nil {
		return nil, fmt.Errorf("%w: video file is required", model.ErrFileRequired)
	}
	if in.Thumbnail == nil || in.ThumbnailHeader == nil {
		return nil, fmt.Errorf("%w: thumbnail is required", model.ErrFileRequired)
	}

	videoUpload, err := s.media.UploadVideo(ctx, in.VideoFile, in.VideoHeader)
	if err != nil {
		return nil, err
	}

	thumbUpload, err := s.media.UploadThumbnail(ctx, in.Thumbnail, in.ThumbnailHeader)
	if err != nil {
		s.cleanupObject(ctx, videoUpload.Key)
		return nil, err
	}

	video := &model.Video{
		OwnerID:         ownerID,
		Title:           title,
		Description:     strings.TrimSpace(in.Description),
		VideoURL:        videoUpload.URL,
		VideoKey:        videoUpload.Key,
		ThumbnailURL:    thumbUpload.URL,
		ThumbnailKey:    thumbUpload.Key,
		DurationSeconds: in.DurationSeconds,
		IsPublished:     true,
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.cleanupObject(ctx, videoUpload.Key)
		s.cleanupObject(ctx, thumbUpload.Key)
		return nil, fmt.Errorf("create video: %w", err)
	}

	log.Printf("[VideoService] Published: id=%d owner=%d title=%q", video.ID, ownerID, title)
	return video, nil
}

// GetByID fetches a video and emits a view event for the viewer. The fetch
// never waits on the counter write.
func (s *VideoService) GetByID(ctx context.Context, videoID int64, viewerID int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := queue.NewVideoViewedEvent(videoID, viewerID)
		if _, err := s.publisher.Publish(ctx, queue.StreamViews, event); err != nil {
			log.Printf("[VideoService] view event publish failed: video=%d err=%v", videoID, err)
		}
	}

	return video, nil
}

// List returns a paginated page of published videos. Out-of-range paging
// values fall back to defaults.
func (s *VideoService) List(ctx context.Context, q model.VideoListQuery) (*model.VideoListResponse, error) {
	if q.Page < 1 {
		q.Page = model.DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = model.DefaultLimit
	}
	if q.Limit > model.MaxLimit {
		q.Limit = model.MaxLimit
	}

	videos, total, err := s.videoRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	if videos == nil {
		videos = []model.Video{}
	}

	return &model.VideoListResponse{
		Videos:     videos,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalCount: total,
	}, nil
}

// Update changes title and description. Only the owner may update.
func (s *VideoService) Update(ctx context.Context, videoID, userID int64, req model.UpdateVideoRequest) (*model.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		video.Title = title
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		video.Description = desc
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	return video, nil
}

// UpdateThumbnail replaces the thumbnail, removing the previous object.
func (s *VideoService) UpdateThumbnail(ctx context.Context, videoID, userID int64, file multipart.File, header *multipart.FileHeader) (*model.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}

	upload, err := s.media.UploadThumbnail(ctx, file, header)
	if err != nil {
		return nil, err
	}

	oldKey := video.ThumbnailKey
	video.ThumbnailURL = upload.URL
	video.ThumbnailKey = upload.Key

	if err := s.videoRepo.Update(ctx, video); err != nil {
		s.cleanupObject(ctx, upload.Key)
		return nil, fmt.Errorf("update video: %w", err)
	}

	s.cleanupObject(ctx, oldKey)
	return video, nil
}

// Delete removes the record and its stored objects. Only the owner may
// delete.
func (s *VideoService) Delete(ctx context.Context, videoID, userID int64) error {
	video, err := s.ownedVideo(ctx, videoID, userID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	s.cleanupObject(ctx, video.VideoKey)
	s.cleanupObject(ctx, video.ThumbnailKey)

	log.Printf("[VideoService] Deleted: id=%d owner=%d", videoID, userID)
	return nil
}

// TogglePublish flips the publish flag. Only the owner may toggle.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, userID int64) (*model.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	return video, nil
}

func (s *VideoService) ownedVideo(ctx context.Context, videoID, userID int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != userID {
		return nil, model.ErrNotVideoOwner
	}
	return video, nil
}

func (s *VideoService) cleanupObject(ctx context.Context, key string) {
	if key == "" || s.media == nil {
		return
	}
	if err := s.media.DeleteObject(ctx, key); err != nil {
		log.Printf("[VideoService] cleanup failed: key=%s err=%v", key, err)
	}
}
