package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"vidtube/internal/queue"
)

// ViewCounter increments the stored view total for a video.
type ViewCounter interface {
	IncrementViews(ctx context.Context, videoID int64, delta int64) error
}

// HistoryRecorder records that a user watched a video.
type HistoryRecorder interface {
	Record(ctx context.Context, userID, videoID int64) error
}

// Handler processes view events from the queue.
type Handler struct {
	views   ViewCounter
	history HistoryRecorder
}

// NewHandler creates a new event handler.
func NewHandler(views ViewCounter, history HistoryRecorder) *Handler {
	return &Handler{
		views:   views,
		history: history,
	}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.ViewEvent) error {
	startTime := time.Now()
	var err error

	switch event.Type {
	case queue.EventVideoViewed:
		err = h.handleVideoViewed(ctx, event)
	default:
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return err
	}

	log.Printf("[Worker] HandleEvent OK: type=%s duration=%v", event.Type, time.Since(startTime))
	return nil
}

// handleVideoViewed bumps the view counter and records watch history for the
// viewer. A failed history write does not roll back the counter; the two are
// independent.
func (h *Handler) handleVideoViewed(ctx context.Context, event queue.ViewEvent) error {
	log.Printf("[Worker] VideoViewed: video=%d viewer=%d", event.VideoID, event.ViewerID)

	if err := h.views.IncrementViews(ctx, event.VideoID, 1); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}

	if event.ViewerID > 0 {
		if err := h.history.Record(ctx, event.ViewerID, event.VideoID); err != nil {
			log.Printf("[Worker] VideoViewed: record history failed viewer=%d video=%d err=%v",
				event.ViewerID, event.VideoID, err)
		}
	}

	return nil
}
