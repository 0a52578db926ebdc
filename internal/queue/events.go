package queue

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// StreamViews is the Redis stream carrying video view events.
	StreamViews = "stream:views"

	// GroupViews is the consumer group processing view events.
	GroupViews = "view-workers"
)

// Event types
const (
	EventVideoViewed = "video.viewed"
)

// ViewEvent is published when an authenticated user fetches a video. Workers
// consume it to bump the view counter and record watch history off the
// request path.
type ViewEvent struct {
	Type       string
	VideoID    int64
	ViewerID   int64
	OccurredAt int64 // Unix seconds
}

// NewVideoViewedEvent builds a view event stamped with the current time.
func NewVideoViewedEvent(videoID, viewerID int64) ViewEvent {
	return ViewEvent{
		Type:       EventVideoViewed,
		VideoID:    videoID,
		ViewerID:   viewerID,
		OccurredAt: time.Now().Unix(),
	}
}

// ToMap serializes the event into the flat field map XADD expects.
func (e ViewEvent) ToMap() (map[string]interface{}, error) {
	if e.Type == "" {
		return nil, fmt.Errorf("event type is required")
	}
	return map[string]interface{}{
		"type":        e.Type,
		"video_id":    strconv.FormatInt(e.VideoID, 10),
		"viewer_id":   strconv.FormatInt(e.ViewerID, 10),
		"occurred_at": strconv.FormatInt(e.OccurredAt, 10),
	}, nil
}

// EventFromValues parses the field map of a stream message back into an event.
func EventFromValues(values map[string]interface{}) (ViewEvent, error) {
	var e ViewEvent

	eventType, ok := values["type"].(string)
	if !ok {
		return e, fmt.Errorf("missing event type")
	}
	e.Type = eventType

	var err error
	if e.VideoID, err = parseInt64Field(values, "video_id"); err != nil {
		return e, err
	}
	if e.ViewerID, err = parseInt64Field(values, "viewer_id"); err != nil {
		return e, err
	}
	if e.OccurredAt, err = parseInt64Field(values, "occurred_at"); err != nil {
		return e, err
	}

	return e, nil
}

func parseInt64Field(values map[string]interface{}, field string) (int64, error) {
	raw, ok := values[field].(string)
	if !ok {
		return 0, fmt.Errorf("missing field %q", field)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse field %q: %w", field, err)
	}
	return v, nil
}
