package worker

import (
	"context"
	"errors"
	"testing"

	"vidtube/internal/queue"
)

type mockViewCounter struct {
	incrementFn func(ctx context.Context, videoID int64, delta int64) error
	calls       []int64
}

func (m *mockViewCounter) IncrementViews(ctx context.Context, videoID int64, delta int64) error {
	m.calls = append(m.calls, videoID)
	if m.incrementFn != nil {
		return m.incrementFn(ctx, videoID, delta)
	}
	return nil
}

type mockHistoryRecorder struct {
	recordFn func(ctx context.Context, userID, videoID int64) error
	calls    [][2]int64
}

func (m *mockHistoryRecorder) Record(ctx context.Context, userID, videoID int64) error {
	m.calls = append(m.calls, [2]int64{userID, videoID})
	if m.recordFn != nil {
		return m.recordFn(ctx, userID, videoID)
	}
	return nil
}

func TestHandler_VideoViewed(t *testing.T) {
	views := &mockViewCounter{}
	history := &mockHistoryRecorder{}
	h := NewHandler(views, history)

	event := queue.NewVideoViewedEvent(10, 7)
	if err := h.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(views.calls) != 1 || views.calls[0] != 10 {
		t.Errorf("increment calls = %v, want [10]", views.calls)
	}
	if len(history.calls) != 1 || history.calls[0] != [2]int64{7, 10} {
		t.Errorf("history calls = %v, want [[7 10]]", history.calls)
	}
}

func TestHandler_VideoViewed_AnonymousSkipsHistory(t *testing.T) {
	views := &mockViewCounter{}
	history := &mockHistoryRecorder{}
	h := NewHandler(views, history)

	event := queue.NewVideoViewedEvent(10, 0)
	if err := h.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(views.calls) != 1 {
		t.Errorf("increment calls = %d, want 1", len(views.calls))
	}
	if len(history.calls) != 0 {
		t.Errorf("anonymous view must not record history, got %v", history.calls)
	}
}

func TestHandler_VideoViewed_HistoryFailureDoesNotFailEvent(t *testing.T) {
	views := &mockViewCounter{}
	history := &mockHistoryRecorder{
		recordFn: func(ctx context.Context, userID, videoID int64) error {
			return errors.New("db down")
		},
	}
	h := NewHandler(views, history)

	if err := h.HandleEvent(context.Background(), queue.NewVideoViewedEvent(10, 7)); err != nil {
		t.Errorf("history failure should not fail the event, got: %v", err)
	}
}

func TestHandler_UnknownEventType(t *testing.T) {
	h := NewHandler(&mockViewCounter{}, &mockHistoryRecorder{})

	err := h.HandleEvent(context.Background(), queue.ViewEvent{Type: "video.transcoded"})
	if err == nil {
		t.Fatal("expected error for unknown event type")
	}
}
