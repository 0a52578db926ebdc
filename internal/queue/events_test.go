package queue

import "testing"

func TestEventFromValues_RoundTrip(t *testing.T) {
	event := NewVideoViewedEvent(42, 7)

	values, err := event.ToMap()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	parsed, err := EventFromValues(values)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if parsed != event {
		t.Errorf("parsed = %+v, want %+v", parsed, event)
	}
}

func TestEventFromValues_MissingFields(t *testing.T) {
	cases := []map[string]interface{}{
		{},
		{"type": EventVideoViewed},
		{"type": EventVideoViewed, "video_id": "1", "viewer_id": "not-a-number", "occurred_at": "0"},
	}

	for i, values := range cases {
		if _, err := EventFromValues(values); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
