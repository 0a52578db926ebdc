package model

import (
	"errors"
	"time"
)

// Subscription is a subscriber->channel edge. At most one edge exists per
// (subscriber, channel) pair, enforced by a uniqueness constraint in storage.
type Subscription struct {
	SubscriberID int64     `db:"subscriber_id" json:"subscriber_id"`
	ChannelID    int64     `db:"channel_id" json:"channel_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ToggleState reports the outcome of a toggle operation.
type ToggleState string

const (
	ToggleOn  ToggleState = "on"
	ToggleOff ToggleState = "off"
)

// ToggleResult is returned by the like and subscription toggle operations.
type ToggleResult struct {
	State ToggleState `json:"state"`
}

var (
	// ErrCannotSubscribeSelf is returned when a user toggles a subscription to
	// their own channel
	ErrCannotSubscribeSelf = errors.New("cannot subscribe to yourself")
)
