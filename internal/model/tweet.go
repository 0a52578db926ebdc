package model

import (
	"errors"
	"time"
)

// Tweet is a short text post on a user's channel.
type Tweet struct {
	ID        int64        `db:"id" json:"id"`
	OwnerID   int64        `db:"owner_id" json:"owner_id"`
	Content   string       `db:"content" json:"content"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
	Owner     *UserSummary `json:"owner,omitempty"`
}

// TweetRequest is the body for creating or updating a tweet.
type TweetRequest struct {
	Content string `json:"content"`
}

var (
	ErrTweetNotFound = errors.New("tweet not found")
	ErrNotTweetOwner = errors.New("not the owner of this tweet")
)
