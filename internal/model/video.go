package model

import (
	"errors"
	"time"
)

// Video represents a published or draft video document.
type Video struct {
	ID              int64        `db:"id" json:"id"`
	OwnerID         int64        `db:"owner_id" json:"owner_id"`
	Title           string       `db:"title" json:"title"`
	Description     string       `db:"description" json:"description"`
	VideoURL        string       `db:"video_url" json:"video_url"`
	VideoKey        string       `db:"video_key" json:"-"`
	ThumbnailURL    string       `db:"thumbnail_url" json:"thumbnail_url"`
	ThumbnailKey    string       `db:"thumbnail_key" json:"-"`
	DurationSeconds float64      `db:"duration_seconds" json:"duration_seconds"`
	Views           int64        `db:"views" json:"views"`
	IsPublished     bool         `db:"is_published" json:"is_published"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
	Owner           *UserSummary `json:"owner,omitempty"`
}

// VideoListQuery captures the caller-supplied listing options. Invalid or
// missing page/limit fall back to defaults, never error.
type VideoListQuery struct {
	Query    string // title substring filter
	OwnerID  *int64
	SortBy   string // whitelisted column, defaults to created_at
	SortAsc  bool
	Page     int
	Limit    int
}

// VideoListResponse is a paginated listing.
type VideoListResponse struct {
	Videos     []Video `json:"videos"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalCount int64   `json:"total_count"`
}

// WatchHistoryEntry is a watch-history row joined with its video and the
// video owner's public identity.
type WatchHistoryEntry struct {
	Video     Video     `json:"video"`
	WatchedAt time.Time `json:"watched_at"`
}

// UpdateVideoRequest is the body for PATCH /videos/{videoId}.
type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

var (
	// ErrVideoNotFound is returned when a video cannot be found
	ErrVideoNotFound = errors.New("video not found")

	// ErrNotVideoOwner is returned when a non-owner mutates a video
	ErrNotVideoOwner = errors.New("not the owner of this video")
)
