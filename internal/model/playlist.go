package model

import (
	"errors"
	"time"
)

// Playlist is a named, owner-scoped collection of videos.
type Playlist struct {
	ID          int64        `db:"id" json:"id"`
	OwnerID     int64        `db:"owner_id" json:"owner_id"`
	Name        string       `db:"name" json:"name"`
	Description string       `db:"description" json:"description"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
	Videos      []Video      `json:"videos"`
	Owner       *UserSummary `json:"owner,omitempty"`
}

// PlaylistRequest is the body for creating or updating a playlist.
type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var (
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrNotPlaylistOwner = errors.New("not the owner of this playlist")
)
