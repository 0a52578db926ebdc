package model

import (
	"errors"
	"time"
)

const MaxCommentLength = 2000

// Comment is a comment on a video.
type Comment struct {
	ID        int64        `db:"id" json:"id"`
	VideoID   int64        `db:"video_id" json:"video_id"`
	OwnerID   int64        `db:"owner_id" json:"owner_id"`
	Content   string       `db:"content" json:"content"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
	Owner     *UserSummary `json:"owner,omitempty"`
}

// CommentListResponse is a paginated comment listing for one video.
type CommentListResponse struct {
	Comments   []Comment `json:"comments"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalCount int64     `json:"total_count"`
}

// CommentRequest is the body for creating or updating a comment.
type CommentRequest struct {
	Content string `json:"content"`
}

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentOwner  = errors.New("not the owner of this comment")
	ErrContentRequired  = errors.New("content is required")
	ErrContentTooLong   = errors.New("content exceeds maximum length")
)
