package model

import (
	"errors"
	"time"
)

// User represents an account in the system. PasswordHashed and RefreshToken
// are never serialized; every user-facing read excludes them by construction.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	FullName       string    `db:"full_name" json:"full_name"`
	PasswordHashed string    `db:"password_hashed" json:"-"`
	AvatarURL      string    `db:"avatar_url" json:"avatar_url"`
	AvatarKey      string    `db:"avatar_key" json:"-"`
	CoverImageURL  *string   `db:"cover_image_url" json:"cover_image_url"`
	CoverImageKey  *string   `db:"cover_image_key" json:"-"`
	RefreshToken   *string   `db:"refresh_token" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UserSummary is the public identity projection nested into videos, comments,
// subscriber lists and watch history.
type UserSummary struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"full_name"`
	Avatar   string `db:"avatar_url" json:"avatar"`
}

// ChannelProfile is the derived channel view: a public user projection plus
// counts and the viewer-relative flag, computed from subscription edges at
// read time. Never persisted.
type ChannelProfile struct {
	ID                        int64   `db:"id" json:"id"`
	Username                  string  `db:"username" json:"username"`
	Email                     string  `db:"email" json:"email"`
	FullName                  string  `db:"full_name" json:"full_name"`
	Avatar                    string  `db:"avatar_url" json:"avatar"`
	CoverImage                *string `db:"cover_image_url" json:"cover_image"`
	SubscribersCount          int     `db:"subscribers_count" json:"subscribers_count"`
	ChannelsSubscribedToCount int     `db:"channels_subscribed_to_count" json:"channels_subscribed_to_count"`
	IsSubscribed              bool    `json:"is_subscribed"`
}

// RegisterRequest represents the data needed to register a new user.
// Avatar/cover metadata is filled in by the upload stage, not by the client.
type RegisterRequest struct {
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	FullName      string  `json:"full_name"`
	Password      string  `json:"password"`
	AvatarURL     string  `json:"-"`
	AvatarKey     string  `json:"-"`
	CoverImageURL *string `json:"-"`
	CoverImageKey *string `json:"-"`
}

// LoginRequest carries either username or email plus the password.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body for POST /users/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateAccountRequest is the body for PATCH /users/update-account.
type UpdateAccountRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when registering with a taken username or email
	ErrUserExists = errors.New("user with email or username already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is the base error for malformed or missing input
	ErrValidation = errors.New("validation failed")
)
