package model

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims is the signed claim set of a short-lived access token.
// Validity is determined purely by signature and expiry; it is never checked
// against a store.
type AccessTokenClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// RefreshTokenClaims is the signed claim set of a long-lived refresh token.
// Carries the subject plus a unique jti so every issued token is distinct;
// full validity additionally requires byte-exact equality with the value
// stored on the user record.
type RefreshTokenClaims struct {
	jwt.RegisteredClaims
}

// TokenPair is both tokens returned after login/refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse is returned after successful login. The user projection
// excludes password and refresh token fields.
type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest is the body fallback for POST /users/refresh-token when the
// client does not use cookies.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

var (
	// ErrTokenInvalid is returned on a bad signature or malformed token
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned when signature checks pass but the token expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenReused is returned when a structurally valid refresh token does
	// not match the single stored value, i.e. it was superseded by rotation or
	// cleared by logout.
	ErrTokenReused = errors.New("refresh token is expired or used")
)
