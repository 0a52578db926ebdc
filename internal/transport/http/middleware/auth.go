package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/internal/service"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserKey is the context key for the authenticated user
	UserKey contextKey = "user"
)

// AccessTokenCookie is the cookie carrying the access token for browsers.
const AccessTokenCookie = "accessToken"

// RequireAuth validates the access token and loads the account behind it
// into the request context. The cookie wins over the Authorization header
// when both are present.
func RequireAuth(auth *service.AuthService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ExtractAccessToken(r)
			if tokenString == "" {
				httputil.WriteUnauthorized(w, "Missing authentication token")
				return
			}

			claims, err := auth.VerifyAccessToken(tokenString)
			if err != nil {
				if errors.Is(err, model.ErrTokenExpired) {
					httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenExpired, "Access token has expired")
					return
				}
				httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenInvalid, "Invalid authentication token")
				return
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || userID <= 0 {
				httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenInvalid, "Invalid authentication token")
				return
			}

			// A valid token for a deleted account is still invalid.
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenInvalid, "Invalid authentication token")
				return
			}
			user.PasswordHashed = ""
			user.RefreshToken = nil

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractAccessToken pulls the token from the cookie or, failing that, the
// Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	return ""
}

// GetUserFromContext retrieves the authenticated user set by RequireAuth.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserKey).(*model.User)
	return user, ok
}
