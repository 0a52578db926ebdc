package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// TweetHandler groups tweet endpoints and their dependencies.
type TweetHandler struct {
	tweetService *service.TweetService
}

// NewTweetHandler wires dependencies for tweet endpoints.
func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create posts a tweet on the authenticated user's channel.
// POST /tweets
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	tweet, err := h.tweetService.Create(r.Context(), user.ID, req.Content)
	if err != nil {
		writeTweetError(w, err, "Failed to create tweet")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, tweet, "Tweet created successfully")
}

// ListByUser returns all tweets on a channel, newest first.
// GET /tweets/user/{userId}
func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	tweets, err := h.tweetService.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to list tweets")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, tweets, "Tweets fetched successfully")
}

// Update changes a tweet's content. Owner only.
// PATCH /tweets/{tweetId}
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	tweetID, ok := parseIDParam(w, r, "tweetId")
	if !ok {
		return
	}

	var req model.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	tweet, err := h.tweetService.Update(r.Context(), tweetID, user.ID, req.Content)
	if err != nil {
		writeTweetError(w, err, "Failed to update tweet")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, tweet, "Tweet updated successfully")
}

// Delete removes a tweet. Owner only.
// DELETE /tweets/{tweetId}
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	tweetID, ok := parseIDParam(w, r, "tweetId")
	if !ok {
		return
	}

	if err := h.tweetService.Delete(r.Context(), tweetID, user.ID); err != nil {
		writeTweetError(w, err, "Failed to delete tweet")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Tweet deleted successfully")
}

func writeTweetError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrContentRequired):
		httputil.WriteBadRequest(w, "Content is required")
	case errors.Is(err, model.ErrContentTooLong):
		httputil.WriteBadRequest(w, "Content exceeds maximum length")
	case errors.Is(err, model.ErrTweetNotFound):
		httputil.WriteNotFound(w, "Tweet not found")
	case errors.Is(err, model.ErrNotTweetOwner):
		httputil.WriteForbidden(w, "You do not own this tweet")
	default:
		httputil.WriteInternalError(w, fallback)
	}
}
