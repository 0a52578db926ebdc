package handler

import (
	"errors"
	"net/http"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// LikeHandler groups like endpoints and their dependencies.
type LikeHandler struct {
	likeService *service.LikeService
}

// NewLikeHandler wires dependencies for like endpoints.
func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideo flips the like edge on a video.
// POST /likes/toggle/v/{videoId}
func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "videoId", model.VideoTarget)
}

// ToggleComment flips the like edge on a comment.
// POST /likes/toggle/c/{commentId}
func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "commentId", model.CommentTarget)
}

// ToggleTweet flips the like edge on a tweet.
// POST /likes/toggle/t/{tweetId}
func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "tweetId", model.TweetTarget)
}

// LikedVideos returns all videos the user has liked.
// GET /likes/videos
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videos, err := h.likeService.GetLikedVideos(r.Context(), user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to fetch liked videos")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, videos, "Liked videos fetched successfully")
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, param string, target func(int64) model.LikeTarget) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	id, ok := parseIDParam(w, r, param)
	if !ok {
		return
	}

	result, err := h.likeService.Toggle(r.Context(), user.ID, target(id))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrLikeTargetNotFound):
			httputil.WriteNotFound(w, "Target not found")
		case errors.Is(err, model.ErrInvalidLikeKind):
			httputil.WriteBadRequest(w, "Invalid like target")
		default:
			httputil.WriteInternalError(w, "Failed to toggle like")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, result, "Like toggled successfully")
}
