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

// CommentHandler groups comment endpoints and their dependencies.
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler wires dependencies for comment endpoints.
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List returns a paginated page of comments for a video, newest first.
// GET /comments/{videoId}?page=&limit=
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID, ok := parseIDParam(w, r, "videoId")
	if !ok {
		return
	}

	resp, err := h.commentService.ListByVideo(r.Context(), videoID, queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		if errors.Is(err, model.ErrVideoNotFound) {
			httputil.WriteNotFound(w, "Video not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to list comments")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, resp, "Comments fetched successfully")
}

// Add creates a comment on a video.
// POST /comments/{videoId}
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, ok := parseIDParam(w, r, "videoId")
	if !ok {
		return
	}

	var req model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Add(r.Context(), user.ID, videoID, req.Content)
	if err != nil {
		writeCommentError(w, err, "Failed to add comment")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, comment, "Comment added successfully")
}

// Update changes a comment's content. Owner only.
// PATCH /comments/c/{commentId}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	commentID, ok := parseIDParam(w, r, "commentId")
	if !ok {
		return
	}

	var req model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, user.ID, req.Content)
	if err != nil {
		writeCommentError(w, err, "Failed to update comment")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, comment, "Comment updated successfully")
}

// Delete removes a comment. Owner only.
// DELETE /comments/c/{commentId}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	commentID, ok := parseIDParam(w, r, "commentId")
	if !ok {
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID, user.ID); err != nil {
		writeCommentError(w, err, "Failed to delete comment")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Comment deleted successfully")
}

func writeCommentError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrContentRequired):
		httputil.WriteBadRequest(w, "Content is required")
	case errors.Is(err, model.ErrContentTooLong):
		httputil.WriteBadRequest(w, "Content exceeds maximum length")
	case errors.Is(err, model.ErrVideoNotFound):
		httputil.WriteNotFound(w, "Video not found")
	case errors.Is(err, model.ErrCommentNotFound):
		httputil.WriteNotFound(w, "Comment not found")
	case errors.Is(err, model.ErrNotCommentOwner):
		httputil.WriteForbidden(w, "You do not own this comment")
	default:
		httputil.WriteInternalError(w, fallback)
	}
}
