package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// PlaylistHandler groups playlist endpoints and their dependencies.
type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

// NewPlaylistHandler wires dependencies for playlist endpoints.
func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create makes a new empty playlist.
// POST /playlist
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	playlist, err := h.playlistService.Create(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		httputil.WriteInternalError(w, "Failed to create playlist")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, playlist, "Playlist created successfully")
}

// Get fetches a playlist with its videos.
// GET /playlist/{playlistId}
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := parseIDParam(w, r, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.GetByID(r.Context(), playlistID)
	if err != nil {
		writePlaylistError(w, err, "Failed to fetch playlist")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, playlist, "Playlist fetched successfully")
}

// ListByUser returns all playlists owned by a user.
// GET /playlist/user/{userId}
func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	playlists, err := h.playlistService.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to list playlists")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, playlists, "Playlists fetched successfully")
}

// Update changes name and description. Owner only.
// PATCH /playlist/{playlistId}
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	playlistID, ok := parseIDParam(w, r, "playlistId")
	if !ok {
		return
	}

	var req model.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	playlist, err := h.playlistService.Update(r.Context(), playlistID, user.ID, req)
	if err != nil {
		writePlaylistError(w, err, "Failed to update playlist")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, playlist, "Playlist updated successfully")
}

// Delete removes a playlist. Owner only.
// DELETE /playlist/{playlistId}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	playlistID, ok := parseIDParam(w, r, "playlistId")
	if !ok {
		return
	}

	if err := h.playlistService.Delete(r.Context(), playlistID, user.ID); err != nil {
		writePlaylistError(w, err, "Failed to delete playlist")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Playlist deleted successfully")
}

// AddVideo adds a video to a playlist. Owner only, idempotent.
// PATCH /playlist/add/{videoId}/{playlistId}
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.updateMembership(w, r, h.playlistService.AddVideo, "Video added to playlist")
}

// RemoveVideo removes a video from a playlist. Owner only.
// PATCH /playlist/remove/{videoId}/{playlistId}
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.updateMembership(w, r, h.playlistService.RemoveVideo, "Video removed from playlist")
}

func (h *PlaylistHandler) updateMembership(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, playlistID, videoID, userID int64) (*model.Playlist, error),
	message string,
) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, ok := parseIDParam(w, r, "videoId")
	if !ok {
		return
	}
	playlistID, ok := parseIDParam(w, r, "playlistId")
	if !ok {
		return
	}

	playlist, err := op(r.Context(), playlistID, videoID, user.ID)
	if err != nil {
		writePlaylistError(w, err, "Failed to update playlist")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, playlist, message)
}

func writePlaylistError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrPlaylistNotFound):
		httputil.WriteNotFound(w, "Playlist not found")
	case errors.Is(err, model.ErrNotPlaylistOwner):
		httputil.WriteForbidden(w, "You do not own this playlist")
	case errors.Is(err, model.ErrVideoNotFound):
		httputil.WriteNotFound(w, "Video not found")
	default:
		httputil.WriteInternalError(w, fallback)
	}
}
