package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// VideoHandler groups video endpoints and their dependencies.
type VideoHandler struct {
	videoService *service.VideoService
}

// NewVideoHandler wires dependencies for video endpoints.
func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// List returns a paginated page of published videos.
// GET /videos?page=&limit=&query=&sort_by=&sort_type=&user_id=
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := model.VideoListQuery{
		Query:   strings.TrimSpace(r.URL.Query().Get("query")),
		SortBy:  r.URL.Query().Get("sort_by"),
		SortAsc: strings.EqualFold(r.URL.Query().Get("sort_type"), "asc"),
		Page:    queryInt(r, "page"),
		Limit:   queryInt(r, "limit"),
	}

	if raw := r.URL.Query().Get("user_id"); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			httputil.WriteBadRequest(w, "Invalid user_id")
			return
		}
		q.OwnerID = &ownerID
	}

	resp, err := h.videoService.List(r.Context(), q)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list videos")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, resp, "Videos fetched successfully")
}

// Publish uploads the video file and thumbnail and creates the record.
// POST /videos
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	maxFormSize := int64(model.MaxVideoSizeBytes) + int64(model.MaxAvatarSizeBytes) + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
			return
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	in := service.PublishInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if raw := r.FormValue("duration_seconds"); raw != "" {
		if d, err := strconv.ParseFloat(raw, 64); err == nil && d > 0 {
			in.DurationSeconds = d
		}
	}

	videoFile, videoHeader, err := r.FormFile("video_file")
	if err != nil {
		httputil.WriteBadRequest(w, "Video file is required")
		return
	}
	defer videoFile.Close()
	in.VideoFile = videoFile
	in.VideoHeader = videoHeader

	thumbFile, thumbHeader, err := r.FormFile("thumbnail")
	if err != nil {
		httputil.WriteBadRequest(w, "Thumbnail is required")
		return
	}
	defer thumbFile.Close()
	in.Thumbnail = thumbFile
	in.ThumbnailHeader = thumbHeader

	video, err := h.videoService.Publish(r.Context(), user.ID, in)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrFileRequired):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "File exceeds size limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported thumbnail type")
		default:
			httputil.WriteInternalError(w, "Failed to publish video")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, video, "Video published successfully")
}

// Get fetches a video by ID. The view is recorded asynchronously.
// GET /videos/{videoId}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, ok := parseIDParam(w, r, "videoId")
	if !ok {
		return
	}

	video, err := h.videoService.GetByID(r.Context(), videoID, user.ID)
	if err != nil {
		if errors.Is(err, model.ErrVideoNotFound) {
			httputil.WriteNotFound(w, "Video not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to fetch video")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, video, "Video fetched successfully")
}

// Update changes title and description. Owner only.
// PATCH /videos/{videoId}
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, ok := parseIDParam(w, r, "videoId")
	if !ok {
		return
	}

	var req model.UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	video, err := h.videoService.Update(r.Context(), videoID, user.ID, req)
	if err != nil {
		writeVideoError(w, err, "Failed to update video")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, video, "Video updated successfully")
}

// UpdateThumbnail replaces the thumbnail image. Owner only.
// PATCH /videos/{videoId}/thumbnail
func (h *VideoHandler) UpdateThumbnail(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, ok := parseIDParam(w, r, "videoId")
	if !ok {
		return
	}

	maxFormSize := int64(model.MaxAvatarSizeBytes) + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("thumbnail")
	if err != nil {
		httputil.WriteBadRequest(w, "Thumbnail is required")
		return
	}
	defer file.Close()

	video, err := h.videoService.UpdateThumbnail(r.Context(), videoID, user.ID, file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "File exceeds size limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported thumbnail type")
		default:
			writeVideoError(w, err, "Failed to update thumbnail")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, video, "Thumbnail updated successfully")
}

// Delete removes a video and its stored objects. Owner only.
// DELETE /videos/{videoId}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, ok := parseIDParam(w, r, "videoId")
	if !ok {
		return
	}

	if err := h.videoService.Delete(r.Context(), videoID, user.ID); err != nil {
		writeVideoError(w, err, "Failed to delete video")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Video deleted successfully")
}

// TogglePublish flips the publish flag. Owner only.
// PATCH /videos/toggle/publish/{videoId}
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, ok := parseIDParam(w, r, "videoId")
	if !ok {
		return
	}

	video, err := h.videoService.TogglePublish(r.Context(), videoID, user.ID)
	if err != nil {
		writeVideoError(w, err, "Failed to toggle publish status")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, video, "Publish status toggled successfully")
}

func writeVideoError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrVideoNotFound):
		httputil.WriteNotFound(w, "Video not found")
	case errors.Is(err, model.ErrNotVideoOwner):
		httputil.WriteForbidden(w, "You do not own this video")
	default:
		httputil.WriteInternalError(w, fallback)
	}
}
