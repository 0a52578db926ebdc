package handler

import (
	"net/http"

	"vidtube/internal/httputil"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// DashboardHandler groups channel dashboard endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler wires dependencies for dashboard endpoints.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns read-time aggregate totals for the viewer's channel.
// GET /dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	stats, err := h.dashboardService.GetChannelStats(r.Context(), user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to fetch channel stats")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, stats, "Channel stats fetched successfully")
}

// Videos lists all of the viewer's uploads, published or not.
// GET /dashboard/videos
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videos, err := h.dashboardService.GetChannelVideos(r.Context(), user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to fetch channel videos")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, videos, "Channel videos fetched successfully")
}
