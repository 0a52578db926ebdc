package handler

import (
	"errors"
	"net/http"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// SubscriptionHandler groups subscription endpoints and their dependencies.
type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

// NewSubscriptionHandler wires dependencies for subscription endpoints.
func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle flips the subscription edge between the viewer and a channel.
// POST /subscriptions/c/{channelId}
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	channelID, ok := parseIDParam(w, r, "channelId")
	if !ok {
		return
	}

	result, err := h.subscriptionService.Toggle(r.Context(), user.ID, channelID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCannotSubscribeSelf):
			httputil.WriteBadRequest(w, "Cannot subscribe to your own channel")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "Channel not found")
		default:
			httputil.WriteInternalError(w, "Failed to toggle subscription")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, result, "Subscription toggled successfully")
}

// Subscribers lists the accounts subscribed to a channel.
// GET /subscriptions/c/{channelId}
func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, ok := parseIDParam(w, r, "channelId")
	if !ok {
		return
	}

	subscribers, err := h.subscriptionService.GetSubscribers(r.Context(), channelID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "Channel not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to fetch subscribers")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

// SubscribedChannels lists the channels a user subscribes to.
// GET /subscriptions/u/{subscriberId}
func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, ok := parseIDParam(w, r, "subscriberId")
	if !ok {
		return
	}

	channels, err := h.subscriptionService.GetSubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to fetch subscribed channels")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
