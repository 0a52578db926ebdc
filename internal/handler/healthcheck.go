package handler

import (
	"net/http"

	"vidtube/internal/httputil"
)

// Healthcheck reports that the service is up.
// GET /healthcheck
func Healthcheck(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
