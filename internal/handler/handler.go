package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vidtube/internal/httputil"
)

// parseIDParam reads a positive integer path parameter. Writes a 400 and
// returns false when the value is missing or malformed.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteBadRequest(w, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, returning 0 when absent or
// malformed so callers fall back to defaults.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
