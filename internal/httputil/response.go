package httputil

import (
	"encoding/json"
	"net/http"
)

// Token-specific error codes surfaced inside the errors array so clients can
// distinguish "retry login" from "retry refresh".
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeTokenReused  = "TOKEN_REUSED"
)

// APIResponse is the uniform success envelope used by every endpoint.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// APIError is the uniform error envelope. Errors carries optional
// machine-checkable codes; stack traces are never included.
type APIError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// WriteSuccess writes the standard success envelope with the given status code.
func WriteSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, status int, message string, codes ...string) {
	if codes == nil {
		codes = []string{}
	}
	writeJSON(w, status, APIError{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     codes,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers already sent; nothing useful left to do.
		return
	}
}

// Common error response helpers

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

// WriteUnauthorizedWithCode attaches a token error code to a 401 response.
func WriteUnauthorizedWithCode(w http.ResponseWriter, code string, message string) {
	WriteError(w, http.StatusUnauthorized, message, code)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
