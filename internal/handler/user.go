package handler

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vidtube/internal/config"
	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// RefreshTokenCookie is the cookie carrying the refresh token for browsers.
const RefreshTokenCookie = "refreshToken"

// UserHandler groups account and auth endpoints and their dependencies.
type UserHandler struct {
	userService  *service.UserService
	authService  *service.AuthService
	mediaService *service.MediaService
	config       *config.Config
}

// NewUserHandler wires dependencies for account endpoints.
func NewUserHandler(userService *service.UserService, authService *service.AuthService, mediaService *service.MediaService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService:  userService,
		authService:  authService,
		mediaService: mediaService,
		config:       cfg,
	}
}

// Register handles multipart sign-up. The avatar is required; the cover
// image is optional.
// POST /users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	maxFormSize := int64(model.MaxAvatarSizeBytes)*2 + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
			return
		}
		if strings.Contains(err.Error(), "request body too large") {
			httputil.WriteBadRequest(w, "Upload exceeds size limit")
			return
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req := model.RegisterRequest{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		FullName: strings.TrimSpace(r.FormValue("full_name")),
		Password: r.FormValue("password"),
	}

	avatarFile, avatarHeader, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "Avatar file is required")
		return
	}
	defer avatarFile.Close()

	avatarUpload, err := h.mediaService.UploadAvatar(r.Context(), avatarFile, avatarHeader)
	if err != nil {
		writeUploadError(w, err, "avatar")
		return
	}
	req.AvatarURL = avatarUpload.URL
	req.AvatarKey = avatarUpload.Key

	if coverFile, coverHeader, coverErr := r.FormFile("cover_image"); coverErr == nil {
		defer coverFile.Close()
		coverUpload, uploadErr := h.mediaService.UploadCoverImage(r.Context(), coverFile, coverHeader)
		if uploadErr != nil {
			writeUploadError(w, uploadErr, "cover image")
			return
		}
		req.CoverImageURL = &coverUpload.URL
		req.CoverImageKey = &coverUpload.Key
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrValidation):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrUserExists):
			httputil.WriteConflict(w, "User with email or username already exists")
		default:
			httputil.WriteInternalError(w, "Failed to register user")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, user, "User registered successfully")
}

// Login verifies credentials, issues the token pair, and sets auth cookies.
// POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrValidation):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User does not exist")
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "Invalid user credentials")
		default:
			httputil.WriteInternalError(w, "Failed to log in")
		}
		return
	}

	h.setAuthCookies(w, resp.AccessToken, resp.RefreshToken)
	httputil.WriteSuccess(w, http.StatusOK, resp, "User logged in successfully")
}

// Logout clears the stored refresh token and expires the auth cookies.
// POST /users/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		httputil.WriteInternalError(w, "Failed to log out")
		return
	}

	h.clearAuthCookies(w)
	httputil.WriteSuccess(w, http.StatusOK, nil, "User logged out successfully")
}

// Refresh rotates the refresh token. The token comes from the cookie or,
// failing that, the request body.
// POST /users/refresh-token
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	presented := ""
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil && cookie.Value != "" {
		presented = cookie.Value
	} else {
		var req model.RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	if presented == "" {
		httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenInvalid, "Refresh token is required")
		return
	}

	pair, err := h.authService.Refresh(r.Context(), presented)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTokenExpired):
			httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenExpired, "Refresh token has expired")
		case errors.Is(err, model.ErrTokenReused):
			httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenReused, "Refresh token is expired or used")
		case errors.Is(err, model.ErrTokenInvalid):
			httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenInvalid, "Invalid refresh token")
		default:
			httputil.WriteInternalError(w, "Failed to refresh tokens")
		}
		return
	}

	h.setAuthCookies(w, pair.AccessToken, pair.RefreshToken)
	httputil.WriteSuccess(w, http.StatusOK, pair, "Access token refreshed")
}

// ChangePassword verifies the old password and replaces it.
// POST /users/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.userService.ChangePassword(r.Context(), user.ID, &req); err != nil {
		switch {
		case errors.Is(err, model.ErrValidation):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "Old password is incorrect")
		default:
			httputil.WriteInternalError(w, "Failed to change password")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Password changed successfully")
}

// CurrentUser returns the authenticated account.
// GET /users/current-user
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, user, "Current user fetched successfully")
}

// UpdateAccount changes full name and email.
// PATCH /users/update-account
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	updated, err := h.userService.UpdateAccount(r.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrValidation):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrUserExists):
			httputil.WriteConflict(w, "Email already in use")
		default:
			httputil.WriteInternalError(w, "Failed to update account")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, updated, "Account details updated successfully")
}

// UpdateAvatar replaces the avatar and removes the previous object.
// PATCH /users/avatar
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar",
		h.mediaService.UploadAvatar,
		h.userService.UpdateAvatar)
}

// UpdateCoverImage replaces the cover image and removes the previous object.
// PATCH /users/cover-image
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "cover_image",
		h.mediaService.UploadCoverImage,
		h.userService.UpdateCoverImage)
}

// ChannelProfile returns the derived channel view with counts and the
// viewer-relative subscription flag.
// GET /users/c/{username}
func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}

	profile, err := h.userService.GetChannelProfile(r.Context(), username, viewer.ID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "Channel does not exist")
			return
		}
		httputil.WriteInternalError(w, "Failed to fetch channel profile")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, profile, "Channel profile fetched successfully")
}

// WatchHistory returns the viewer's watch history, most recent first.
// GET /users/history
func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	history, err := h.userService.GetWatchHistory(r.Context(), user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to fetch watch history")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, history, "Watch history fetched successfully")
}

func (h *UserHandler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	upload func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error),
	apply func(ctx context.Context, userID int64, result *model.UploadResult) (*model.User, error),
) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	maxFormSize := int64(model.MaxAvatarSizeBytes) + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		httputil.WriteBadRequest(w, "File is required")
		return
	}
	defer file.Close()

	result, err := upload(r.Context(), file, header)
	if err != nil {
		writeUploadError(w, err, field)
		return
	}

	updated, err := apply(r.Context(), user.ID, result)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to update image")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, updated, "Image updated successfully")
}

func (h *UserHandler) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.config.AccessTokenMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.config.RefreshTokenMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *UserHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

func writeUploadError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, model.ErrFileTooLarge):
		httputil.WriteBadRequest(w, "File exceeds size limit")
	case errors.Is(err, model.ErrInvalidImageType):
		httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
	case errors.Is(err, model.ErrFileRequired):
		httputil.WriteBadRequest(w, "File is required")
	default:
		httputil.WriteInternalError(w, "Failed to upload "+what)
	}
}
