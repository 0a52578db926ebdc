package model

import "errors"

// UploadResult carries the public URL and storage key of an uploaded object.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// ChannelStats is the dashboard aggregate for one channel, computed at read
// time from videos, subscription edges, and like edges.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalLikes       int64 `json:"total_likes"`
}

const (
	MaxAvatarSizeBytes = 5 * 1024 * 1024
	MaxVideoSizeBytes  = 200 * 1024 * 1024

	AvatarWidth  = 400
	AvatarHeight = 400
	CoverWidth   = 1280
	CoverHeight  = 360

	AvatarFolder    = "avatars"
	CoverFolder     = "covers"
	VideoFolder     = "videos"
	ThumbnailFolder = "thumbnails"

	ContentTypeJPEG = "image/jpeg"
	ImageExt        = ".jpg"

	ImageCacheControl = "public, max-age=31536000"
)

var (
	ErrFileTooLarge     = errors.New("file exceeds size limit")
	ErrInvalidImageType = errors.New("unsupported image type")
	ErrFileRequired     = errors.New("file is required")
)

// IsAllowedImageType reports whether the content type is an accepted upload.
func IsAllowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
