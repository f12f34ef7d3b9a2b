// Package validation contains input validation for user-supplied content.
package validation

import (
	"fmt"
	"mime/multipart"
	"strings"
)

// Content length limits. Titles mirror the database column width; free-text
// bodies are capped to keep feed rows cheap to score.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 5000
	MaxCommentLength     = 2000
	MaxTweetLength       = 500
	MaxPlaylistNameLen   = 255
)

var videoContentTypes = map[string]bool{
	"video/mp4":        true,
	"video/webm":       true,
	"video/quicktime":  true,
	"video/x-matroska": true,
}

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Validator validates user-supplied content and uploads.
type Validator struct {
	maxUploadSize int64
}

// New creates a Validator enforcing the given upload size ceiling.
func New(maxUploadSize int64) *Validator {
	return &Validator{maxUploadSize: maxUploadSize}
}

// ValidateTitle checks a video title.
func (v *Validator) ValidateTitle(title string) error {
	return requireText("title", title, MaxTitleLength)
}

// ValidateDescription checks a video description. Empty is allowed.
func (v *Validator) ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLength)
	}
	return nil
}

// ValidateComment checks comment content.
func (v *Validator) ValidateComment(content string) error {
	return requireText("content", content, MaxCommentLength)
}

// ValidateTweet checks tweet content.
func (v *Validator) ValidateTweet(content string) error {
	return requireText("content", content, MaxTweetLength)
}

// ValidatePlaylistName checks a playlist name.
func (v *Validator) ValidatePlaylistName(name string) error {
	return requireText("name", name, MaxPlaylistNameLen)
}

// ValidateVideoUpload checks the size and declared content type of an
// uploaded video file.
func (v *Validator) ValidateVideoUpload(fh *multipart.FileHeader) error {
	return v.validateUpload(fh, videoContentTypes, "video")
}

// ValidateImageUpload checks the size and declared content type of an
// uploaded image file.
func (v *Validator) ValidateImageUpload(fh *multipart.FileHeader) error {
	return v.validateUpload(fh, imageContentTypes, "image")
}

func (v *Validator) validateUpload(fh *multipart.FileHeader, allowed map[string]bool, kind string) error {
	if fh == nil {
		return fmt.Errorf("%s file is required", kind)
	}
	if fh.Size <= 0 {
		return fmt.Errorf("%s file is empty", kind)
	}
	if fh.Size > v.maxUploadSize {
		return fmt.Errorf("%s file exceeds maximum size of %d bytes", kind, v.maxUploadSize)
	}

	contentType := fh.Header.Get("Content-Type")
	if !allowed[contentType] {
		return fmt.Errorf("unsupported %s content type: %s", kind, contentType)
	}

	return nil
}

func requireText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(value) > maxLen {
		return fmt.Errorf("%s exceeds %d characters", field, maxLen)
	}
	return nil
}
