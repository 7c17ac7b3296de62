package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var ErrInvalidImage = errors.New("invalid image")

// ValidateImageFile checks an uploaded image's size and extension.
func ValidateImageFile(fileHeader *multipart.FileHeader, maxSize int64) error {
	if fileHeader == nil {
		return fmt.Errorf("%w: image file is required", ErrInvalidImage)
	}
	if maxSize > 0 && fileHeader.Size > maxSize {
		return fmt.Errorf("%w: file size exceeds maximum allowed size", ErrInvalidImage)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return fmt.Errorf("%w: only jpg, jpeg, png, gif, webp are allowed", ErrInvalidImage)
	}
	return nil
}

// SanitizeFilename replaces spaces and strips the extension, for use as an
// object id.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(name, " ", "_")
}
