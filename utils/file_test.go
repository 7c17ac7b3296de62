package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	assert.NoError(t, ValidateImageFile(&multipart.FileHeader{Filename: "mug.PNG", Size: 100}, 1024))
	assert.ErrorIs(t, ValidateImageFile(&multipart.FileHeader{Filename: "mug.png", Size: 2048}, 1024), ErrInvalidImage)
	assert.ErrorIs(t, ValidateImageFile(&multipart.FileHeader{Filename: "mug.exe", Size: 10}, 1024), ErrInvalidImage)
	assert.ErrorIs(t, ValidateImageFile(nil, 1024), ErrInvalidImage)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_mug", SanitizeFilename("my mug.png"))
	assert.Equal(t, "mug", SanitizeFilename("../../mug.jpg"))
}
