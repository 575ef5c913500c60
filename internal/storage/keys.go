package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize caps uploaded avatars and recipe images.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageExtension returns the file extension for an accepted image content type.
func ImageExtension(contentType string) (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := imageExtensions[ct]
	return ext, ok
}

// ImageKey builds a unique object key such as "avatars/<owner>/<random>.png".
func ImageKey(prefix string, owner uuid.UUID, ext string) string {
	return fmt.Sprintf("%s/%s/%s%s", prefix, owner, uuid.New(), ext)
}
