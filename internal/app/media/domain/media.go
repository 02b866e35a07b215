package domain

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

const (
	ThumbnailMaxSize = 640
	ThumbnailQuality = 80

	// ThumbnailMaxSourcePixels bounds the images decoded for a thumbnail.
	ThumbnailMaxSourcePixels = 40_000_000
)

var (
	ErrNoFile        = errors.New("no file found")
	ErrEmptyText     = errors.New("text is required")
	ErrImageTooLarge = errors.New("image is too large to thumbnail")
)

var whitespace = regexp.MustCompile(`\s`)

// ObjectName is the storage name of an uploaded file:
// uploads/<unix-ms>-<name with whitespace replaced by underscores>.
func ObjectName(filename string, now time.Time) string {
	return fmt.Sprintf("uploads/%d-%s", now.UnixMilli(), whitespace.ReplaceAllString(filename, "_"))
}

// ThumbnailName places the thumbnail next to its object.
func ThumbnailName(object string) string {
	ext := path.Ext(object)
	return strings.TrimSuffix(object, ext) + "_thumb.jpg"
}

func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}
