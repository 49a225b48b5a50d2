package upload

import (
	"fmt"
	"mime"
	"strings"
	"time"
)

// MaxUploadBytes is the largest accepted video file.
const MaxUploadBytes int64 = 300 << 20

const storagePrefix = "trailers"

// extensions maps the accepted video MIME types to storage file extensions.
var extensions = map[string]string{
	"video/mp4":        "mp4",
	"video/webm":       "webm",
	"video/quicktime":  "mov",
	"video/x-matroska": "mkv",
	"video/ogg":        "ogv",
	"video/x-msvideo":  "avi",
	"video/mpeg":       "mpeg",
}

// MediaType returns the bare, lowercased MIME type of a Content-Type header.
func MediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

// IsAllowedType reports whether a Content-Type is an accepted video type.
func IsAllowedType(contentType string) bool {
	_, ok := extensions[MediaType(contentType)]
	return ok
}

// ExtensionFor returns the file extension for a content type, mp4 when unknown.
func ExtensionFor(contentType string) string {
	if ext, ok := extensions[MediaType(contentType)]; ok {
		return ext
	}
	return "mp4"
}

// StoragePath builds trailers/<unix-millis>_<slug>.<ext>.
func StoragePath(at time.Time, slug, ext string) string {
	return fmt.Sprintf("%s/%d_%s.%s", storagePrefix, at.UnixMilli(), slug, ext)
}
