// Package media stores uploaded photographs and returns the URLs they are
// served from. Two drivers exist: Local writes resized JPEGs to disk and
// Cloudinary hands the bytes to the hosted upload API.
package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Driver names accepted in configuration.
const (
	DriverLocal      = "local"
	DriverCloudinary = "cloudinary"
)

// MaxUploadSize is the largest single file accepted by any driver.
const MaxUploadSize = 10 << 20

// ErrUnsupportedImage is returned when the uploaded bytes are not a decodable image.
var ErrUnsupportedImage = errors.New("unsupported image")

// Upload is one file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Asset describes a stored image.
type Asset struct {
	ID          string
	URL         string
	OriginalURL string
	Width       int
	Height      int
}

// Store persists images. Implementations must be safe for concurrent use.
type Store interface {
	Name() string
	Save(ctx context.Context, up Upload) (Asset, error)
	Delete(ctx context.Context, id string) error
}

// NewID returns "<unixmillis>-<8 hex chars>".
func NewID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d-%s", now.UnixMilli(), random[:8])
}

// IsImageContentType reports whether a multipart content type names an image.
func IsImageContentType(ct string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ct)), "image/")
}
