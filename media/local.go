package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const originalsSubdir = "originals"

var localIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var commonExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// Local keeps uploads on disk: a resized JPEG at <dir>/<id>.jpg and the
// untouched upload at <dir>/originals/<id><ext>.
type Local struct {
	dir     string
	baseURL string
	now     func() time.Time
}

// NewLocal creates the upload directories and returns a Local store whose
// URLs are prefixed with baseURL (for example "/uploads").
func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(filepath.Join(dir, originalsSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}, nil
}

// Name implements Store.
func (l *Local) Name() string { return DriverLocal }

// Dir returns the directory served under the base URL.
func (l *Local) Dir() string { return l.dir }

// Save implements Store.
func (l *Local) Save(ctx context.Context, up Upload) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}
	p, err := processImage(up.Data)
	if err != nil {
		return Asset{}, err
	}

	id := NewID(l.now())
	ext := originalExt(up.Filename, up.ContentType)
	displayPath := filepath.Join(l.dir, id+".jpg")
	originalPath := filepath.Join(l.dir, originalsSubdir, id+ext)

	if err := os.WriteFile(displayPath, p.data, 0o644); err != nil {
		return Asset{}, fmt.Errorf("write image: %w", err)
	}
	if err := os.WriteFile(originalPath, up.Data, 0o644); err != nil {
		_ = os.Remove(displayPath)
		return Asset{}, fmt.Errorf("write original: %w", err)
	}

	return Asset{
		ID:          id,
		URL:         l.baseURL + "/" + id + ".jpg",
		OriginalURL: l.baseURL + "/" + originalsSubdir + "/" + id + ext,
		Width:       p.width,
		Height:      p.height,
	}, nil
}

// Delete implements Store. Files that are already gone are not an error.
func (l *Local) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !localIDPattern.MatchString(id) {
		return fmt.Errorf("invalid media id %q", id)
	}
	if err := removeIfExists(filepath.Join(l.dir, id+".jpg")); err != nil {
		return err
	}
	originals, err := filepath.Glob(filepath.Join(l.dir, originalsSubdir, id+".*"))
	if err != nil {
		return err
	}
	for _, path := range originals {
		if err := removeIfExists(path); err != nil {
			return err
		}
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// originalExt picks the extension for the stored original, preferring the
// client's file name and falling back to the content type.
func originalExt(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" && localIDPattern.MatchString(ext[1:]) {
		return ext
	}
	if ext, ok := commonExts[strings.ToLower(contentType)]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
