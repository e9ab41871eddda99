package media

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func timeFixed() time.Time {
	return time.UnixMilli(1700000000000)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLocalSaveResizesWideImages(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "/uploads/")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	asset, err := store.Save(context.Background(), Upload{
		Filename:    "Wide Shot.png",
		ContentType: "image/png",
		Data:        pngBytes(t, 2400, 1600),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if asset.Width != 1200 || asset.Height != 800 {
		t.Errorf("size = %dx%d, want 1200x800", asset.Width, asset.Height)
	}
	if asset.URL != "/uploads/"+asset.ID+".jpg" {
		t.Errorf("URL = %q", asset.URL)
	}
	if asset.OriginalURL != "/uploads/originals/"+asset.ID+".png" {
		t.Errorf("OriginalURL = %q", asset.OriginalURL)
	}
	if _, err := os.Stat(filepath.Join(dir, asset.ID+".jpg")); err != nil {
		t.Errorf("display copy missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "originals", asset.ID+".png")); err != nil {
		t.Errorf("original missing: %v", err)
	}
}

func TestLocalSaveKeepsSmallImages(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	asset, err := store.Save(context.Background(), Upload{Filename: "a.png", Data: pngBytes(t, 300, 200)})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if asset.Width != 300 || asset.Height != 200 {
		t.Errorf("size = %dx%d, want 300x200", asset.Width, asset.Height)
	}
}

func TestLocalSaveRejectsNonImages(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	_, err = store.Save(context.Background(), Upload{Filename: "notes.txt", Data: []byte("hello")})
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("Save error = %v, want ErrUnsupportedImage", err)
	}
}

// pngHeader returns a PNG that declares w x h grayscale pixels but carries
// no image data. It is enough for image.DecodeConfig.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth, color type 0 (gray)
	chunk := append([]byte("IHDR"), ihdr...)
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestLocalSaveRejectsOversizedDimensions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	data := pngHeader(16000, 16000)
	if len(data) > 100 {
		t.Fatalf("header is %d bytes, expected a tiny file", len(data))
	}

	_, err = store.Save(context.Background(), Upload{Filename: "bomb.png", ContentType: "image/png", Data: data})
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("Save error = %v, want ErrUnsupportedImage", err)
	}
	if !strings.Contains(err.Error(), "16000x16000") {
		t.Errorf("error %q should name the dimensions", err)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.Name() != originalsSubdir {
			t.Errorf("unexpected file written: %s", e.Name())
		}
	}
	originals, _ := os.ReadDir(filepath.Join(dir, originalsSubdir))
	if len(originals) != 0 {
		t.Errorf("originals written for rejected upload: %d", len(originals))
	}
}

func TestProcessImageAcceptsPixelBudget(t *testing.T) {
	if _, err := processImage(pngBytes(t, 64, 64)); err != nil {
		t.Fatalf("small image rejected: %v", err)
	}
	// One row over the 50 MP budget.
	_, err := processImage(pngHeader(10000, 5001))
	if !errors.Is(err, ErrUnsupportedImage) || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("processImage(10000x5001) = %v, want pixel budget error", err)
	}
}

func TestLocalSaveUniqueIDs(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	data := pngBytes(t, 10, 10)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		asset, err := store.Save(context.Background(), Upload{Filename: "same.png", Data: data})
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if seen[asset.ID] {
			t.Fatalf("duplicate id %s", asset.ID)
		}
		seen[asset.ID] = true
	}
}

func TestLocalDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	asset, err := store.Save(context.Background(), Upload{Filename: "a.png", Data: pngBytes(t, 10, 10)})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(context.Background(), asset.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, asset.ID+".jpg")); !os.IsNotExist(err) {
		t.Errorf("display copy still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "originals", asset.ID+".png")); !os.IsNotExist(err) {
		t.Errorf("original still present: %v", err)
	}

	// Second delete finds nothing and is not an error.
	if err := store.Delete(context.Background(), asset.ID); err != nil {
		t.Errorf("repeat Delete: %v", err)
	}
}

func TestLocalDeleteRejectsTraversal(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	for _, id := range []string{"", "../secret", "a/b", "*"} {
		if err := store.Delete(context.Background(), id); err == nil {
			t.Errorf("Delete(%q) should fail", id)
		}
	}
}

func TestFixOrientationSwapsAxes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	for _, o := range []int{5, 6, 7, 8} {
		got := fixOrientation(img, o).Bounds()
		if got.Dx() != 10 || got.Dy() != 40 {
			t.Errorf("orientation %d: %dx%d, want 10x40", o, got.Dx(), got.Dy())
		}
	}
	for _, o := range []int{1, 2, 3, 4} {
		got := fixOrientation(img, o).Bounds()
		if got.Dx() != 40 || got.Dy() != 10 {
			t.Errorf("orientation %d: %dx%d, want 40x10", o, got.Dx(), got.Dy())
		}
	}
}

func TestOriginalExt(t *testing.T) {
	tests := []struct {
		filename, contentType, want string
	}{
		{"a.JPG", "image/jpeg", ".jpg"},
		{"a", "image/png", ".png"},
		{"a.we ird", "image/webp", ".webp"},
		{"noext", "application/x-unknown-thing", ".bin"},
	}
	for _, tt := range tests {
		if got := originalExt(tt.filename, tt.contentType); got != tt.want {
			t.Errorf("originalExt(%q, %q) = %q, want %q", tt.filename, tt.contentType, got, tt.want)
		}
	}
}

func TestNewIDShape(t *testing.T) {
	id := NewID(timeFixed())
	parts := strings.SplitN(id, "-", 2)
	if len(parts) != 2 || parts[0] != "1700000000000" || len(parts[1]) != 8 {
		t.Errorf("NewID = %q", id)
	}
	if !localIDPattern.MatchString(id) {
		t.Errorf("NewID %q is not a valid local id", id)
	}
}

func TestIsImageContentType(t *testing.T) {
	if !IsImageContentType("Image/JPEG") {
		t.Error("image/jpeg should be accepted")
	}
	if IsImageContentType("application/pdf") {
		t.Error("application/pdf should be rejected")
	}
}
