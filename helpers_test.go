package folio

import (
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello, World!", "hello-world"},
		{"  --Urban  Night--  ", "urban-night"},
		{"Şehir Manzaraları", "sehir-manzaralari"},
		{"Çiçek Pazarı", "cicek-pazari"},
		{"Straße", "strasse"},
		{"Ünlü Ödül", "unlu-odul"},
		{"B&W 35mm", "b-w-35mm"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("short"); got != "short..." {
		t.Errorf("Excerpt(short) = %q", got)
	}

	long := strings.Repeat("a", 200)
	got := Excerpt(long)
	if got != strings.Repeat("a", 150)+"..." {
		t.Errorf("Excerpt(200 chars) has length %d", len(got))
	}

	// Counts characters, not bytes.
	accented := strings.Repeat("é", 151)
	if got := Excerpt(accented); got != strings.Repeat("é", 150)+"..." {
		t.Errorf("Excerpt cut multi-byte text incorrectly: %q", got)
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{" a ", "", "  ", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v, want [a b]", got)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", []string{"blog", "first-light"}, "https://example.com/blog/first-light"},
		{"https://example.com/", nil, "https://example.com/"},
		{"https://example.com", nil, "https://example.com/"},
		{"https://example.com/site/", []string{"blog"}, "https://example.com/site/blog"},
		{"https://example.com", []string{"/uploads/a.jpg"}, "https://example.com/uploads/a.jpg"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	if got := absoluteURL("https://example.com", "/uploads/a.jpg"); got != "https://example.com/uploads/a.jpg" {
		t.Errorf("absoluteURL(local) = %q", got)
	}
	remote := "https://res.cloudinary.com/demo/image/upload/a.jpg"
	if got := absoluteURL("https://example.com", remote); got != remote {
		t.Errorf("absoluteURL(remote) = %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.FixedZone("CET", 3600))
	if got := formatTime(ts); got != "2026-01-02T02:04:05.006Z" {
		t.Errorf("formatTime = %q", got)
	}
}

func TestNewPostID(t *testing.T) {
	if got := newPostID(time.UnixMilli(1700000000000), "first-light"); got != "1700000000000-first-light" {
		t.Errorf("newPostID = %q", got)
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"harbour.jpg", "harbour"},
		{"IMG_0042.final.jpeg", "IMG_0042"},
		{`C:\Users\me\Pictures\dune.png`, "dune"},
		{"trips/2025/fog.webp", "fog"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
	}
	for _, tt := range tests {
		if got := titleFromFilename(tt.in); got != tt.want {
			t.Errorf("titleFromFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestImageType(t *testing.T) {
	tests := []struct {
		ref, want string
	}{
		{"/uploads/cover.jpg", "image/jpeg"},
		{"https://images.example.com/a/cover.PNG", "image/png"},
		{"https://images.example.com/cover.webp?w=1200", "image/webp"},
		{"https://images.example.com/cover.gif#top", "image/gif"},
		{"https://images.example.com/photo-123?w=1200", "image/jpeg"},
		{"https://images.example.com/readme.txt", "image/jpeg"},
	}
	for _, tt := range tests {
		if got := imageType(tt.ref); got != tt.want {
			t.Errorf("imageType(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
