package folio

import (
	"sync"
	"time"
)

// ContentCache is an in-memory TTL cache of the public photo and post lists.
// Writers call Invalidate after every successful mutation.
type ContentCache struct {
	mu      sync.RWMutex
	photos  []Photo
	posts   []BlogPost
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewContentCache creates a ContentCache backed by the given Store.
func NewContentCache(s *Store, ttl time.Duration) *ContentCache {
	return &ContentCache{store: s, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	return c.photos != nil && c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.photos = nil
	c.posts = nil
	c.mu.Unlock()
}

func (c *ContentCache) load() error {
	if c.valid() {
		return nil
	}
	photos, err := c.store.ListPhotos("")
	if err != nil {
		return err
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return err
	}
	c.photos = photos
	c.posts = posts
	c.fetched = time.Now()
	return nil
}

// ensureLoaded takes the read lock first and only upgrades when a reload is due.
func (c *ContentCache) ensureLoaded() ([]Photo, []BlogPost, error) {
	c.mu.RLock()
	if c.valid() {
		photos, posts := c.photos, c.posts
		c.mu.RUnlock()
		return photos, posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.photos, c.posts, nil
}

// Photos returns photos newest first, optionally filtered by category.
func (c *ContentCache) Photos(category string) ([]Photo, error) {
	photos, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if category == "" {
		return photos, nil
	}
	filtered := []Photo{}
	for _, p := range photos {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Posts returns all posts newest first.
func (c *ContentCache) Posts() ([]BlogPost, error) {
	_, posts, err := c.ensureLoaded()
	return posts, err
}

// Post finds a post by slug, falling back to an id match.
func (c *ContentCache) Post(key string) (BlogPost, error) {
	_, posts, err := c.ensureLoaded()
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == key {
			return p, nil
		}
	}
	for _, p := range posts {
		if p.ID == key {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}
