package caching

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/wikifreq/models"
)

// ErrNotCached is returned by Get when a page has no usable cache entry.
var ErrNotCached = errors.New("page not in local cache")

// Cache stores raw article HTML on disk, one file per page.
// A zero TTL means entries never expire.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// FileName is the cache file name for a page: "Red Velvet" -> "Red_Velvet.html".
func FileName(id models.PageID) string {
	return strings.ReplaceAll(id.Path(), "/", "-") + ".html"
}

// FilePath returns where the page is (or would be) cached.
func (c *Cache) FilePath(id models.PageID) string {
	return filepath.Join(c.path, FileName(id))
}

// Get returns the cached HTML of a page, or ErrNotCached.
func (c *Cache) Get(id models.PageID) ([]byte, error) {
	filePath := c.FilePath(id)

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", filePath, ErrNotCached)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat cache file: %w", err)
	}

	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, fmt.Errorf("%s expired: %w", filePath, ErrNotCached)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return data, nil
}

// Set stores the HTML of a page.
func (c *Cache) Set(id models.PageID, data []byte) error {
	if err := os.WriteFile(c.FilePath(id), data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
