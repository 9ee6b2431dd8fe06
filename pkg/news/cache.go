package news

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const DefaultCacheLimit = 200

// LinkCache remembers which article links have already been published.
// It keeps insertion order so the persisted file can be truncated to the
// most recent entries, and a set for O(1) membership checks.
type LinkCache struct {
	path  string
	limit int
	seen  map[string]struct{}
	order []string
}

func NewLinkCache(path string, limit int) *LinkCache {
	if limit <= 0 {
		limit = DefaultCacheLimit
	}
	return &LinkCache{
		path:  path,
		limit: limit,
		seen:  make(map[string]struct{}),
	}
}

// Load reads the persisted link list. A missing or unreadable file is treated
// as an empty cache so a corrupt file can never halt the pipeline.
func (c *LinkCache) Load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading link cache: %w", err)
	}

	var links []string
	if err := json.Unmarshal(data, &links); err != nil {
		slog.Warn("link cache file is not valid JSON, starting empty", "path", c.path, "error", err)
		return nil
	}

	for _, link := range links {
		c.Add(link)
	}
	return nil
}

// Add records a link. It returns false if the link was already present.
func (c *LinkCache) Add(link string) bool {
	if _, ok := c.seen[link]; ok {
		return false
	}
	c.seen[link] = struct{}{}
	c.order = append(c.order, link)
	return true
}

func (c *LinkCache) Contains(link string) bool {
	_, ok := c.seen[link]
	return ok
}

func (c *LinkCache) Len() int {
	return len(c.order)
}

// Persist writes the cache back to disk, keeping only the most recent entries
// so the file stays bounded. The write goes through a temp file and rename.
func (c *LinkCache) Persist() error {
	links := c.order
	if len(links) > c.limit {
		links = links[len(links)-c.limit:]
	}

	data, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("encoding link cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing link cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replacing link cache: %w", err)
	}
	return nil
}
