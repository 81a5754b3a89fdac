// Package transcript acquires a transcript for a video URL through an
// ordered fallback chain (captions, metadata pseudo-transcript, audio
// speech-to-text) and caches results by canonical video id.
package transcript

import (
	"sync"

	"github.com/hammamikhairi/cookclip/internal/domain"
	"github.com/hammamikhairi/cookclip/internal/logger"
)

// Cache holds acquired transcripts for the process lifetime, keyed by
// canonical video id so equivalent URLs share an entry. Unbounded;
// transcript content for a given video is stable, so concurrent
// last-write-wins is fine.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*domain.Transcript
	log     *logger.Logger
}

// NewCache creates an empty transcript cache.
func NewCache(log *logger.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*domain.Transcript),
		log:     log,
	}
}

// Get returns the cached transcript for a video id, if any.
func (c *Cache) Get(videoID string) (*domain.Transcript, bool) {
	if videoID == "" {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.entries[videoID]
	return t, ok
}

// Put stores a transcript under its video id. No-op for an empty id.
func (c *Cache) Put(videoID string, t *domain.Transcript) {
	if videoID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[videoID] = t
	c.log.Debug("transcript cache: stored %s (source=%s, %d chars)", videoID, t.Source, len(t.Text))
}

// Len reports the number of cached transcripts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
