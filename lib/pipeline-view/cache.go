package pipelineview

import (
	"sync"
	"time"

	pipelineapimodels "ats-backend/models/api/pipeline"
)

// boardCache is a TTL snapshot cache of rendered boards. It is a pure
// performance optimization, every read path has a direct store fallback.
// Writers invalidate their recruitment explicitly after commit.
type boardCache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]boardEntry
}

type boardEntry struct {
	board     pipelineapimodels.BoardView
	expiresAt time.Time
}

func newBoardCache(ttl time.Duration) *boardCache {
	return &boardCache{
		ttl:  ttl,
		data: map[string]boardEntry{},
	}
}

func (c *boardCache) get(recruitmentID string) (pipelineapimodels.BoardView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.data[recruitmentID]
	if !ok || time.Now().After(entry.expiresAt) {
		return pipelineapimodels.BoardView{}, false
	}
	return entry.board, true
}

func (c *boardCache) put(recruitmentID string, board pipelineapimodels.BoardView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[recruitmentID] = boardEntry{
		board:     board,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *boardCache) invalidate(recruitmentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, recruitmentID)
}
