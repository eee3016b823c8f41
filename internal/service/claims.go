package service

import (
	"sync"

	"github.com/google/uuid"
)

// claimSet tracks opportunities currently being composed in this process.
type claimSet struct {
	mu  sync.Mutex
	ids map[uuid.UUID]struct{}
}

func newClaimSet() *claimSet {
	return &claimSet{ids: make(map[uuid.UUID]struct{})}
}

func (c *claimSet) claim(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, taken := c.ids[id]; taken {
		return false
	}
	c.ids[id] = struct{}{}
	return true
}

func (c *claimSet) release(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.ids, id)
}

func (c *claimSet) snapshot() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(c.ids))
	for id := range c.ids {
		ids = append(ids, id)
	}
	return ids
}
