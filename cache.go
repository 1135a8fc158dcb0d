package stanza

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested node does not exist.
var ErrNotFound = errors.New("stanza: node not found")

// NodeCache is an in-memory cache of loaded content nodes with TTL. The
// preview server uses it so admin views don't re-read the content tree on
// every request; saves call Invalidate.
type NodeCache struct {
	mu      sync.RWMutex
	nodes   []Node
	fetched time.Time
	ttl     time.Duration
	load    func() ([]Node, error)
}

// NewNodeCache creates a NodeCache backed by the given loader.
func NewNodeCache(ttl time.Duration, load func() ([]Node, error)) *NodeCache {
	return &NodeCache{ttl: ttl, load: load}
}

func (c *NodeCache) valid() bool {
	return c.nodes != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *NodeCache) Invalidate() {
	c.mu.Lock()
	c.nodes = nil
	c.mu.Unlock()
}

// Nodes returns all cached nodes after ensuring the cache is fresh. It
// tries a read lock first; only takes a write lock if a reload is needed.
func (c *NodeCache) Nodes() ([]Node, error) {
	c.mu.RLock()
	if c.valid() {
		nodes := c.nodes
		c.mu.RUnlock()
		return nodes, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.nodes, nil
	}
	nodes, err := c.load()
	if err != nil {
		return nil, err
	}
	c.nodes = nodes
	c.fetched = time.Now()
	return c.nodes, nil
}

// Get returns a single node by its derived slug.
func (c *NodeCache) Get(slug string) (Node, error) {
	nodes, err := c.Nodes()
	if err != nil {
		return Node{}, err
	}
	for _, n := range nodes {
		if n.Slug == slug {
			return n, nil
		}
	}
	return Node{}, ErrNotFound
}
