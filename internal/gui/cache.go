package gui

import (
	"fmt"
	"sync"

	"github.com/pixil98/go-errors"
)

// Journal persists cached inventories so they survive a crash while an
// overlay is open.
type Journal interface {
	Record(id string, contents []Stack) error
	Forget(id string) error
}

// CacheOpt configures a HumanEntityCache.
type CacheOpt func(*HumanEntityCache)

// WithJournal mirrors every cache entry into j.
func WithJournal(j Journal) CacheOpt {
	return func(c *HumanEntityCache) {
		c.journal = j
	}
}

// HumanEntityCache holds the personal inventories of users whose inventory is
// temporarily overlaid by a gui. A user is cached at most once; storing an
// already cached user does nothing.
type HumanEntityCache struct {
	mu      sync.Mutex
	entries map[string][]Stack
	journal Journal
}

func NewHumanEntityCache(opts ...CacheOpt) *HumanEntityCache {
	c := &HumanEntityCache{
		entries: map[string][]Stack{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StoreAndClear snapshots the user's inventory and empties it.
func (c *HumanEntityCache) StoreAndClear(u User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := u.Id()
	if _, ok := c.entries[id]; ok {
		return nil
	}

	inv := u.Inventory()
	snapshot := make([]Stack, inv.Size())
	for i := range snapshot {
		if s := inv.Slot(i); s != nil {
			snapshot[i] = s.Clone()
		}
	}

	if c.journal != nil {
		if err := c.journal.Record(id, snapshot); err != nil {
			return fmt.Errorf("journaling inventory of %s: %w", id, err)
		}
	}

	c.entries[id] = snapshot
	inv.Clear()
	return nil
}

// RestoreAndForget writes the cached snapshot back and drops the entry.
func (c *HumanEntityCache) RestoreAndForget(u User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.restore(u)
}

// RestoreAndForgetAll restores every cached user that lookup can resolve.
// Users lookup returns nil for stay cached.
func (c *HumanEntityCache) RestoreAndForgetAll(lookup func(id string) User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	el := errors.NewErrorList()
	for id := range c.entries {
		u := lookup(id)
		if u == nil {
			continue
		}
		el.Add(c.restore(u))
	}
	return el.Err()
}

// Contains reports whether the user with id is cached.
func (c *HumanEntityCache) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[id]
	return ok
}

// Len returns the number of cached users.
func (c *HumanEntityCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *HumanEntityCache) restore(u User) error {
	id := u.Id()
	snapshot, ok := c.entries[id]
	if !ok {
		return nil
	}

	inv := u.Inventory()
	inv.Clear()
	for i, s := range snapshot {
		if s == nil || i >= inv.Size() {
			continue
		}
		if err := inv.SetSlot(i, s); err != nil {
			return fmt.Errorf("restoring slot %d of %s: %w", i, id, err)
		}
	}
	delete(c.entries, id)

	if c.journal != nil {
		if err := c.journal.Forget(id); err != nil {
			return fmt.Errorf("forgetting journal of %s: %w", id, err)
		}
	}
	return nil
}
