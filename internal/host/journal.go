package host

import (
	"fmt"

	"github.com/pixil98/go-invgui/internal/gui"
	"github.com/pixil98/go-invgui/internal/storage"
)

type journalEntry struct {
	Slots []*Stack `json:"slots"`
}

// CacheJournal keeps the inventories held by a gui.HumanEntityCache on disk
// so they survive a crash.
type CacheJournal struct {
	journal *storage.Journal
}

func NewCacheJournal(j *storage.Journal) *CacheJournal {
	return &CacheJournal{journal: j}
}

func (c *CacheJournal) Record(id string, contents []gui.Stack) error {
	entry := journalEntry{Slots: make([]*Stack, len(contents))}
	for i, s := range contents {
		if s == nil || s.Empty() {
			continue
		}
		st, ok := s.(*Stack)
		if !ok {
			return fmt.Errorf("slot %d holds %T, not a stack", i, s)
		}
		entry.Slots[i] = st
	}
	return c.journal.Write(id, entry)
}

func (c *CacheJournal) Forget(id string) error {
	return c.journal.Remove(id)
}

// Recover writes a journaled inventory for id back into inv and removes the
// entry. It reports whether anything was recovered.
func (c *CacheJournal) Recover(id string, inv gui.Inventory) (bool, error) {
	var entry journalEntry
	found, err := c.journal.Read(id, &entry)
	if err != nil || !found {
		return false, err
	}

	inv.Clear()
	for i, s := range entry.Slots {
		if i >= inv.Size() {
			break
		}
		if s == nil || s.Empty() {
			continue
		}
		if err := inv.SetSlot(i, s); err != nil {
			return true, fmt.Errorf("recovering %s: %w", id, err)
		}
	}

	if err := c.journal.Remove(id); err != nil {
		return true, err
	}
	return true, nil
}

// Pending lists the ids with a journaled inventory.
func (c *CacheJournal) Pending() ([]string, error) {
	return c.journal.Ids()
}
