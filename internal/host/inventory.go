package host

import (
	"fmt"
	"sync"

	"github.com/pixil98/go-invgui/internal/display"
	"github.com/pixil98/go-invgui/internal/gui"
)

// PersonalSize is the number of slots in a player's own inventory.
const PersonalSize = gui.RowLength * gui.PlayerRows

// Inventory is a fixed number of slots held in memory. It remembers whether
// it was written since the last ConsumeDirty.
type Inventory struct {
	kind  gui.Kind
	title string

	mu    sync.Mutex
	slots []gui.Stack
	dirty bool
}

func NewInventory(size int) *Inventory {
	return &Inventory{slots: make([]gui.Stack, size)}
}

func (inv *Inventory) Kind() gui.Kind {
	return inv.kind
}

func (inv *Inventory) Title() string {
	return inv.title
}

func (inv *Inventory) Clear() {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	clear(inv.slots)
	inv.dirty = true
}

func (inv *Inventory) SetSlot(i int, s gui.Stack) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if i < 0 || i >= len(inv.slots) {
		return fmt.Errorf("slot %d of %d: %w", i, len(inv.slots), gui.ErrOutOfBounds)
	}
	inv.slots[i] = s
	inv.dirty = true
	return nil
}

func (inv *Inventory) Slot(i int) gui.Stack {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if i < 0 || i >= len(inv.slots) {
		return nil
	}
	return inv.slots[i]
}

func (inv *Inventory) Size() int {
	return len(inv.slots)
}

// ConsumeDirty reports whether the inventory changed and resets the flag.
func (inv *Inventory) ConsumeDirty() bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	d := inv.dirty
	inv.dirty = false
	return d
}

// Stacks returns a copy of the slots, nil for empty ones.
func (inv *Inventory) Stacks() []*Stack {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	out := make([]*Stack, len(inv.slots))
	for i, s := range inv.slots {
		if st, ok := s.(*Stack); ok && !st.Empty() {
			out[i] = st.Clone().(*Stack)
		}
	}
	return out
}

// Cells renders every slot of inv for display.Screen.
func Cells(inv gui.Inventory) []string {
	cells := make([]string, inv.Size())
	for i := range cells {
		s, ok := inv.Slot(i).(*Stack)
		if !ok || s.Empty() {
			cells[i] = display.Cell("", 0)
			continue
		}
		cells[i] = display.Cell(s.Label(), s.Amount)
	}
	return cells
}

// Factory creates in-memory inventories for guis.
type Factory struct{}

func (Factory) CreateInventory(kind gui.Kind, title string, size int) gui.Inventory {
	inv := NewInventory(size)
	inv.kind = kind
	inv.title = title
	return inv
}
