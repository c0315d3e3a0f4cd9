package gui

import (
	"fmt"
	"slices"
)

// InventoryComponent is a fixed grid owning top-level panes. Display
// flattens the panes into one slot array.
type InventoryComponent struct {
	length int
	height int
	panes  []Pane
	items  []*GuiItem
}

func NewInventoryComponent(length, height int) (*InventoryComponent, error) {
	if length <= 0 || height <= 0 {
		return nil, fmt.Errorf("component size %dx%d: %w", length, height, ErrInvalidConfiguration)
	}

	return &InventoryComponent{
		length: length,
		height: height,
		items:  make([]*GuiItem, length*height),
	}, nil
}

func (c *InventoryComponent) Length() int {
	return c.length
}

func (c *InventoryComponent) Height() int {
	return c.height
}

// Size is the number of slots in the grid.
func (c *InventoryComponent) Size() int {
	return c.length * c.height
}

// AddPane takes ownership of p. The pane must lie inside the grid.
func (c *InventoryComponent) AddPane(p Pane) error {
	if p == nil {
		return fmt.Errorf("adding nil pane: %w", ErrInvalidConfiguration)
	}
	if !fits(p, c.length, c.height) {
		return fmt.Errorf("%dx%d pane at (%d,%d) does not fit in %dx%d component: %w",
			p.Length(), p.Height(), p.X(), p.Y(), c.length, c.height, ErrOutOfBounds)
	}

	c.panes = append(c.panes, p)
	return nil
}

// RemovePane releases p. It reports whether p was owned.
func (c *InventoryComponent) RemovePane(p Pane) bool {
	i := slices.Index(c.panes, p)
	if i < 0 {
		return false
	}
	c.panes = slices.Delete(c.panes, i, i+1)
	return true
}

// TopPanes returns the owned panes in insertion order.
func (c *InventoryComponent) TopPanes() []Pane {
	return slices.Clone(c.panes)
}

// Panes returns the owned panes and all of their descendants.
func (c *InventoryComponent) Panes() []Pane {
	return descendants(c.panes)
}

// Display rebuilds the flattened slot array. Panes are drawn from lowest to
// highest priority, so where panes overlap the highest priority one wins.
// Equal priorities are drawn in insertion order.
func (c *InventoryComponent) Display() {
	clear(c.items)

	for _, p := range byPriority(c.panes) {
		if !p.Visible() {
			continue
		}
		p.Display(c, 0, 0, c.length, c.height)
	}
}

// Click routes a slot to the panes, highest priority first, stopping at the
// first pane that handles it.
func (c *InventoryComponent) Click(ev *ClickEvent, slot int) (bool, error) {
	if slot < 0 || slot >= c.Size() {
		return false, nil
	}

	ordered := byPriority(c.panes)
	for i := len(ordered) - 1; i >= 0; i-- {
		p := ordered[i]
		if !p.Visible() {
			continue
		}
		handled, err := p.Click(ev, c, slot, 0, 0, c.length, c.height)
		if handled || err != nil {
			return handled, err
		}
	}
	return false, nil
}

// Item returns the flattened occupant of (x, y) from the last Display.
func (c *InventoryComponent) Item(x, y int) *GuiItem {
	if x < 0 || x >= c.length || y < 0 || y >= c.height {
		return nil
	}
	return c.items[y*c.length+x]
}

// SetItem overrides a single flattened slot until the next Display.
func (c *InventoryComponent) SetItem(item *GuiItem, x, y int) error {
	if x < 0 || x >= c.length || y < 0 || y >= c.height {
		return fmt.Errorf("slot (%d,%d) in %dx%d component: %w", x, y, c.length, c.height, ErrOutOfBounds)
	}
	c.items[y*c.length+x] = item
	return nil
}

// set is used by panes while displaying; writes outside the grid are dropped.
func (c *InventoryComponent) set(item *GuiItem, x, y int) {
	if x < 0 || x >= c.length || y < 0 || y >= c.height {
		return
	}
	c.items[y*c.length+x] = item
}

// HasItem reports whether the last Display produced any non-empty slot.
func (c *InventoryComponent) HasItem() bool {
	return c.view(0, c.height).HasItem()
}

// Rows returns a read-only view of rows from through to (inclusive), with row
// from becoming row 0 of the view. Callers looking for an excludeRows that
// keeps the band want Rows; ExcludeRows returns everything outside it.
func (c *InventoryComponent) Rows(from, to int) (*View, error) {
	if from < 0 || to >= c.height || from > to {
		return nil, fmt.Errorf("rows %d-%d of %d: %w", from, to, c.height, ErrOutOfBounds)
	}
	return c.view(from, to+1), nil
}

// ExcludeRows returns a read-only view of every row outside from through to
// (inclusive), closing the gap.
func (c *InventoryComponent) ExcludeRows(from, to int) (*View, error) {
	if from < 0 || to >= c.height || from > to {
		return nil, fmt.Errorf("rows %d-%d of %d: %w", from, to, c.height, ErrOutOfBounds)
	}

	items := slices.Clone(c.items[:from*c.length])
	items = append(items, c.items[(to+1)*c.length:]...)

	return &View{
		length: c.length,
		height: c.height - (to - from + 1),
		items:  items,
	}, nil
}

// PlaceItems writes the non-empty slots of the last Display into inv starting
// at offset.
func (c *InventoryComponent) PlaceItems(inv Inventory, offset int) error {
	return c.view(0, c.height).PlaceItems(inv, offset)
}

func (c *InventoryComponent) view(from, to int) *View {
	return &View{
		length: c.length,
		height: to - from,
		items:  slices.Clone(c.items[from*c.length : to*c.length]),
	}
}

// Copy deep-copies the owned panes. The copy has not been displayed.
func (c *InventoryComponent) Copy() *InventoryComponent {
	return &InventoryComponent{
		length: c.length,
		height: c.height,
		panes:  copyPanes(c.panes),
		items:  make([]*GuiItem, len(c.items)),
	}
}
