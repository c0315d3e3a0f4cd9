package gui

import "fmt"

// View is a read-only band of rows taken from a displayed component.
type View struct {
	length int
	height int
	items  []*GuiItem
}

func (v *View) Length() int {
	return v.length
}

func (v *View) Height() int {
	return v.height
}

func (v *View) Size() int {
	return len(v.items)
}

// Item returns the occupant of (x, y), or nil.
func (v *View) Item(x, y int) *GuiItem {
	if x < 0 || x >= v.length || y < 0 || y >= v.height {
		return nil
	}
	return v.items[y*v.length+x]
}

// HasItem reports whether any slot holds a visible, non-empty item.
func (v *View) HasItem() bool {
	for _, item := range v.items {
		if !item.empty() {
			return true
		}
	}
	return false
}

// PlaceItems writes every occupied slot into inv starting at offset. Empty
// slots are left untouched.
func (v *View) PlaceItems(inv Inventory, offset int) error {
	if offset < 0 || offset+len(v.items) > inv.Size() {
		return fmt.Errorf("placing %d slots at offset %d into inventory of %d: %w",
			len(v.items), offset, inv.Size(), ErrOutOfBounds)
	}

	for i, item := range v.items {
		if item == nil {
			continue
		}
		if err := inv.SetSlot(offset+i, item.Stack()); err != nil {
			return fmt.Errorf("setting slot %d: %w", offset+i, err)
		}
	}
	return nil
}
