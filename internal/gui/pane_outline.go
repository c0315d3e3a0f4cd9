package gui

import (
	"fmt"
	"slices"
)

// Orientation is the direction an OutlinePane or MasonryPane fills in.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// OutlinePane lays its items out one after another, leaving gap empty slots
// between consecutive items. Invisible items take up no space.
type OutlinePane struct {
	pane
	orientation Orientation
	gap         int
	items       []*GuiItem
}

func NewOutlinePane(x, y, length, height int, orientation Orientation, gap int, opts ...PaneOpt) (*OutlinePane, error) {
	base, err := newPane(x, y, length, height, opts...)
	if err != nil {
		return nil, err
	}
	if gap < 0 {
		return nil, fmt.Errorf("outline gap %d: %w", gap, ErrInvalidConfiguration)
	}

	return &OutlinePane{
		pane:        base,
		orientation: orientation,
		gap:         gap,
	}, nil
}

func (p *OutlinePane) Orientation() Orientation {
	return p.orientation
}

func (p *OutlinePane) Gap() int {
	return p.gap
}

// Capacity is the number of items the pane can show.
func (p *OutlinePane) Capacity() int {
	step := p.gap + 1
	return (p.length*p.height + step - 1) / step
}

// AddItem appends item, failing when the pane is full.
func (p *OutlinePane) AddItem(item *GuiItem) error {
	return p.InsertItem(item, len(p.items))
}

// InsertItem inserts item at index in the layout order.
func (p *OutlinePane) InsertItem(item *GuiItem, index int) error {
	if item == nil {
		return fmt.Errorf("adding nil item: %w", ErrInvalidConfiguration)
	}
	if index < 0 || index > len(p.items) {
		return fmt.Errorf("index %d of %d items: %w", index, len(p.items), ErrOutOfBounds)
	}
	if len(p.items) >= p.Capacity() {
		return fmt.Errorf("outline pane holds at most %d items: %w", p.Capacity(), ErrOutOfBounds)
	}

	p.items = slices.Insert(p.items, index, item)
	return nil
}

func (p *OutlinePane) RemoveItem(item *GuiItem) bool {
	i := slices.Index(p.items, item)
	if i < 0 {
		return false
	}
	p.items = slices.Delete(p.items, i, i+1)
	return true
}

func (p *OutlinePane) Items() []*GuiItem {
	return slices.Clone(p.items)
}

func (p *OutlinePane) Panes() []Pane {
	return nil
}

func (p *OutlinePane) HasItem() bool {
	return slices.ContainsFunc(p.items, func(i *GuiItem) bool { return !i.empty() })
}

func (p *OutlinePane) Clear() {
	p.items = nil
}

// position returns the local coordinates of the n-th visible item.
func (p *OutlinePane) position(n int) (int, int) {
	cell := n * (p.gap + 1)
	if p.orientation == Vertical {
		return cell / p.height, cell % p.height
	}
	return cell % p.length, cell / p.length
}

// layout calls f for each visible item with its local position.
func (p *OutlinePane) layout(f func(item *GuiItem, x, y int) bool) {
	n := 0
	for _, item := range p.items {
		if !item.Visible() {
			continue
		}
		x, y := p.position(n)
		n++
		if !f(item, x, y) {
			return
		}
	}
}

func (p *OutlinePane) Display(comp *InventoryComponent, offsetX, offsetY, maxLength, maxHeight int) {
	length, height := p.bounds(maxLength, maxHeight)

	p.layout(func(item *GuiItem, x, y int) bool {
		if x < length && y < height {
			comp.set(item, p.x+offsetX+x, p.y+offsetY+y)
		}
		return true
	})
}

func (p *OutlinePane) Click(ev *ClickEvent, comp *InventoryComponent, slot, offsetX, offsetY, maxLength, maxHeight int) (bool, error) {
	x, y, ok := p.locate(comp, slot, offsetX, offsetY, maxLength, maxHeight)
	if !ok {
		return false, nil
	}

	var clicked *GuiItem
	p.layout(func(item *GuiItem, ix, iy int) bool {
		if ix == x && iy == y {
			clicked = item
			return false
		}
		return true
	})
	if clicked == nil {
		return false, nil
	}

	return p.dispatch(ev, p, clicked)
}

func (p *OutlinePane) Copy() Pane {
	cp := &OutlinePane{
		pane:        p.pane,
		orientation: p.orientation,
		gap:         p.gap,
		items:       make([]*GuiItem, len(p.items)),
	}
	for i, item := range p.items {
		cp.items[i] = item.Copy()
	}
	return cp
}
