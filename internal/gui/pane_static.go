package gui

import (
	"cmp"
	"fmt"
	"slices"
)

// StaticPane holds items at fixed local positions.
type StaticPane struct {
	pane
	items map[Position]*GuiItem
}

func NewStaticPane(x, y, length, height int, opts ...PaneOpt) (*StaticPane, error) {
	base, err := newPane(x, y, length, height, opts...)
	if err != nil {
		return nil, err
	}

	return &StaticPane{
		pane:  base,
		items: map[Position]*GuiItem{},
	}, nil
}

// AddItem places item at (x, y), replacing any current occupant.
func (p *StaticPane) AddItem(item *GuiItem, x, y int) error {
	if item == nil {
		return fmt.Errorf("adding nil item: %w", ErrInvalidConfiguration)
	}
	if !p.inBounds(x, y) {
		return fmt.Errorf("item at (%d,%d) in %dx%d pane: %w", x, y, p.length, p.height, ErrOutOfBounds)
	}

	p.items[Position{X: x, Y: y}] = item
	return nil
}

// RemoveItem removes item wherever it is placed.
func (p *StaticPane) RemoveItem(item *GuiItem) bool {
	for pos, it := range p.items {
		if it == item {
			delete(p.items, pos)
			return true
		}
	}
	return false
}

// Item returns the item at (x, y), or nil.
func (p *StaticPane) Item(x, y int) *GuiItem {
	return p.items[Position{X: x, Y: y}]
}

// Fill places a copy of item in every unoccupied slot.
func (p *StaticPane) Fill(item *GuiItem) {
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.length; x++ {
			pos := Position{X: x, Y: y}
			if _, ok := p.items[pos]; !ok {
				p.items[pos] = item.Copy()
			}
		}
	}
}

// Items returns the items ordered by row, then column.
func (p *StaticPane) Items() []*GuiItem {
	positions := make([]Position, 0, len(p.items))
	for pos := range p.items {
		positions = append(positions, pos)
	}
	slices.SortFunc(positions, func(a, b Position) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	items := make([]*GuiItem, len(positions))
	for i, pos := range positions {
		items[i] = p.items[pos]
	}
	return items
}

func (p *StaticPane) Panes() []Pane {
	return nil
}

func (p *StaticPane) HasItem() bool {
	for _, item := range p.items {
		if !item.empty() {
			return true
		}
	}
	return false
}

func (p *StaticPane) Clear() {
	p.items = map[Position]*GuiItem{}
}

func (p *StaticPane) Display(comp *InventoryComponent, offsetX, offsetY, maxLength, maxHeight int) {
	length, height := p.bounds(maxLength, maxHeight)

	for pos, item := range p.items {
		if !item.Visible() || pos.X >= length || pos.Y >= height {
			continue
		}
		comp.set(item, p.x+offsetX+pos.X, p.y+offsetY+pos.Y)
	}
}

func (p *StaticPane) Click(ev *ClickEvent, comp *InventoryComponent, slot, offsetX, offsetY, maxLength, maxHeight int) (bool, error) {
	x, y, ok := p.locate(comp, slot, offsetX, offsetY, maxLength, maxHeight)
	if !ok {
		return false, nil
	}

	item := p.items[Position{X: x, Y: y}]
	if item == nil || !item.Visible() {
		return false, nil
	}

	return p.dispatch(ev, p, item)
}

func (p *StaticPane) Copy() Pane {
	cp := &StaticPane{
		pane:  p.pane,
		items: make(map[Position]*GuiItem, len(p.items)),
	}
	for pos, item := range p.items {
		cp.items[pos] = item.Copy()
	}
	return cp
}
