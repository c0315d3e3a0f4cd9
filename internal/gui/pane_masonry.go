package gui

import (
	"fmt"
	"slices"
)

// MasonryPane packs its children into the first free spot that fits them,
// scanning row by row (Horizontal) or column by column (Vertical). A child's
// own position is ignored. Children that do not fit are not shown.
type MasonryPane struct {
	pane
	orientation Orientation
	children    []Pane
}

func NewMasonryPane(x, y, length, height int, orientation Orientation, opts ...PaneOpt) (*MasonryPane, error) {
	base, err := newPane(x, y, length, height, opts...)
	if err != nil {
		return nil, err
	}

	return &MasonryPane{pane: base, orientation: orientation}, nil
}

func (p *MasonryPane) AddPane(child Pane) error {
	if child == nil {
		return fmt.Errorf("adding nil pane: %w", ErrInvalidConfiguration)
	}
	if child.Length() > p.length || child.Height() > p.height {
		return fmt.Errorf("%dx%d pane does not fit in %dx%d masonry: %w",
			child.Length(), child.Height(), p.length, p.height, ErrOutOfBounds)
	}

	p.children = append(p.children, child)
	return nil
}

type placement struct {
	pane Pane
	x    int
	y    int
}

// layout places the visible children in insertion order.
func (p *MasonryPane) layout() []placement {
	taken := make([]bool, p.length*p.height)
	free := func(x, y, l, h int) bool {
		if x+l > p.length || y+h > p.height {
			return false
		}
		for dy := 0; dy < h; dy++ {
			for dx := 0; dx < l; dx++ {
				if taken[(y+dy)*p.length+x+dx] {
					return false
				}
			}
		}
		return true
	}

	var placed []placement
	for _, c := range p.children {
		if !c.Visible() {
			continue
		}

		x, y, ok := p.findSpot(c, free)
		if !ok {
			continue
		}
		for dy := 0; dy < c.Height(); dy++ {
			for dx := 0; dx < c.Length(); dx++ {
				taken[(y+dy)*p.length+x+dx] = true
			}
		}
		placed = append(placed, placement{pane: c, x: x, y: y})
	}
	return placed
}

func (p *MasonryPane) findSpot(c Pane, free func(x, y, l, h int) bool) (int, int, bool) {
	if p.orientation == Vertical {
		for x := 0; x < p.length; x++ {
			for y := 0; y < p.height; y++ {
				if free(x, y, c.Length(), c.Height()) {
					return x, y, true
				}
			}
		}
		return 0, 0, false
	}

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.length; x++ {
			if free(x, y, c.Length(), c.Height()) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func (p *MasonryPane) Items() []*GuiItem {
	var items []*GuiItem
	for _, c := range p.children {
		items = append(items, c.Items()...)
	}
	return items
}

func (p *MasonryPane) Panes() []Pane {
	return descendants(p.children)
}

func (p *MasonryPane) HasItem() bool {
	return slices.ContainsFunc(p.layout(), func(pl placement) bool { return pl.pane.HasItem() })
}

func (p *MasonryPane) Clear() {
	p.children = nil
}

func (p *MasonryPane) Display(comp *InventoryComponent, offsetX, offsetY, maxLength, maxHeight int) {
	length, height := p.bounds(maxLength, maxHeight)

	for _, pl := range p.layout() {
		pl.pane.Display(comp,
			p.x+offsetX+pl.x-pl.pane.X(), p.y+offsetY+pl.y-pl.pane.Y(),
			length-pl.x, height-pl.y)
	}
}

func (p *MasonryPane) Click(ev *ClickEvent, comp *InventoryComponent, slot, offsetX, offsetY, maxLength, maxHeight int) (bool, error) {
	if _, _, ok := p.locate(comp, slot, offsetX, offsetY, maxLength, maxHeight); !ok {
		return false, nil
	}
	length, height := p.bounds(maxLength, maxHeight)

	for _, pl := range p.layout() {
		handled, err := pl.pane.Click(ev, comp, slot,
			p.x+offsetX+pl.x-pl.pane.X(), p.y+offsetY+pl.y-pl.pane.Y(),
			length-pl.x, height-pl.y)
		if err != nil {
			return handled, err
		}
		if handled {
			return true, p.bubble(ev)
		}
	}

	return false, nil
}

func (p *MasonryPane) Copy() Pane {
	return &MasonryPane{
		pane:        p.pane,
		orientation: p.orientation,
		children:    copyPanes(p.children),
	}
}
