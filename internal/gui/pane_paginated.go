package gui

import (
	"fmt"
	"slices"
)

// PaginatedPane holds pages of child panes and shows one page at a time.
type PaginatedPane struct {
	pane
	pages [][]Pane
	page  int
}

func NewPaginatedPane(x, y, length, height int, opts ...PaneOpt) (*PaginatedPane, error) {
	base, err := newPane(x, y, length, height, opts...)
	if err != nil {
		return nil, err
	}

	return &PaginatedPane{pane: base}, nil
}

// AddPane adds child to page, creating empty pages up to it as needed. The
// child must fit inside the paginated pane.
func (p *PaginatedPane) AddPane(page int, child Pane) error {
	if child == nil {
		return fmt.Errorf("adding nil pane: %w", ErrInvalidConfiguration)
	}
	if page < 0 {
		return fmt.Errorf("page %d: %w", page, ErrOutOfBounds)
	}
	if !fits(child, p.length, p.height) {
		return fmt.Errorf("%dx%d pane at (%d,%d) does not fit in %dx%d page: %w",
			child.Length(), child.Height(), child.X(), child.Y(), p.length, p.height, ErrOutOfBounds)
	}

	for len(p.pages) <= page {
		p.pages = append(p.pages, nil)
	}
	p.pages[page] = append(p.pages[page], child)
	return nil
}

// Page returns the index of the displayed page.
func (p *PaginatedPane) Page() int {
	return p.page
}

// SetPage changes the displayed page.
func (p *PaginatedPane) SetPage(page int) error {
	if page < 0 || page >= len(p.pages) {
		return fmt.Errorf("page %d of %d: %w", page, len(p.pages), ErrOutOfBounds)
	}
	p.page = page
	return nil
}

// Pages returns the number of pages.
func (p *PaginatedPane) Pages() int {
	return len(p.pages)
}

// PanesOn returns the child panes of a single page.
func (p *PaginatedPane) PanesOn(page int) []Pane {
	if page < 0 || page >= len(p.pages) {
		return nil
	}
	return slices.Clone(p.pages[page])
}

func (p *PaginatedPane) current() []Pane {
	if p.page >= len(p.pages) {
		return nil
	}
	return p.pages[p.page]
}

func (p *PaginatedPane) Items() []*GuiItem {
	var items []*GuiItem
	for _, page := range p.pages {
		for _, c := range page {
			items = append(items, c.Items()...)
		}
	}
	return items
}

func (p *PaginatedPane) Panes() []Pane {
	var all []Pane
	for _, page := range p.pages {
		all = append(all, descendants(page)...)
	}
	return all
}

func (p *PaginatedPane) HasItem() bool {
	return slices.ContainsFunc(p.current(), func(c Pane) bool { return c.Visible() && c.HasItem() })
}

func (p *PaginatedPane) Clear() {
	p.pages = nil
	p.page = 0
}

func (p *PaginatedPane) Display(comp *InventoryComponent, offsetX, offsetY, maxLength, maxHeight int) {
	length, height := p.bounds(maxLength, maxHeight)

	for _, c := range byPriority(p.current()) {
		if !c.Visible() {
			continue
		}
		c.Display(comp, p.x+offsetX, p.y+offsetY, length-c.X(), height-c.Y())
	}
}

func (p *PaginatedPane) Click(ev *ClickEvent, comp *InventoryComponent, slot, offsetX, offsetY, maxLength, maxHeight int) (bool, error) {
	if _, _, ok := p.locate(comp, slot, offsetX, offsetY, maxLength, maxHeight); !ok {
		return false, nil
	}
	length, height := p.bounds(maxLength, maxHeight)

	children := byPriority(p.current())
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if !c.Visible() {
			continue
		}
		handled, err := c.Click(ev, comp, slot, p.x+offsetX, p.y+offsetY, length-c.X(), height-c.Y())
		if err != nil {
			return handled, err
		}
		if handled {
			return true, p.bubble(ev)
		}
	}

	return false, nil
}

func (p *PaginatedPane) Copy() Pane {
	cp := &PaginatedPane{
		pane:  p.pane,
		page:  p.page,
		pages: make([][]Pane, len(p.pages)),
	}
	for i, page := range p.pages {
		cp.pages[i] = copyPanes(page)
	}
	return cp
}
