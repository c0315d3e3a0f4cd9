package gui

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Priority orders panes for compositing and click routing. Any integer is
// allowed; the named levels cover the usual cases.
type Priority int

const (
	PriorityLowest Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityHighest
	PriorityMonitor
)

// Pane is a positionable rectangular region of items. Coordinates passed to
// Display and Click are relative to the grid the pane is drawn into; a pane
// adds its own X and Y to the offsets it receives.
type Pane interface {
	X() int
	Y() int
	SetX(x int)
	SetY(y int)
	Length() int
	Height() int
	Priority() Priority
	SetPriority(p Priority)
	Visible() bool
	SetVisible(v bool)
	UUID() uuid.UUID
	SetOnClick(f ClickFunc)

	// Items returns every item owned by the pane and its descendants.
	Items() []*GuiItem
	// Panes returns every descendant pane, depth first.
	Panes() []Pane
	// HasItem reports whether a visible, non-empty item would be displayed.
	HasItem() bool
	Clear()

	Display(comp *InventoryComponent, offsetX, offsetY, maxLength, maxHeight int)
	Click(ev *ClickEvent, comp *InventoryComponent, slot, offsetX, offsetY, maxLength, maxHeight int) (bool, error)
	Copy() Pane
}

// Position is a local slot coordinate inside a pane.
type Position struct {
	X int
	Y int
}

// PaneOpt configures the shared settings of a pane.
type PaneOpt func(*pane)

// WithPriority sets the pane priority
func WithPriority(p Priority) PaneOpt {
	return func(pn *pane) {
		pn.priority = p
	}
}

// WithVisible sets the initial visibility
func WithVisible(v bool) PaneOpt {
	return func(pn *pane) {
		pn.visible = v
	}
}

// WithOnClick sets the pane's click callback
func WithOnClick(f ClickFunc) PaneOpt {
	return func(pn *pane) {
		pn.onClick = f
	}
}

// pane holds the settings every variant shares.
type pane struct {
	id       uuid.UUID
	x        int
	y        int
	length   int
	height   int
	priority Priority
	visible  bool
	onClick  ClickFunc
}

func newPane(x, y, length, height int, opts ...PaneOpt) (pane, error) {
	if length <= 0 || height <= 0 {
		return pane{}, fmt.Errorf("pane size %dx%d: %w", length, height, ErrInvalidConfiguration)
	}
	if x < 0 || y < 0 {
		return pane{}, fmt.Errorf("pane position (%d,%d): %w", x, y, ErrOutOfBounds)
	}

	p := pane{
		id:       uuid.New(),
		x:        x,
		y:        y,
		length:   length,
		height:   height,
		priority: PriorityNormal,
		visible:  true,
	}
	for _, opt := range opts {
		opt(&p)
	}

	return p, nil
}

func (p *pane) X() int                  { return p.x }
func (p *pane) Y() int                  { return p.y }
func (p *pane) SetX(x int)              { p.x = x }
func (p *pane) SetY(y int)              { p.y = y }
func (p *pane) Length() int             { return p.length }
func (p *pane) Height() int             { return p.height }
func (p *pane) Priority() Priority      { return p.priority }
func (p *pane) SetPriority(pr Priority) { p.priority = pr }
func (p *pane) Visible() bool           { return p.visible }
func (p *pane) SetVisible(v bool)       { p.visible = v }
func (p *pane) UUID() uuid.UUID         { return p.id }
func (p *pane) SetOnClick(f ClickFunc)  { p.onClick = f }

func (p *pane) inBounds(x, y int) bool {
	return x >= 0 && x < p.length && y >= 0 && y < p.height
}

// bounds returns the drawable size after clipping to the space the parent
// allows.
func (p *pane) bounds(maxLength, maxHeight int) (int, int) {
	return min(p.length, maxLength), min(p.height, maxHeight)
}

// locate converts a slot of comp into coordinates local to this pane. ok is
// false when the slot is not covered by the pane.
func (p *pane) locate(comp *InventoryComponent, slot, offsetX, offsetY, maxLength, maxHeight int) (x, y int, ok bool) {
	if slot < 0 || slot >= comp.Size() {
		return 0, 0, false
	}

	length, height := p.bounds(maxLength, maxHeight)
	x = slot%comp.Length() - (p.x + offsetX)
	y = slot/comp.Length() - (p.y + offsetY)

	return x, y, x >= 0 && x < length && y >= 0 && y < height
}

// dispatch runs the item's action followed by the pane's own callback.
func (p *pane) dispatch(ev *ClickEvent, self Pane, item *GuiItem) (bool, error) {
	ev.Pane = self
	ev.Item = item

	if err := item.callAction(ev); err != nil {
		return true, err
	}
	return true, p.bubble(ev)
}

// bubble runs the pane's callback for a click one of its children handled.
func (p *pane) bubble(ev *ClickEvent) error {
	if p.onClick == nil {
		return nil
	}
	return callbackErr(ev.RawSlot, p.onClick(ev))
}

// byPriority returns panes sorted lowest priority first. Equal priorities keep
// their insertion order.
func byPriority(panes []Pane) []Pane {
	sorted := slices.Clone(panes)
	slices.SortStableFunc(sorted, func(a, b Pane) int {
		return cmp.Compare(a.Priority(), b.Priority())
	})
	return sorted
}

// descendants returns panes followed by their own descendants, depth first.
func descendants(panes []Pane) []Pane {
	var all []Pane
	for _, c := range panes {
		all = append(all, c)
		all = append(all, c.Panes()...)
	}
	return all
}

func copyPanes(panes []Pane) []Pane {
	if panes == nil {
		return nil
	}
	cp := make([]Pane, len(panes))
	for i, c := range panes {
		cp[i] = c.Copy()
	}
	return cp
}

// fits reports whether child lies entirely inside a length x height area.
func fits(child Pane, length, height int) bool {
	return child.X() >= 0 && child.Y() >= 0 &&
		child.X()+child.Length() <= length &&
		child.Y()+child.Height() <= height
}
