package gui

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

const (
	// RowLength is the width of every storage screen.
	RowLength = 9
	// PlayerRows is the number of rows of the user's own inventory shown
	// below the virtual rows.
	PlayerRows = 4

	enderChestRows = 3
	maxChestRows   = 6
)

// StorageGui is a screen whose top rows live in a virtual inventory and whose
// bottom rows overlay the viewing user's own inventory.
type StorageGui struct {
	kind  Kind
	title string
	rows  int

	component *InventoryComponent
	factory   InventoryFactory
	cache     *HumanEntityCache
	inventory Inventory

	// rendered holds the occupants last written to the virtual inventory.
	rendered []*GuiItem
	viewers  map[string]*viewer

	onTopClick     ClickFunc
	onBottomClick  ClickFunc
	onGlobalClick  ClickFunc
	onOutsideClick ClickFunc
	onClose        CloseFunc
}

type viewer struct {
	user User
	// rendered holds the occupants last written to the user's inventory.
	rendered []*GuiItem
}

// NewChestGui creates a chest screen with 1 to 6 virtual rows.
func NewChestGui(rows int, title string, factory InventoryFactory, cache *HumanEntityCache) (*StorageGui, error) {
	if rows < 1 || rows > maxChestRows {
		return nil, fmt.Errorf("chest rows %d: %w", rows, ErrInvalidConfiguration)
	}
	return newStorageGui(KindChest, rows, title, factory, cache)
}

// NewEnderChestGui creates a screen with three virtual rows.
func NewEnderChestGui(title string, factory InventoryFactory, cache *HumanEntityCache) (*StorageGui, error) {
	return newStorageGui(KindEnderChest, enderChestRows, title, factory, cache)
}

func newStorageGui(kind Kind, rows int, title string, factory InventoryFactory, cache *HumanEntityCache) (*StorageGui, error) {
	if factory == nil {
		return nil, fmt.Errorf("inventory factory is required: %w", ErrInvalidConfiguration)
	}
	if cache == nil {
		return nil, fmt.Errorf("inventory cache is required: %w", ErrInvalidConfiguration)
	}

	comp, err := NewInventoryComponent(RowLength, rows+PlayerRows)
	if err != nil {
		return nil, err
	}

	return &StorageGui{
		kind:      kind,
		title:     title,
		rows:      rows,
		component: comp,
		factory:   factory,
		cache:     cache,
		viewers:   map[string]*viewer{},
	}, nil
}

func (g *StorageGui) Kind() Kind {
	return g.kind
}

// Rows is the number of virtual rows.
func (g *StorageGui) Rows() int {
	return g.rows
}

func (g *StorageGui) Title() string {
	return g.title
}

// SetTitle renames the screen. The backing inventory is recreated and shown
// again to every current viewer.
func (g *StorageGui) SetTitle(title string) error {
	g.title = title
	g.inventory = nil

	for _, u := range g.Viewers() {
		if err := g.Show(u); err != nil {
			return err
		}
	}
	return nil
}

func (g *StorageGui) Component() *InventoryComponent {
	return g.component
}

// Inventory returns the virtual inventory, or nil before the first Show.
func (g *StorageGui) Inventory() Inventory {
	return g.inventory
}

func (g *StorageGui) AddPane(p Pane) error {
	return g.component.AddPane(p)
}

// Panes returns all panes including nested children.
func (g *StorageGui) Panes() []Pane {
	return g.component.Panes()
}

// Items returns every distinct item in the panes.
func (g *StorageGui) Items() []*GuiItem {
	seen := map[*GuiItem]bool{}
	var items []*GuiItem
	for _, p := range g.component.TopPanes() {
		for _, item := range p.Items() {
			if !seen[item] {
				seen[item] = true
				items = append(items, item)
			}
		}
	}
	return items
}

func (g *StorageGui) SetOnTopClick(f ClickFunc)     { g.onTopClick = f }
func (g *StorageGui) SetOnBottomClick(f ClickFunc)  { g.onBottomClick = f }
func (g *StorageGui) SetOnGlobalClick(f ClickFunc)  { g.onGlobalClick = f }
func (g *StorageGui) SetOnOutsideClick(f ClickFunc) { g.onOutsideClick = f }
func (g *StorageGui) SetOnClose(f CloseFunc)        { g.onClose = f }

// Viewers returns the users currently shown this gui, ordered by id.
func (g *StorageGui) Viewers() []User {
	ids := slices.Sorted(maps.Keys(g.viewers))
	users := make([]User, len(ids))
	for i, id := range ids {
		users[i] = g.viewers[id].user
	}
	return users
}

func (g *StorageGui) ensureInventory() (Inventory, error) {
	if g.inventory != nil {
		return g.inventory, nil
	}

	size := g.rows * RowLength
	inv := g.factory.CreateInventory(g.kind, g.title, size)
	if inv == nil || inv.Size() < size {
		return nil, fmt.Errorf("%s inventory must hold %d slots: %w", g.kind, size, ErrInvalidConfiguration)
	}

	g.inventory = inv
	return inv, nil
}

// split returns the virtual rows and the rows overlaying the user's
// inventory of the last Display.
func (g *StorageGui) split() (*View, *View, error) {
	top, err := g.component.Rows(0, g.rows-1)
	if err != nil {
		return nil, nil, err
	}
	bottom, err := g.component.Rows(g.rows, g.component.Height()-1)
	if err != nil {
		return nil, nil, err
	}
	return top, bottom, nil
}

// Show renders the gui and opens it for u. The user's own inventory is
// cached while the bottom rows hold items and restored otherwise.
func (g *StorageGui) Show(u User) error {
	inv, err := g.ensureInventory()
	if err != nil {
		return err
	}

	inv.Clear()

	if err := g.cache.StoreAndClear(u); err != nil {
		return err
	}

	err = g.render(u, inv)
	if err != nil {
		return errors.Join(err, g.cache.RestoreAndForget(u))
	}

	if err := u.OpenInventory(inv); err != nil {
		delete(g.viewers, u.Id())
		return errors.Join(fmt.Errorf("opening %s for %s: %w", g.kind, u.Id(), err), g.cache.RestoreAndForget(u))
	}
	return nil
}

func (g *StorageGui) render(u User, inv Inventory) error {
	g.component.Display()

	top, bottom, err := g.split()
	if err != nil {
		return err
	}

	if err := top.PlaceItems(inv, 0); err != nil {
		return fmt.Errorf("placing top rows: %w", err)
	}
	// The cache holds the user's real items, anything left here is overlay.
	u.Inventory().Clear()
	if err := bottom.PlaceItems(u.Inventory(), 0); err != nil {
		return fmt.Errorf("placing bottom rows: %w", err)
	}

	if !bottom.HasItem() {
		if err := g.cache.RestoreAndForget(u); err != nil {
			return err
		}
	}

	for _, item := range g.component.items {
		if item != nil {
			item.ConsumeChanged()
		}
	}

	g.rendered = top.items
	g.viewers[u.Id()] = &viewer{user: u, rendered: bottom.items}
	return nil
}

// Update redraws the gui for all viewers, writing only slots whose occupant
// was replaced or flagged as changed.
func (g *StorageGui) Update() error {
	if g.inventory == nil || len(g.viewers) == 0 {
		return nil
	}

	g.component.Display()
	top, bottom, err := g.split()
	if err != nil {
		return err
	}

	dirty := map[*GuiItem]bool{}
	for _, item := range g.component.items {
		if item != nil && !dirty[item] {
			dirty[item] = item.ConsumeChanged()
		}
	}

	if err := writeChanged(g.inventory, g.rendered, top.items, dirty); err != nil {
		return fmt.Errorf("updating top rows: %w", err)
	}
	g.rendered = top.items

	for _, u := range g.Viewers() {
		v := g.viewers[u.Id()]
		if err := g.updateViewer(v, bottom, dirty); err != nil {
			return fmt.Errorf("updating %s: %w", u.Id(), err)
		}
	}
	return nil
}

func (g *StorageGui) updateViewer(v *viewer, bottom *View, dirty map[*GuiItem]bool) error {
	if !bottom.HasItem() {
		// Nothing overlays the user's inventory any more.
		if err := g.cache.RestoreAndForget(v.user); err != nil {
			return err
		}
		v.rendered = make([]*GuiItem, len(bottom.items))
		return nil
	}

	if !g.cache.Contains(v.user.Id()) {
		if err := g.cache.StoreAndClear(v.user); err != nil {
			return err
		}
		v.rendered = make([]*GuiItem, len(bottom.items))
	}

	if err := writeChanged(v.user.Inventory(), v.rendered, bottom.items, dirty); err != nil {
		return err
	}
	v.rendered = bottom.items
	return nil
}

func writeChanged(inv Inventory, prev, cur []*GuiItem, dirty map[*GuiItem]bool) error {
	for i, item := range cur {
		var last *GuiItem
		if i < len(prev) {
			last = prev[i]
		}
		if item == last && (item == nil || !dirty[item]) {
			continue
		}

		var s Stack
		if item != nil {
			s = item.Stack()
		}
		if err := inv.SetSlot(i, s); err != nil {
			return fmt.Errorf("setting slot %d: %w", i, err)
		}
	}
	return nil
}

// NewClickEvent builds an event for a raw slot of this gui's view, where the
// virtual rows come first followed by the user's rows. Negative or
// out-of-range slots are outside clicks.
func (g *StorageGui) NewClickEvent(u User, rawSlot int) *ClickEvent {
	side := SideOutside
	switch {
	case rawSlot < 0 || rawSlot >= g.component.Size():
	case rawSlot < g.rows*RowLength:
		side = SideTop
	default:
		side = SideBottom
	}

	return &ClickEvent{
		RawSlot: rawSlot,
		Side:    side,
		User:    u,
		Gui:     g,
	}
}

// Click dispatches ev: outside clicks go to the outside handler only; other
// clicks go to the panes, then the top or bottom handler, then the global
// handler. The first error stops dispatch.
func (g *StorageGui) Click(ev *ClickEvent) (bool, error) {
	ev.Gui = g

	if ev.Side == SideOutside {
		return false, call(g.onOutsideClick, ev)
	}

	handled, err := g.component.Click(ev, ev.RawSlot)
	if err != nil {
		return handled, err
	}

	side := g.onTopClick
	if ev.Side == SideBottom {
		side = g.onBottomClick
	}
	if err := call(side, ev); err != nil {
		return handled, err
	}

	return handled, call(g.onGlobalClick, ev)
}

func call(f ClickFunc, ev *ClickEvent) error {
	if f == nil {
		return nil
	}
	return callbackErr(ev.RawSlot, f(ev))
}

// HandleClose forgets the viewer, restores their inventory and runs the
// close handler.
func (g *StorageGui) HandleClose(u User) error {
	delete(g.viewers, u.Id())

	err := g.cache.RestoreAndForget(u)
	if g.onClose != nil {
		if cerr := g.onClose(u); cerr != nil {
			err = errors.Join(err, callbackErr(-1, cerr))
		}
	}
	return err
}

// IsPlayerInventoryUsed reports whether any row below the virtual rows holds
// an item.
func (g *StorageGui) IsPlayerInventoryUsed() bool {
	g.component.Display()

	_, bottom, err := g.split()
	if err != nil {
		return false
	}
	return bottom.HasItem()
}

// Copy returns an independent gui with deep-copied panes and the same
// callbacks. The copy has no inventory and no viewers.
func (g *StorageGui) Copy() *StorageGui {
	return &StorageGui{
		kind:           g.kind,
		title:          g.title,
		rows:           g.rows,
		component:      g.component.Copy(),
		factory:        g.factory,
		cache:          g.cache,
		viewers:        map[string]*viewer{},
		onTopClick:     g.onTopClick,
		onBottomClick:  g.onBottomClick,
		onGlobalClick:  g.onGlobalClick,
		onOutsideClick: g.onOutsideClick,
		onClose:        g.onClose,
	}
}
