package gui

import (
	"slices"
	"testing"
)

// testStack is a minimal payload identified by name.
type testStack struct {
	name string
}

func (s *testStack) Empty() bool {
	return s.name == ""
}

func (s *testStack) Clone() Stack {
	cp := *s
	return &cp
}

// testInventory records every slot write.
type testInventory struct {
	slots  []Stack
	writes []int
}

func newTestInventory(size int) *testInventory {
	return &testInventory{slots: make([]Stack, size)}
}

func (inv *testInventory) Clear() {
	clear(inv.slots)
}

func (inv *testInventory) SetSlot(i int, s Stack) error {
	if i < 0 || i >= len(inv.slots) {
		return ErrOutOfBounds
	}
	inv.slots[i] = s
	inv.writes = append(inv.writes, i)
	return nil
}

func (inv *testInventory) Slot(i int) Stack {
	if i < 0 || i >= len(inv.slots) {
		return nil
	}
	return inv.slots[i]
}

func (inv *testInventory) Size() int {
	return len(inv.slots)
}

// names returns the payload name of every slot, "" for empty ones.
func (inv *testInventory) names() []string {
	out := make([]string, len(inv.slots))
	for i, s := range inv.slots {
		if s != nil {
			out[i] = s.(*testStack).name
		}
	}
	return out
}

type testUser struct {
	id      string
	inv     *testInventory
	opened  []Inventory
	openErr error
}

func newTestUser(id string) *testUser {
	return &testUser{id: id, inv: newTestInventory(RowLength * PlayerRows)}
}

func (u *testUser) Id() string {
	return u.id
}

func (u *testUser) Inventory() Inventory {
	return u.inv
}

func (u *testUser) OpenInventory(inv Inventory) error {
	if u.openErr != nil {
		return u.openErr
	}
	u.opened = append(u.opened, inv)
	return nil
}

type testFactory struct {
	created []*testInventory
	size    int
}

func (f *testFactory) CreateInventory(kind Kind, title string, size int) Inventory {
	if f.size != 0 {
		size = f.size
	}
	inv := newTestInventory(size)
	f.created = append(f.created, inv)
	return inv
}

func mustItem(t *testing.T, name string, action ClickFunc) *GuiItem {
	t.Helper()
	item, err := NewGuiItem(&testStack{name: name}, action)
	if err != nil {
		t.Fatalf("creating item %q: %v", name, err)
	}
	return item
}

func mustStatic(t *testing.T, x, y, length, height int, opts ...PaneOpt) *StaticPane {
	t.Helper()
	p, err := NewStaticPane(x, y, length, height, opts...)
	if err != nil {
		t.Fatalf("creating static pane: %v", err)
	}
	return p
}

func mustAdd(t *testing.T, p *StaticPane, item *GuiItem, x, y int) {
	t.Helper()
	if err := p.AddItem(item, x, y); err != nil {
		t.Fatalf("adding item at (%d,%d): %v", x, y, err)
	}
}

func mustComponent(t *testing.T, length, height int, panes ...Pane) *InventoryComponent {
	t.Helper()
	c, err := NewInventoryComponent(length, height)
	if err != nil {
		t.Fatalf("creating component: %v", err)
	}
	for _, p := range panes {
		if err := c.AddPane(p); err != nil {
			t.Fatalf("adding pane: %v", err)
		}
	}
	return c
}

// itemName returns the payload name of item, "" for nil.
func itemName(item *GuiItem) string {
	if item == nil {
		return ""
	}
	return item.Stack().(*testStack).name
}

// flattened returns the names of every slot of the component's last display.
func flattened(c *InventoryComponent) []string {
	out := make([]string, len(c.items))
	for i, item := range c.items {
		out[i] = itemName(item)
	}
	return out
}

func assertSlice[T comparable](t *testing.T, name string, got, exp []T) {
	t.Helper()
	if !slices.Equal(got, exp) {
		t.Errorf("%s: got %v, expected %v", name, got, exp)
	}
}
