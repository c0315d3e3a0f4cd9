package layout

import (
	"github.com/pixil98/go-invgui/internal/gui"
)

type testStack struct {
	material string
	amount   int
}

func (s *testStack) Empty() bool {
	return s.material == ""
}

func (s *testStack) Clone() gui.Stack {
	cp := *s
	return &cp
}

func testStacks(item ItemDef) (gui.Stack, error) {
	return &testStack{material: item.Material, amount: item.Amount}, nil
}

type testInventory struct {
	slots []gui.Stack
}

func (inv *testInventory) Clear()               { clear(inv.slots) }
func (inv *testInventory) Slot(i int) gui.Stack { return inv.slots[i] }
func (inv *testInventory) Size() int            { return len(inv.slots) }
func (inv *testInventory) SetSlot(i int, s gui.Stack) error {
	inv.slots[i] = s
	return nil
}

// material returns the material in slot i, "" for an empty slot.
func (inv *testInventory) material(i int) string {
	if inv.slots[i] == nil {
		return ""
	}
	return inv.slots[i].(*testStack).material
}

type testFactory struct {
	created []*testInventory
	titles  []string
}

func (f *testFactory) CreateInventory(kind gui.Kind, title string, size int) gui.Inventory {
	inv := &testInventory{slots: make([]gui.Stack, size)}
	f.created = append(f.created, inv)
	f.titles = append(f.titles, title)
	return inv
}

type testUser struct {
	id  string
	inv *testInventory
}

func newTestUser(id string) *testUser {
	return &testUser{id: id, inv: &testInventory{slots: make([]gui.Stack, gui.RowLength*gui.PlayerRows)}}
}

func (u *testUser) Id() string                            { return u.id }
func (u *testUser) Inventory() gui.Inventory              { return u.inv }
func (u *testUser) OpenInventory(inv gui.Inventory) error { return nil }

func newTestLoader(r *Registry) (*Loader, *testFactory) {
	f := &testFactory{}
	return NewLoader(r, testStacks, f, gui.NewHumanEntityCache()), f
}
