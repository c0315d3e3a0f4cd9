package host

import (
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-invgui/internal/gui"
	"github.com/pixil98/go-testutil"
)

func TestInventory_SetSlot(t *testing.T) {
	tests := map[string]struct {
		index  int
		expErr bool
	}{
		"first":    {index: 0},
		"last":     {index: 8},
		"negative": {index: -1, expErr: true},
		"past end": {index: 9, expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv := NewInventory(9)
			err := inv.SetSlot(tt.index, NewStack("stone", 1))

			testutil.AssertEqual(t, "out of bounds", errors.Is(err, gui.ErrOutOfBounds), tt.expErr)
			if !tt.expErr {
				testutil.AssertEqual(t, "material", inv.Slot(tt.index).(*Stack).Material, "stone")
			}
		})
	}
}

func TestInventory_Dirty(t *testing.T) {
	inv := NewInventory(9)
	testutil.AssertEqual(t, "fresh", inv.ConsumeDirty(), false)

	_ = inv.SetSlot(2, NewStack("stone", 1))
	testutil.AssertEqual(t, "after write", inv.ConsumeDirty(), true)
	testutil.AssertEqual(t, "after consume", inv.ConsumeDirty(), false)

	inv.Clear()
	testutil.AssertEqual(t, "after clear", inv.ConsumeDirty(), true)
	testutil.AssertEqual(t, "cleared slot", inv.Slot(2) == nil, true)
}

func TestInventory_Stacks(t *testing.T) {
	inv := NewInventory(3)
	_ = inv.SetSlot(1, NewStack("bread", 5))

	stacks := inv.Stacks()
	stacks[1].Amount = 1

	testutil.AssertEqual(t, "length", len(stacks), 3)
	testutil.AssertEqual(t, "empty slot", stacks[0] == nil, true)
	testutil.AssertEqual(t, "copied", inv.Slot(1).(*Stack).Amount, 5)
}

func TestFactory_CreateInventory(t *testing.T) {
	inv := Factory{}.CreateInventory(gui.KindEnderChest, "Vault", 27)

	h, ok := inv.(*Inventory)
	if !ok {
		t.Fatalf("expected *Inventory, got %T", inv)
	}
	testutil.AssertEqual(t, "kind", h.Kind(), gui.KindEnderChest)
	testutil.AssertEqual(t, "title", h.Title(), "Vault")
	testutil.AssertEqual(t, "size", h.Size(), 27)
}

func TestCells(t *testing.T) {
	inv := NewInventory(3)
	_ = inv.SetSlot(0, NewStack("gold_ingot", 12))
	_ = inv.SetSlot(2, foreignStack{})

	cells := Cells(inv)

	testutil.AssertEqual(t, "count", len(cells), 3)
	testutil.AssertEqual(t, "filled", strings.TrimSpace(cells[0]), "Go~ x12")
	testutil.AssertEqual(t, "empty", strings.TrimSpace(cells[1]), ".")
	testutil.AssertEqual(t, "foreign", strings.TrimSpace(cells[2]), ".")
}
