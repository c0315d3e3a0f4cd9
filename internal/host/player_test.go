package host

import (
	"strings"
	"testing"

	"github.com/pixil98/go-invgui/internal/gui"
	"github.com/pixil98/go-testutil"
)

func TestNewPlayer(t *testing.T) {
	rec := &PlayerRecord{
		Name:      "Alice",
		Inventory: []*Stack{nil, NewStack("bread", 3)},
	}
	p := NewPlayer("alice", rec, nil)

	testutil.AssertEqual(t, "id", p.Id(), "alice")
	testutil.AssertEqual(t, "name", p.Name(), "Alice")
	testutil.AssertEqual(t, "size", p.Inventory().Size(), PersonalSize)
	testutil.AssertEqual(t, "slot 1", p.Inventory().Slot(1).(*Stack).Material, "bread")
	testutil.AssertEqual(t, "slot 0", p.Inventory().Slot(0) == nil, true)
}

func TestNewPlayer_NoRecord(t *testing.T) {
	p := NewPlayer("bob", nil, nil)
	testutil.AssertEqual(t, "name", p.Name(), "bob")
}

func TestPlayer_OpenInventory(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewPlayer("alice", nil, pub)
	inv := Factory{}.CreateInventory(gui.KindChest, "Shop", 9)
	_ = inv.SetSlot(4, NewStack("emerald", 2))

	err := p.OpenInventory(inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := pub.last("alice")
	testutil.AssertEqual(t, "published", pub.count("alice"), 1)
	testutil.AssertEqual(t, "title", strings.HasPrefix(out, "Shop\n"), true)
	testutil.AssertEqual(t, "item", strings.Contains(out, "Eme~ x2"), true)
	testutil.AssertEqual(t, "viewing", p.Viewing() == inv, true)
}

func TestPlayer_OpenInventory_PublishError(t *testing.T) {
	pub := &recordingPublisher{err: errPublish("alice")}
	p := NewPlayer("alice", nil, pub)

	err := p.OpenInventory(NewInventory(9))
	testutil.AssertErrorContains(t, err, "no route to alice")
}

func TestPlayer_RefreshIfChanged(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewPlayer("alice", nil, pub)
	inv := NewInventory(9)

	if err := p.OpenInventory(inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.RefreshIfChanged(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "unchanged", pub.count("alice"), 1)

	_ = inv.SetSlot(0, NewStack("stone", 1))
	if err := p.RefreshIfChanged(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "open changed", pub.count("alice"), 2)

	_ = p.Inventory().SetSlot(0, NewStack("stone", 1))
	if err := p.RefreshIfChanged(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "personal changed", pub.count("alice"), 3)
}

func TestPlayer_CloseInventory(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewPlayer("alice", nil, pub)
	_ = p.OpenInventory(Factory{}.CreateInventory(gui.KindChest, "Shop", 9))

	p.CloseInventory()
	if err := p.Refresh(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "viewing", p.Viewing() == nil, true)
	testutil.AssertEqual(t, "personal screen", strings.HasPrefix(pub.last("alice"), "Inventory\n"), true)
}

func TestPlayer_Record(t *testing.T) {
	p := NewPlayer("alice", &PlayerRecord{Name: "Alice"}, nil)
	_ = p.Inventory().SetSlot(35, NewStack("torch", 16))
	if err := p.SetExtension("last_layout", "shop"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := p.Record()
	if err := rec.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var last string
	found, err := rec.Get("last_layout", &last)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "last layout", last, "shop")
	testutil.AssertEqual(t, "slot 35", rec.Inventory[35].Amount, 16)

	restored := NewPlayer("alice", rec, nil)
	var again string
	_, _ = restored.Extension("last_layout", &again)
	testutil.AssertEqual(t, "restored extension", again, "shop")
}

func TestPlayerRecord_Validate(t *testing.T) {
	tests := map[string]struct {
		rec    PlayerRecord
		expErr string
	}{
		"valid":    {rec: PlayerRecord{Name: "Alice"}},
		"no name":  {rec: PlayerRecord{}, expErr: "name is required"},
		"too many": {rec: PlayerRecord{Name: "Alice", Inventory: make([]*Stack, PersonalSize+1)}, expErr: "at most 36"},
		"negative": {rec: PlayerRecord{Name: "Alice", Inventory: []*Stack{{Material: "stone", Amount: -1}}}, expErr: "must not be negative"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.rec.Validate()

			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestRender(t *testing.T) {
	open := Factory{}.CreateInventory(gui.KindChest, "Shop", 9)
	personal := NewInventory(PersonalSize)

	out := Render(open, personal)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// title, header, one top row, separator, four personal rows
	testutil.AssertEqual(t, "lines", len(lines), 8)
	testutil.AssertEqual(t, "title", lines[0], "Shop")
	testutil.AssertEqual(t, "personal numbering", strings.HasPrefix(lines[4], "  9 |"), true)
}

func TestRender_PersonalOnly(t *testing.T) {
	out := Render(nil, NewInventory(PersonalSize))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	testutil.AssertEqual(t, "title", lines[0], "Inventory")
	testutil.AssertEqual(t, "first row", strings.HasPrefix(lines[3], "  0 |"), true)
}
