package layout

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-invgui/internal/gui"
)

func TestDefinition_Validate(t *testing.T) {
	hidden := false

	tests := map[string]struct {
		def    Definition
		expErr string
	}{
		"minimal chest": {
			def: Definition{Title: "Chest"},
		},
		"ender chest": {
			def: Definition{Title: "Vault", Kind: KindEnderChest},
		},
		"missing title": {
			def:    Definition{},
			expErr: "title is required",
		},
		"blank title": {
			def:    Definition{Title: "   "},
			expErr: "title is required",
		},
		"broken title template": {
			def:    Definition{Title: "{{ .Name"},
			expErr: "parsing title",
		},
		"unknown kind": {
			def:    Definition{Title: "Chest", Kind: "barrel"},
			expErr: `unknown kind "barrel"`,
		},
		"too many rows": {
			def:    Definition{Title: "Chest", Rows: 7},
			expErr: "between 1 and 6",
		},
		"ender chest with rows": {
			def:    Definition{Title: "Vault", Kind: KindEnderChest, Rows: 6},
			expErr: "ender chest rows must be 3",
		},
		"pane does not fit": {
			def: Definition{Title: "Chest", Rows: 1, Panes: []PaneDef{
				{Type: PaneStatic, Length: 9, Height: 6},
			}},
			expErr: "does not fit in 9x5",
		},
		"unknown pane type": {
			def: Definition{Title: "Chest", Panes: []PaneDef{
				{Type: "spiral", Length: 1, Height: 1},
			}},
			expErr: `unknown pane type "spiral"`,
		},
		"unknown priority": {
			def: Definition{Title: "Chest", Panes: []PaneDef{
				{Type: PaneStatic, Length: 1, Height: 1, Priority: "urgent"},
			}},
			expErr: `unknown priority "urgent"`,
		},
		"static item outside pane": {
			def: Definition{Title: "Chest", Panes: []PaneDef{
				{Type: PaneStatic, Length: 2, Height: 1, Items: []ItemDef{{X: 2, Material: "stone"}}},
			}},
			expErr: "is outside the pane",
		},
		"item without material": {
			def: Definition{Title: "Chest", Panes: []PaneDef{
				{Type: PaneOutline, Length: 2, Height: 1, Items: []ItemDef{{Name: "nothing"}}},
			}},
			expErr: "material is required",
		},
		"nested child does not fit": {
			def: Definition{Title: "Chest", Panes: []PaneDef{
				{Type: PanePaginated, Length: 3, Height: 1, Pages: [][]PaneDef{
					{{Type: PaneStatic, Length: 4, Height: 1}},
				}},
			}},
			expErr: "pages[0][0]",
		},
		"masonry with items": {
			def: Definition{Title: "Chest", Panes: []PaneDef{
				{Type: PaneMasonry, Length: 3, Height: 1, Items: []ItemDef{{Material: "stone"}}},
			}},
			expErr: "hold panes, not items",
		},
		"full layout": {
			def: Definition{Title: "Shop", Rows: 2, Panes: []PaneDef{
				{Type: PaneStatic, Length: 9, Height: 1, Priority: "HIGH", Visible: &hidden,
					Items: []ItemDef{{X: 4, Material: "emerald"}}},
				{Type: PaneOutline, Y: 1, Length: 9, Height: 1, Orientation: "vertical", Gap: 1},
				{Type: PaneMasonry, Y: 2, Length: 9, Height: 2, Panes: []PaneDef{
					{Type: PaneStatic, Length: 2, Height: 2},
				}},
			}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.def.Validate()

			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
			testutil.AssertEqual(t, "invalid configuration", errors.Is(err, gui.ErrInvalidConfiguration), true)
		})
	}
}

func TestDefinition_Selector(t *testing.T) {
	testutil.AssertEqual(t, "plain title", (&Definition{Title: "Shop"}).Selector(), "Shop")
	testutil.AssertEqual(t, "template title", (&Definition{Title: "{{ .Name }}'s vault", Kind: KindEnderChest}).Selector(), KindEnderChest)
}
