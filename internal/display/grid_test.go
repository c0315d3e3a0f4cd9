package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestCell(t *testing.T) {
	tests := map[string]struct {
		label  string
		amount int
		exp    string
	}{
		"empty slot":      {label: "", amount: 0, exp: "   .   "},
		"short label":     {label: "Dirt", amount: 1, exp: "Dirt   "},
		"exact label":     {label: "Emerald", amount: 1, exp: "Emerald"},
		"long label":      {label: "Diamond Sword", amount: 1, exp: "Diamon~"},
		"label and count": {label: "Bread", amount: 12, exp: "Br~ x12"},
		"huge count":      {label: "Arrow", amount: 1000000, exp: "x100000"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Cell(tt.label, tt.amount)

			testutil.AssertEqual(t, "cell", got, tt.exp)
			testutil.AssertEqual(t, "width", len(got), CellWidth)
		})
	}
}

func TestScreen(t *testing.T) {
	top := make([]string, 9)
	for i := range top {
		top[i] = Cell("", 0)
	}
	top[0] = Cell("Stone", 1)
	bottom := make([]string, 18)
	for i := range bottom {
		bottom[i] = Cell("", 0)
	}

	out := Screen("Vault", top, bottom)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	testutil.AssertEqual(t, "line count", len(lines), 6)
	testutil.AssertEqual(t, "title", lines[0], "Vault")
	testutil.AssertEqual(t, "first row", strings.HasPrefix(lines[2], "  0 |Stone  |"), true)
	testutil.AssertEqual(t, "separator", strings.Contains(lines[3], "-----"), true)
	testutil.AssertEqual(t, "bottom numbering", strings.HasPrefix(lines[4], "  9 |"), true)
	testutil.AssertEqual(t, "second bottom row", strings.HasPrefix(lines[5], " 18 |"), true)
}

func TestHumanize(t *testing.T) {
	testutil.AssertEqual(t, "snake case", Humanize("golden_apple"), "Golden Apple")
	testutil.AssertEqual(t, "single word", Humanize("stone"), "Stone")
}
