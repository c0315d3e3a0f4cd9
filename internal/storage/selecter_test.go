package storage

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

// menuSpec is a record listed by its title.
type menuSpec struct {
	title string
}

func (s *menuSpec) Validate() error  { return nil }
func (s *menuSpec) Selector() string { return s.title }

// memStorer is an in-memory Storer.
type memStorer map[string]*menuSpec

func (m memStorer) Save(id string, o *menuSpec) error {
	m[id] = o
	return nil
}

func (m memStorer) Get(id string) *menuSpec      { return m[id] }
func (m memStorer) GetAll() map[string]*menuSpec { return m }

// scriptedRW reads from a fixed input and records everything written.
type scriptedRW struct {
	in  *strings.Reader
	out bytes.Buffer
}

func newScriptedRW(input string) *scriptedRW {
	return &scriptedRW{in: strings.NewReader(input)}
}

func (s *scriptedRW) Read(p []byte) (int, error)  { return s.in.Read(p) }
func (s *scriptedRW) Write(p []byte) (int, error) { return s.out.Write(p) }

func layoutMenu() memStorer {
	return memStorer{
		"vault":  {title: "Vault"},
		"shop":   {title: "Shop"},
		"bank":   {title: "Shop"},
		"trades": {title: "Trades"},
	}
}

func TestSelectableStorer_Order(t *testing.T) {
	ss := NewSelectableStorer[*menuSpec](layoutMenu())

	tests := map[string]struct {
		index int
		exp   string
	}{
		"first by title":      {index: 1, exp: "bank"},
		"title tie by id":     {index: 2, exp: "shop"},
		"middle":              {index: 3, exp: "trades"},
		"last":                {index: 4, exp: "vault"},
		"zero":                {index: 0, exp: ""},
		"negative":            {index: -1, exp: ""},
		"past the last entry": {index: 5, exp: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "id", ss.Select(tt.index), tt.exp)
		})
	}
	testutil.AssertEqual(t, "len", ss.Len(), 4)
}

func TestSelectableStorer_Menu(t *testing.T) {
	tests := map[string]struct {
		records  memStorer
		expLines []string
		expRows  int
	}{
		"empty": {
			records: memStorer{},
			expRows: defaultSelectorRowCount,
		},
		"one column": {
			records:  memStorer{"shop": {title: "Shop"}, "vault": {title: "Vault"}},
			expLines: []string{"1. Shop", "2. Vault"},
			expRows:  defaultSelectorRowCount,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ss := NewSelectableStorer[*menuSpec](tt.records)

			var got []string
			for _, line := range ss.Menu() {
				got = append(got, strings.TrimSpace(line))
			}
			testutil.AssertEqual(t, "lines", got, tt.expLines)
			testutil.AssertEqual(t, "rows", len(ss.output), tt.expRows)
		})
	}
}

func TestSelectableStorer_MenuGrowsRows(t *testing.T) {
	records := memStorer{}
	for _, id := range strings.Fields("a b c d e f g h i j k l m n o p q r s t u v w x y z") {
		records[id] = &menuSpec{title: strings.Repeat(id, 30)}
	}

	ss := NewSelectableStorer[*menuSpec](records)

	// Two 36 wide columns fit in 80, so 26 entries need 13 rows.
	testutil.AssertEqual(t, "rows", len(ss.output), 13)
	testutil.AssertEqual(t, "first row", strings.HasPrefix(ss.output[0], " 1. "), true)
	testutil.AssertEqual(t, "second column", strings.Contains(ss.output[0], "14. "), true)
}

func TestSelectableStorer_Prompt(t *testing.T) {
	tests := map[string]struct {
		input    string
		exp      string
		expRetry bool
		expErr   string
	}{
		"selects entry": {
			input: "4\n",
			exp:   "vault",
		},
		"retries invalid input": {
			input:    "shop\n9\n2\n",
			exp:      "shop",
			expRetry: true,
		},
		"input ends": {
			input:  "",
			expErr: "EOF",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ss := NewSelectableStorer[*menuSpec](layoutMenu())
			rw := newScriptedRW(tt.input)

			got, err := ss.Prompt(rw, "Available layouts:")
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			out := rw.out.String()
			testutil.AssertEqual(t, "id", got, tt.exp)
			testutil.AssertEqual(t, "heading", strings.HasPrefix(out, "Available layouts:\n"), true)
			testutil.AssertEqual(t, "retried", strings.Contains(out, "Invalid selection!"), tt.expRetry)
		})
	}
}

func TestSelectableStorer_PromptEmpty(t *testing.T) {
	ss := NewSelectableStorer[*menuSpec](memStorer{})

	_, err := ss.Prompt(newScriptedRW("1\n"), "Available layouts:")

	testutil.AssertEqual(t, "no options", errors.Is(err, ErrNoOptions), true)
}
