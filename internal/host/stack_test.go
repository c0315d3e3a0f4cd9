package host

import (
	"errors"
	"testing"

	"github.com/pixil98/go-invgui/internal/gui"
	"github.com/pixil98/go-invgui/internal/layout"
	"github.com/pixil98/go-testutil"
)

func TestStack_Label(t *testing.T) {
	tests := map[string]struct {
		stack *Stack
		exp   string
	}{
		"humanized material": {stack: &Stack{Material: "iron_ingot", Amount: 3}, exp: "Iron Ingot"},
		"name wins":          {stack: &Stack{Material: "paper", Amount: 1, Name: "Next"}, exp: "Next"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "label", tt.stack.Label(), tt.exp)
		})
	}
}

func TestStack_Empty(t *testing.T) {
	tests := map[string]struct {
		stack *Stack
		exp   bool
	}{
		"nil":         {stack: nil, exp: true},
		"no material": {stack: &Stack{Amount: 1}, exp: true},
		"zero amount": {stack: &Stack{Material: "stone"}, exp: true},
		"filled":      {stack: &Stack{Material: "stone", Amount: 1}, exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "empty", tt.stack.Empty(), tt.exp)
		})
	}
}

func TestStack_CloneIsIndependent(t *testing.T) {
	s := NewStack("stone", 4)
	cp := s.Clone().(*Stack)
	cp.Amount = 9

	testutil.AssertEqual(t, "original amount", s.Amount, 4)
}

func TestStackFromDef(t *testing.T) {
	tests := map[string]struct {
		def    layout.ItemDef
		expErr string
		exp    Stack
	}{
		"defaults amount": {
			def: layout.ItemDef{Material: "emerald"},
			exp: Stack{Material: "emerald", Amount: 1},
		},
		"keeps name": {
			def: layout.ItemDef{Material: "paper", Amount: 2, Name: "Back"},
			exp: Stack{Material: "paper", Amount: 2, Name: "Back"},
		},
		"missing material": {
			def:    layout.ItemDef{Amount: 2},
			expErr: "material is required",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := StackFromDef(tt.def)

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				testutil.AssertEqual(t, "invalid configuration", errors.Is(err, gui.ErrInvalidConfiguration), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "stack", *s.(*Stack), tt.exp)
		})
	}
}
