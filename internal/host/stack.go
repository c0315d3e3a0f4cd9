package host

import (
	"fmt"

	"github.com/pixil98/go-invgui/internal/display"
	"github.com/pixil98/go-invgui/internal/gui"
	"github.com/pixil98/go-invgui/internal/layout"
)

// Stack is an amount of one material, optionally with a display name.
type Stack struct {
	Material string `json:"material"`
	Amount   int    `json:"amount"`
	Name     string `json:"name,omitempty"`
}

func NewStack(material string, amount int) *Stack {
	return &Stack{Material: material, Amount: max(amount, 1)}
}

// StackFromDef creates the payload of a layout item.
func StackFromDef(def layout.ItemDef) (gui.Stack, error) {
	if def.Material == "" {
		return nil, fmt.Errorf("material is required: %w", gui.ErrInvalidConfiguration)
	}
	s := NewStack(def.Material, def.Amount)
	s.Name = def.Name
	return s, nil
}

func (s *Stack) Empty() bool {
	return s == nil || s.Material == "" || s.Amount <= 0
}

func (s *Stack) Clone() gui.Stack {
	cp := *s
	return &cp
}

// Label is the name shown to players.
func (s *Stack) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return display.Humanize(s.Material)
}

func (s *Stack) String() string {
	return fmt.Sprintf("%d %s", s.Amount, s.Label())
}
