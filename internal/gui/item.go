package gui

import (
	"fmt"

	"github.com/google/uuid"
)

// Stack is the display payload of a slot. The engine never looks inside it
// beyond asking whether it is empty.
type Stack interface {
	Empty() bool
	Clone() Stack
}

// ClickFunc is called synchronously on the goroutine delivering the click.
// It must not block indefinitely.
type ClickFunc func(ev *ClickEvent) error

// GuiItem is an interactive occupant of a single slot.
type GuiItem struct {
	id      uuid.UUID
	stack   Stack
	action  ClickFunc
	visible bool
	changed bool
}

// NewGuiItem creates a visible item. The action may be nil.
func NewGuiItem(stack Stack, action ClickFunc) (*GuiItem, error) {
	if stack == nil {
		return nil, fmt.Errorf("gui item requires a display payload: %w", ErrInvalidConfiguration)
	}

	return &GuiItem{
		id:      uuid.New(),
		stack:   stack,
		action:  action,
		visible: true,
		changed: true,
	}, nil
}

func (i *GuiItem) UUID() uuid.UUID {
	return i.id
}

func (i *GuiItem) Stack() Stack {
	return i.stack
}

// SetStack replaces the payload and marks the item changed.
func (i *GuiItem) SetStack(s Stack) error {
	if s == nil {
		return fmt.Errorf("gui item requires a display payload: %w", ErrInvalidConfiguration)
	}
	i.stack = s
	i.changed = true
	return nil
}

func (i *GuiItem) SetAction(action ClickFunc) {
	i.action = action
}

func (i *GuiItem) Visible() bool {
	return i.visible
}

func (i *GuiItem) SetVisible(v bool) {
	if i.visible != v {
		i.changed = true
	}
	i.visible = v
}

// SetChanged flags the item for rewriting on the next incremental update.
func (i *GuiItem) SetChanged() {
	i.changed = true
}

// ConsumeChanged reports whether the item changed since the last call and
// clears the flag.
func (i *GuiItem) ConsumeChanged() bool {
	c := i.changed
	i.changed = false
	return c
}

// Copy returns an independent item with the same identity. The action
// closure is shared.
func (i *GuiItem) Copy() *GuiItem {
	return &GuiItem{
		id:      i.id,
		stack:   i.stack.Clone(),
		action:  i.action,
		visible: i.visible,
		changed: true,
	}
}

func (i *GuiItem) empty() bool {
	return i == nil || !i.visible || i.stack.Empty()
}

func (i *GuiItem) callAction(ev *ClickEvent) error {
	if i.action == nil {
		return nil
	}
	return callbackErr(ev.RawSlot, i.action(ev))
}
