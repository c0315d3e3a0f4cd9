package session

import (
	"fmt"

	"github.com/pixil98/go-invgui/internal/gui"
	"github.com/pixil98/go-invgui/internal/host"
)

// registerActions adds the callbacks that need a session to the registry.
func (m *Manager) registerActions() error {
	if err := m.registry.RegisterAction("close", m.closeAction); err != nil {
		return err
	}
	if err := m.registry.RegisterAction("take", m.takeAction); err != nil {
		return err
	}
	return m.registry.RegisterCloser("save", m.saveCloser)
}

// closeAction closes the gui for the clicking player.
func (m *Manager) closeAction(ev *gui.ClickEvent) error {
	s := m.session(ev.User.Id())
	if s == nil {
		return fmt.Errorf("no session for %s", ev.User.Id())
	}
	s.requestClose()
	return nil
}

// takeAction gives the clicking player a copy of the clicked item.
func (m *Manager) takeAction(ev *gui.ClickEvent) error {
	if ev.Item == nil || ev.Side != gui.SideTop {
		return nil
	}
	if m.cache.Contains(ev.User.Id()) {
		return NewUserError("Your inventory is in use by this layout.")
	}

	stack, ok := ev.Item.Stack().(*host.Stack)
	if !ok {
		return fmt.Errorf("clicked item holds %T", ev.Item.Stack())
	}

	inv := ev.User.Inventory()
	for i := range inv.Size() {
		if s := inv.Slot(i); s == nil || s.Empty() {
			if err := inv.SetSlot(i, stack.Clone()); err != nil {
				return err
			}
			return nil
		}
	}
	return NewUserError("Your inventory is full.")
}

// saveCloser stores the player once their inventory is restored.
func (m *Manager) saveCloser(u gui.User) error {
	p, ok := u.(*host.Player)
	if !ok {
		return nil
	}
	return m.save(p)
}
