package layout

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/pixil98/go-invgui/internal/gui"
)

// Populator fills a freshly built gui, typically with items that depend on
// host state.
type Populator func(g *gui.StorageGui) error

// Registry holds the named callbacks a definition may refer to.
type Registry struct {
	actions    map[string]gui.ClickFunc
	closers    map[string]gui.CloseFunc
	populators map[string]Populator
}

func NewRegistry() *Registry {
	r := &Registry{
		actions:    map[string]gui.ClickFunc{},
		closers:    map[string]gui.CloseFunc{},
		populators: map[string]Populator{},
	}
	// Built-in actions
	r.actions["next_page"] = turnPage(1)
	r.actions["previous_page"] = turnPage(-1)
	r.actions["noop"] = func(*gui.ClickEvent) error { return nil }
	return r
}

// RegisterAction registers a click callback by name. The name must match the
// action, on_click or on_*_click fields of a definition.
func (r *Registry) RegisterAction(name string, f gui.ClickFunc) error {
	return register(r.actions, "action", name, f)
}

// RegisterCloser registers a close callback for the on_close field.
func (r *Registry) RegisterCloser(name string, f gui.CloseFunc) error {
	return register(r.closers, "closer", name, f)
}

// RegisterPopulator registers a populator for the populate field.
func (r *Registry) RegisterPopulator(name string, f Populator) error {
	return register(r.populators, "populator", name, f)
}

func register[F any](m map[string]F, kind, name string, f F) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	if reflect.ValueOf(f).IsNil() {
		return fmt.Errorf("%s %q cannot be nil", kind, name)
	}
	if _, exists := m[name]; exists {
		return fmt.Errorf("%s %q already registered", kind, name)
	}
	m[name] = f
	return nil
}

// action resolves name, returning nil for an empty name.
func (r *Registry) action(name string) (gui.ClickFunc, error) {
	return lookup(r.actions, "action", name)
}

func (r *Registry) closer(name string) (gui.CloseFunc, error) {
	return lookup(r.closers, "closer", name)
}

func (r *Registry) populator(name string) (Populator, error) {
	return lookup(r.populators, "populator", name)
}

func lookup[F any](m map[string]F, kind, name string) (F, error) {
	var zero F
	if name == "" {
		return zero, nil
	}
	f, ok := m[name]
	if !ok {
		return zero, fmt.Errorf("unknown %s %q: %w", kind, name, gui.ErrInvalidConfiguration)
	}
	return f, nil
}

// turnPage moves every paginated pane of the clicked gui by delta pages,
// stopping at the first and last page.
func turnPage(delta int) gui.ClickFunc {
	return func(ev *gui.ClickEvent) error {
		g, ok := ev.Gui.(*gui.StorageGui)
		if !ok {
			return errors.New("page actions need a storage gui")
		}

		for _, p := range g.Panes() {
			pp, ok := p.(*gui.PaginatedPane)
			if !ok {
				continue
			}
			page := pp.Page() + delta
			if page < 0 || page >= pp.Pages() {
				continue
			}
			if err := pp.SetPage(page); err != nil {
				return err
			}
		}
		return nil
	}
}
