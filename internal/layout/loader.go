package layout

import (
	"fmt"

	"github.com/pixil98/go-invgui/internal/gui"
)

// StackFactory creates the display payload of an item definition.
type StackFactory func(item ItemDef) (gui.Stack, error)

// Loader turns definitions into storage guis.
type Loader struct {
	registry *Registry
	stacks   StackFactory
	factory  gui.InventoryFactory
	cache    *gui.HumanEntityCache
}

func NewLoader(registry *Registry, stacks StackFactory, factory gui.InventoryFactory, cache *gui.HumanEntityCache) *Loader {
	return &Loader{
		registry: registry,
		stacks:   stacks,
		factory:  factory,
		cache:    cache,
	}
}

// Load parses data and builds the gui it describes.
func (l *Loader) Load(data []byte, format Format, titleData any) (*gui.StorageGui, error) {
	def, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	return l.Build(def, titleData)
}

// Build validates def and constructs its gui. Nothing is constructed when
// validation fails. titleData is passed to the title template.
func (l *Loader) Build(def *Definition, titleData any) (*gui.StorageGui, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is required: %w", gui.ErrInvalidConfiguration)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	title, err := ExpandTitle(def.Title, titleData)
	if err != nil {
		return nil, err
	}

	var g *gui.StorageGui
	switch def.kind() {
	case KindEnderChest:
		g, err = gui.NewEnderChestGui(title, l.factory, l.cache)
	default:
		g, err = gui.NewChestGui(def.rows(), title, l.factory, l.cache)
	}
	if err != nil {
		return nil, err
	}

	if err := l.bindCallbacks(g, def); err != nil {
		return nil, err
	}

	for i := range def.Panes {
		p, err := l.buildPane(&def.Panes[i])
		if err != nil {
			return nil, fmt.Errorf("panes[%d]: %w", i, err)
		}
		if err := g.AddPane(p); err != nil {
			return nil, fmt.Errorf("panes[%d]: %w", i, err)
		}
	}

	populate, err := l.registry.populator(def.Populate)
	if err != nil {
		return nil, err
	}
	if populate != nil {
		if err := populate(g); err != nil {
			return nil, fmt.Errorf("populating %q: %w", def.Populate, err)
		}
	}

	return g, nil
}

func (l *Loader) bindCallbacks(g *gui.StorageGui, def *Definition) error {
	clicks := []struct {
		name string
		set  func(gui.ClickFunc)
	}{
		{def.OnTopClick, g.SetOnTopClick},
		{def.OnBottomClick, g.SetOnBottomClick},
		{def.OnGlobalClick, g.SetOnGlobalClick},
		{def.OnOutsideClick, g.SetOnOutsideClick},
	}
	for _, c := range clicks {
		f, err := l.registry.action(c.name)
		if err != nil {
			return err
		}
		c.set(f)
	}

	onClose, err := l.registry.closer(def.OnClose)
	if err != nil {
		return err
	}
	g.SetOnClose(onClose)
	return nil
}

func (l *Loader) buildPane(def *PaneDef) (gui.Pane, error) {
	onClick, err := l.registry.action(def.OnClick)
	if err != nil {
		return nil, err
	}
	opts := []gui.PaneOpt{
		gui.WithPriority(priorities[def.priority()]),
		gui.WithVisible(def.visible()),
		gui.WithOnClick(onClick),
	}

	switch def.Type {
	case PaneStatic:
		return l.buildStatic(def, opts)
	case PaneOutline:
		return l.buildOutline(def, opts)
	case PanePaginated:
		return l.buildPaginated(def, opts)
	case PaneMasonry:
		return l.buildMasonry(def, opts)
	default:
		return nil, fmt.Errorf("unknown pane type %q: %w", def.Type, gui.ErrInvalidConfiguration)
	}
}

func (l *Loader) buildStatic(def *PaneDef, opts []gui.PaneOpt) (gui.Pane, error) {
	p, err := gui.NewStaticPane(def.X, def.Y, def.Length, def.Height, opts...)
	if err != nil {
		return nil, err
	}

	for i := range def.Items {
		item, err := l.buildItem(&def.Items[i])
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		if err := p.AddItem(item, def.Items[i].X, def.Items[i].Y); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
	}

	if def.Fill != nil {
		item, err := l.buildItem(def.Fill)
		if err != nil {
			return nil, fmt.Errorf("fill: %w", err)
		}
		p.Fill(item)
	}
	return p, nil
}

func (l *Loader) buildOutline(def *PaneDef, opts []gui.PaneOpt) (gui.Pane, error) {
	p, err := gui.NewOutlinePane(def.X, def.Y, def.Length, def.Height, orientations[def.orientation()], def.Gap, opts...)
	if err != nil {
		return nil, err
	}

	for i := range def.Items {
		item, err := l.buildItem(&def.Items[i])
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		if err := p.AddItem(item); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return p, nil
}

func (l *Loader) buildPaginated(def *PaneDef, opts []gui.PaneOpt) (gui.Pane, error) {
	p, err := gui.NewPaginatedPane(def.X, def.Y, def.Length, def.Height, opts...)
	if err != nil {
		return nil, err
	}

	for i, page := range def.Pages {
		for j := range page {
			child, err := l.buildPane(&page[j])
			if err != nil {
				return nil, fmt.Errorf("pages[%d][%d]: %w", i, j, err)
			}
			if err := p.AddPane(i, child); err != nil {
				return nil, fmt.Errorf("pages[%d][%d]: %w", i, j, err)
			}
		}
	}

	if def.Page > 0 {
		if err := p.SetPage(def.Page); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (l *Loader) buildMasonry(def *PaneDef, opts []gui.PaneOpt) (gui.Pane, error) {
	p, err := gui.NewMasonryPane(def.X, def.Y, def.Length, def.Height, orientations[def.orientation()], opts...)
	if err != nil {
		return nil, err
	}

	for i := range def.Panes {
		child, err := l.buildPane(&def.Panes[i])
		if err != nil {
			return nil, fmt.Errorf("panes[%d]: %w", i, err)
		}
		if err := p.AddPane(child); err != nil {
			return nil, fmt.Errorf("panes[%d]: %w", i, err)
		}
	}
	return p, nil
}

func (l *Loader) buildItem(def *ItemDef) (*gui.GuiItem, error) {
	stack, err := l.stacks(*def)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", def.Material, err)
	}

	action, err := l.registry.action(def.Action)
	if err != nil {
		return nil, err
	}

	item, err := gui.NewGuiItem(stack, action)
	if err != nil {
		return nil, err
	}
	item.SetVisible(def.visible())
	return item, nil
}
