package layout

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-invgui/internal/gui"
)

// Pane types understood by the loader.
const (
	PaneStatic    = "static"
	PaneOutline   = "outline"
	PanePaginated = "paginated"
	PaneMasonry   = "masonry"
)

// Gui kinds understood by the loader.
const (
	KindChest      = "chest"
	KindEnderChest = "ender_chest"
)

var priorities = map[string]gui.Priority{
	"lowest":  gui.PriorityLowest,
	"low":     gui.PriorityLow,
	"normal":  gui.PriorityNormal,
	"high":    gui.PriorityHigh,
	"highest": gui.PriorityHighest,
	"monitor": gui.PriorityMonitor,
}

var orientations = map[string]gui.Orientation{
	"horizontal": gui.Horizontal,
	"vertical":   gui.Vertical,
}

// Definition describes a storage gui declaratively.
type Definition struct {
	Title string `json:"title" yaml:"title"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Rows  int    `json:"rows,omitempty" yaml:"rows,omitempty"`

	// Populate names a registered populator run after the panes are built.
	Populate string `json:"populate,omitempty" yaml:"populate,omitempty"`

	OnTopClick     string `json:"on_top_click,omitempty" yaml:"on_top_click,omitempty"`
	OnBottomClick  string `json:"on_bottom_click,omitempty" yaml:"on_bottom_click,omitempty"`
	OnGlobalClick  string `json:"on_global_click,omitempty" yaml:"on_global_click,omitempty"`
	OnOutsideClick string `json:"on_outside_click,omitempty" yaml:"on_outside_click,omitempty"`
	OnClose        string `json:"on_close,omitempty" yaml:"on_close,omitempty"`

	Panes []PaneDef `json:"panes,omitempty" yaml:"panes,omitempty"`
}

type PaneDef struct {
	Type     string `json:"type" yaml:"type"`
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`
	Length   int    `json:"length" yaml:"length"`
	Height   int    `json:"height" yaml:"height"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`
	Visible  *bool  `json:"visible,omitempty" yaml:"visible,omitempty"`
	OnClick  string `json:"on_click,omitempty" yaml:"on_click,omitempty"`

	// Outline and masonry panes.
	Orientation string `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	// Outline panes.
	Gap int `json:"gap,omitempty" yaml:"gap,omitempty"`
	// Paginated panes.
	Page  int         `json:"page,omitempty" yaml:"page,omitempty"`
	Pages [][]PaneDef `json:"pages,omitempty" yaml:"pages,omitempty"`

	Items []ItemDef `json:"items,omitempty" yaml:"items,omitempty"`
	// Fill is copied into every empty slot of a static pane.
	Fill  *ItemDef  `json:"fill,omitempty" yaml:"fill,omitempty"`
	Panes []PaneDef `json:"panes,omitempty" yaml:"panes,omitempty"`
}

type ItemDef struct {
	X        int    `json:"x,omitempty" yaml:"x,omitempty"`
	Y        int    `json:"y,omitempty" yaml:"y,omitempty"`
	Material string `json:"material" yaml:"material"`
	Amount   int    `json:"amount,omitempty" yaml:"amount,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Action   string `json:"action,omitempty" yaml:"action,omitempty"`
	Visible  *bool  `json:"visible,omitempty" yaml:"visible,omitempty"`
}

// Selector names the definition in menus.
func (d *Definition) Selector() string {
	if strings.Contains(d.Title, "{{") {
		return d.kind()
	}
	return d.Title
}

func (d *Definition) kind() string {
	if d.Kind == "" {
		return KindChest
	}
	return d.Kind
}

// rows returns the number of virtual rows the definition asks for.
func (d *Definition) rows() int {
	if d.kind() == KindEnderChest {
		return 3
	}
	if d.Rows == 0 {
		return 3
	}
	return d.Rows
}

// Validate checks the definition without building anything. Every error
// matches gui.ErrInvalidConfiguration.
func (d *Definition) Validate() error {
	el := errors.NewErrorList()

	if strings.TrimSpace(d.Title) == "" {
		el.Add(fmt.Errorf("title is required"))
	} else if _, err := template.New("title").Funcs(templateFuncs).Parse(d.Title); err != nil {
		el.Add(fmt.Errorf("parsing title: %w", err))
	}

	switch d.kind() {
	case KindChest:
		if d.Rows < 0 || d.Rows > 6 {
			el.Add(fmt.Errorf("chest rows must be between 1 and 6, got %d", d.Rows))
		}
	case KindEnderChest:
		if d.Rows != 0 && d.Rows != 3 {
			el.Add(fmt.Errorf("ender chest rows must be 3, got %d", d.Rows))
		}
	default:
		el.Add(fmt.Errorf("unknown kind %q", d.Kind))
	}

	for i := range d.Panes {
		el.Add(d.Panes[i].validate(fmt.Sprintf("panes[%d]", i), gui.RowLength, d.rows()+gui.PlayerRows))
	}

	if err := el.Err(); err != nil {
		return fmt.Errorf("%w: %w", gui.ErrInvalidConfiguration, err)
	}
	return nil
}

func (p *PaneDef) validate(path string, maxLength, maxHeight int) error {
	el := errors.NewErrorList()

	if p.Length <= 0 || p.Height <= 0 {
		el.Add(fmt.Errorf("%s: length and height must be positive", path))
	}
	if p.X < 0 || p.Y < 0 {
		el.Add(fmt.Errorf("%s: position must not be negative", path))
	}
	if p.X+p.Length > maxLength || p.Y+p.Height > maxHeight {
		el.Add(fmt.Errorf("%s: %dx%d at (%d,%d) does not fit in %dx%d", path, p.Length, p.Height, p.X, p.Y, maxLength, maxHeight))
	}
	if _, ok := priorities[p.priority()]; !ok {
		el.Add(fmt.Errorf("%s: unknown priority %q", path, p.Priority))
	}

	switch p.Type {
	case PaneStatic:
		for i, item := range p.Items {
			if item.X < 0 || item.X >= p.Length || item.Y < 0 || item.Y >= p.Height {
				el.Add(fmt.Errorf("%s.items[%d]: (%d,%d) is outside the pane", path, i, item.X, item.Y))
			}
		}
	case PaneOutline:
		if _, ok := orientations[p.orientation()]; !ok {
			el.Add(fmt.Errorf("%s: unknown orientation %q", path, p.Orientation))
		}
		if p.Gap < 0 {
			el.Add(fmt.Errorf("%s: gap must not be negative", path))
		}
	case PanePaginated:
		if p.Page < 0 || (p.Page > 0 && p.Page >= len(p.Pages)) {
			el.Add(fmt.Errorf("%s: page %d does not exist", path, p.Page))
		}
		for i, page := range p.Pages {
			for j := range page {
				el.Add(page[j].validate(fmt.Sprintf("%s.pages[%d][%d]", path, i, j), p.Length, p.Height))
			}
		}
	case PaneMasonry:
		if _, ok := orientations[p.orientation()]; !ok {
			el.Add(fmt.Errorf("%s: unknown orientation %q", path, p.Orientation))
		}
		for i := range p.Panes {
			el.Add(p.Panes[i].validate(fmt.Sprintf("%s.panes[%d]", path, i), p.Length, p.Height))
		}
	default:
		el.Add(fmt.Errorf("%s: unknown pane type %q", path, p.Type))
	}

	if len(p.Items) > 0 && (p.Type == PanePaginated || p.Type == PaneMasonry) {
		el.Add(fmt.Errorf("%s: %s panes hold panes, not items", path, p.Type))
	}
	for i, item := range p.Items {
		if item.Material == "" {
			el.Add(fmt.Errorf("%s.items[%d]: material is required", path, i))
		}
	}
	if p.Fill != nil && p.Fill.Material == "" {
		el.Add(fmt.Errorf("%s.fill: material is required", path))
	}

	return el.Err()
}

func (p *PaneDef) priority() string {
	if p.Priority == "" {
		return "normal"
	}
	return strings.ToLower(p.Priority)
}

func (p *PaneDef) orientation() string {
	if p.Orientation == "" {
		return "horizontal"
	}
	return strings.ToLower(p.Orientation)
}

func (p *PaneDef) visible() bool {
	return p.Visible == nil || *p.Visible
}

func (i *ItemDef) visible() bool {
	return i.Visible == nil || *i.Visible
}
