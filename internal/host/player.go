package host

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pixil98/go-invgui/internal/display"
	"github.com/pixil98/go-invgui/internal/gui"
	"github.com/pixil98/go-invgui/internal/storage"
)

// Publisher delivers rendered screens to a connected player.
type Publisher interface {
	PublishToPlayer(id string, data []byte) error
}

type titled interface {
	Title() string
}

// Player is a connected user. Screens opened on it are rendered as text and
// published to the player's subject.
type Player struct {
	id   string
	name string
	inv  *Inventory
	pub  Publisher

	mu   sync.Mutex
	open gui.Inventory
	ext  storage.ExtensionState
}

// NewPlayer restores a player from rec. A nil rec creates a fresh player.
func NewPlayer(id string, rec *PlayerRecord, pub Publisher) *Player {
	p := &Player{
		id:  id,
		inv: NewInventory(PersonalSize),
		pub: pub,
	}
	if rec == nil {
		p.name = id
		return p
	}

	p.name = rec.Name
	p.ext = rec.ExtensionState.Clone()
	for i, s := range rec.Inventory {
		if i >= PersonalSize {
			break
		}
		if s != nil && !s.Empty() {
			_ = p.inv.SetSlot(i, s)
		}
	}
	p.inv.ConsumeDirty()
	return p
}

func (p *Player) Id() string {
	return p.id
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Inventory() gui.Inventory {
	return p.inv
}

// OpenInventory makes inv the player's current screen and sends it.
func (p *Player) OpenInventory(inv gui.Inventory) error {
	p.mu.Lock()
	p.open = inv
	p.mu.Unlock()

	return p.Refresh()
}

// CloseInventory drops the current screen. The personal inventory is sent
// again on the next Refresh.
func (p *Player) CloseInventory() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = nil
}

// Viewing returns the inventory currently open, or nil.
func (p *Player) Viewing() gui.Inventory {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Refresh publishes the current screen.
func (p *Player) Refresh() error {
	p.mu.Lock()
	open := p.open
	p.mu.Unlock()

	if open != nil {
		if inv, ok := open.(*Inventory); ok {
			inv.ConsumeDirty()
		}
	}
	p.inv.ConsumeDirty()

	return p.Send(Render(open, p.inv))
}

// RefreshIfChanged publishes the screen when either visible inventory was
// written since the last refresh.
func (p *Player) RefreshIfChanged() error {
	p.mu.Lock()
	open := p.open
	p.mu.Unlock()

	changed := p.inv.ConsumeDirty()
	if inv, ok := open.(*Inventory); ok && inv.ConsumeDirty() {
		changed = true
	}
	if !changed {
		return nil
	}
	return p.Send(Render(open, p.inv))
}

// Send publishes text to the player.
func (p *Player) Send(text string) error {
	if p.pub == nil {
		return nil
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := p.pub.PublishToPlayer(p.id, []byte(text)); err != nil {
		return fmt.Errorf("sending to %s: %w", p.id, err)
	}
	return nil
}

// SetExtension stores v under key in the player's record.
func (p *Player) SetExtension(key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ext.Set(key, v)
}

// Extension reads key from the player's record into out.
func (p *Player) Extension(key string, out any) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ext.Get(key, out)
}

// Record snapshots the player for storage.
func (p *Player) Record() *PlayerRecord {
	p.mu.Lock()
	defer p.mu.Unlock()

	return &PlayerRecord{
		Name:           p.name,
		Inventory:      p.inv.Stacks(),
		ExtensionState: p.ext.Clone(),
	}
}

// Render draws open above personal. A nil open draws the personal inventory
// alone.
func Render(open gui.Inventory, personal gui.Inventory) string {
	if open == nil {
		return display.Screen("Inventory", nil, Cells(personal))
	}

	title := ""
	if t, ok := open.(titled); ok {
		title = t.Title()
	}
	return display.Screen(title, Cells(open), Cells(personal))
}
