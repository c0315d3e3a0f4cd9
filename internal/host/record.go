package host

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-invgui/internal/storage"
)

// PlayerRecord is the stored form of a player.
type PlayerRecord struct {
	Name      string   `json:"name" yaml:"name"`
	Inventory []*Stack `json:"inventory,omitempty" yaml:"inventory,omitempty"`

	storage.ExtensionState `json:"ext,omitempty" yaml:"ext,omitempty"`
}

func (r *PlayerRecord) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if len(r.Inventory) > PersonalSize {
		el.Add(fmt.Errorf("inventory has %d slots, at most %d allowed", len(r.Inventory), PersonalSize))
	}
	for i, s := range r.Inventory {
		if s != nil && s.Amount < 0 {
			el.Add(fmt.Errorf("inventory[%d]: amount must not be negative", i))
		}
	}

	return el.Err()
}
