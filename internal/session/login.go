package session

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/pixil98/go-invgui/internal"
	"github.com/pixil98/go-invgui/internal/host"
)

const (
	maxNameTries  = 5
	maxNameLength = 20

	extLastLayout = "last_layout"
)

func (m *Manager) login(c *conn) (*host.Player, error) {
	if _, err := c.Write([]byte("Welcome!\n")); err != nil {
		return nil, err
	}

	for {
		name, err := internal.Prompt(c, "By what name do you wish to be known? ",
			internal.WithMaxTries(maxNameTries),
			internal.WithValidator(validName),
		)
		if err != nil {
			return nil, err
		}

		id := strings.ToLower(name)
		rec := m.players.Get(id)

		if rec == nil {
			ok, err := internal.PromptYN(c, fmt.Sprintf("Did I get that right, %s (Y/N)? ", name))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			rec = &host.PlayerRecord{Name: name}
		}

		p := host.NewPlayer(id, rec, m.msg)

		if m.journal != nil {
			found, err := m.journal.Recover(id, p.Inventory())
			if err != nil {
				return nil, fmt.Errorf("recovering inventory of %s: %w", id, err)
			}
			if found {
				slog.Info("recovered cached inventory", "player", id)
				if _, err := c.Write([]byte("Your inventory was recovered after an interruption.\n")); err != nil {
					return nil, err
				}
			}
		}

		if err := m.save(p); err != nil {
			return nil, err
		}
		return p, nil
	}
}

func validName(str string) (bool, string) {
	if len(str) < 2 || len(str) > maxNameLength {
		return false, "Invalid name, please try another.\n"
	}
	for _, r := range str {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false, "Invalid name, please try another.\n"
		}
	}
	return true, ""
}

// offerLayout asks a player to reopen their last layout, or to pick one when
// they have none.
func (m *Manager) offerLayout(s *Session) error {
	if m.layouts.Len() == 0 {
		return nil
	}

	var last string
	found, err := s.player.Extension(extLastLayout, &last)
	if err != nil {
		slog.Warn("reading last layout", "player", s.player.Id(), "error", err)
	}

	if found && m.layouts.Get(last) != nil {
		ok, err := internal.PromptYN(s.conn, fmt.Sprintf("Reopen %s (Y/N)? ", m.layouts.Get(last).Selector()))
		if err != nil || !ok {
			return err
		}
		return s.report(s.open(last))
	}

	ok, err := internal.PromptYN(s.conn, "Browse the available layouts (Y/N)? ")
	if err != nil || !ok {
		return err
	}
	id, err := m.layouts.Prompt(s.conn, "Available layouts:")
	if err != nil {
		return err
	}
	return s.report(s.open(id))
}
