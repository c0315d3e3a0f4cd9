package session

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-invgui/internal/host"
)

type commandFunc func(ctx context.Context, s *Session, args []string) error

type command struct {
	usage       string
	description string
	run         commandFunc
}

func (m *Manager) buildCommands() map[string]*command {
	return map[string]*command{
		"help":  {usage: "help", description: "List the commands.", run: m.help},
		"list":  {usage: "list", description: "List the layouts you can open.", run: m.list},
		"open":  {usage: "open <number|id>", description: "Open a layout.", run: m.openCmd},
		"click": {usage: "click <slot>", description: "Click a slot of the open layout.", run: m.clickCmd},
		"close": {usage: "close", description: "Close the open layout.", run: m.closeCmd},
		"inv":   {usage: "inv", description: "Show your inventory.", run: m.inv},
		"quit":  {usage: "quit", description: "Save and leave.", run: m.quitCmd},
	}
}

// exec runs one line of player input.
func (m *Manager) exec(ctx context.Context, s *Session, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	cmd, ok := m.commands[strings.ToLower(parts[0])]
	if !ok {
		return NewUserError(fmt.Sprintf("Unknown command: %s", parts[0]))
	}
	return cmd.run(ctx, s, parts[1:])
}

func (m *Manager) help(_ context.Context, s *Session, _ []string) error {
	names := make([]string, 0, len(m.commands))
	for name := range m.commands {
		names = append(names, name)
	}
	slices.Sort(names)

	lines := []string{"Available commands:"}
	for _, name := range names {
		cmd := m.commands[name]
		lines = append(lines, fmt.Sprintf("  %-18s %s", cmd.usage, cmd.description))
	}
	return s.writeLine(strings.Join(lines, "\n"))
}

func (m *Manager) list(_ context.Context, s *Session, _ []string) error {
	menu := m.layouts.Menu()
	if len(menu) == 0 {
		return NewUserError("There are no layouts.")
	}
	return s.writeLine(strings.Join(menu, "\n"))
}

func (m *Manager) openCmd(_ context.Context, s *Session, args []string) error {
	if len(args) != 1 {
		return NewUserError("Usage: open <number|id>")
	}

	id := strings.ToLower(args[0])
	if i, err := strconv.Atoi(args[0]); err == nil {
		id = m.layouts.Select(i)
		if id == "" {
			return NewUserError(fmt.Sprintf("There is no layout number %d.", i))
		}
	}
	return s.open(id)
}

func (m *Manager) clickCmd(_ context.Context, s *Session, args []string) error {
	if len(args) != 1 {
		return NewUserError("Usage: click <slot>")
	}
	slot, err := strconv.Atoi(args[0])
	if err != nil {
		return NewUserError(fmt.Sprintf("%q is not a slot number.", args[0]))
	}
	return s.click(slot)
}

func (m *Manager) closeCmd(_ context.Context, s *Session, _ []string) error {
	return s.close()
}

func (m *Manager) inv(_ context.Context, s *Session, _ []string) error {
	if m.cache.Contains(s.player.Id()) {
		return NewUserError("Your inventory is in use by the open layout.")
	}
	return s.writeLine(host.Render(nil, s.player.Inventory()))
}

func (m *Manager) quitCmd(_ context.Context, s *Session, _ []string) error {
	s.mu.Lock()
	s.quit = true
	s.mu.Unlock()
	return nil
}
