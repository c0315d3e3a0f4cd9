package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pixil98/go-invgui/internal/gui"
	"github.com/pixil98/go-invgui/internal/host"
)

const pendingMessages = 16

// Session is one connected player.
type Session struct {
	m      *Manager
	player *host.Player
	conn   *conn

	msgs chan []byte
	done chan struct{}

	// mu guards the fields below. Click actions run with it held.
	mu         sync.Mutex
	gui        *gui.StorageGui
	layout     string
	closeAfter bool
	quit       bool
	closed     bool
}

func newSession(m *Manager, p *host.Player, c *conn) *Session {
	return &Session{
		m:      m,
		player: p,
		conn:   c,
		msgs:   make(chan []byte, pendingMessages),
		done:   make(chan struct{}),
	}
}

// deliver receives what is published to the player.
func (s *Session) deliver(data []byte) {
	select {
	case s.msgs <- data:
	case <-s.done:
	}
}

func (s *Session) play(ctx context.Context) error {
	defer close(s.done)

	// Start goroutine to read input lines into a channel
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		defer close(inputChan)
		for {
			line, err := s.conn.ReadString('\n')
			if line != "" {
				select {
				case inputChan <- line:
				case <-s.done:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					inputErrChan <- err
				}
				return
			}
		}
	}()

	if err := s.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-s.msgs:
			if err := s.writeLine("\n" + string(msg)); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Connection lost
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line != "" {
				if err := s.report(s.m.exec(ctx, s, line)); err != nil {
					return fmt.Errorf("command execution failed: %w", err)
				}
			}

			if s.quitting() {
				if err := s.writeLine("Goodbye!"); err != nil {
					slog.Warn("failed to write goodbye", "player", s.player.Id(), "error", err)
				}
				return nil
			}

			if err := s.prompt(); err != nil {
				return err
			}
		}
	}
}

// report shows user errors to the player and returns anything else.
func (s *Session) report(err error) error {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return s.writeLine(userErr.Message)
	}
	return err
}

func (s *Session) prompt() error {
	prompt := "> "
	if name := s.openLayout(); name != "" {
		prompt = fmt.Sprintf("[%s] > ", name)
	}
	_, err := io.WriteString(s.conn, prompt)
	return err
}

func (s *Session) writeLine(msg string) error {
	_, err := io.WriteString(s.conn, msg+"\n")
	return err
}

func (s *Session) quitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quit
}

func (s *Session) openLayout() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// open builds layout id for the player and shows it, closing any gui that is
// already open.
func (s *Session) open(id string) error {
	def := s.m.layouts.Get(id)
	if def == nil {
		return NewUserError(fmt.Sprintf("There is no layout %q.", id))
	}

	g, err := s.m.loader.Build(def, titleData{Name: s.player.Name(), Id: s.player.Id()})
	if err != nil {
		return fmt.Errorf("building layout %q: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.closeLocked(); err != nil {
		return err
	}

	if err := g.Show(s.player); err != nil {
		return fmt.Errorf("showing layout %q: %w", id, err)
	}
	s.gui = g
	s.layout = id

	if err := s.player.SetExtension(extLastLayout, id); err != nil {
		slog.Warn("remembering layout", "player", s.player.Id(), "error", err)
	}
	return nil
}

// click delivers a click on rawSlot to the open gui.
func (s *Session) click(rawSlot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gui == nil {
		return NewUserError("You have nothing open.")
	}

	ev := s.gui.NewClickEvent(s.player, rawSlot)
	handled, err := s.gui.Click(ev)
	if err != nil {
		s.closeAfter = false
		var userErr *UserError
		if !errors.As(err, &userErr) {
			slog.Warn("click failed", "player", s.player.Id(), "layout", s.layout, "slot", rawSlot, "error", err)
			userErr = NewUserError("That did not work.")
		}
		return userErr
	}

	if s.closeAfter {
		s.closeAfter = false
		return s.closeLocked()
	}

	if err := s.gui.Update(); err != nil {
		return err
	}
	if err := s.player.RefreshIfChanged(); err != nil {
		return err
	}

	if !handled && ev.Side == gui.SideOutside {
		return NewUserError("You clicked outside the window.")
	}
	return nil
}

// requestClose closes the gui once the current click is done. Click actions
// call it with the session locked.
func (s *Session) requestClose() {
	s.closeAfter = true
}

func (s *Session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gui == nil {
		return NewUserError("You have nothing open.")
	}
	return s.closeLocked()
}

func (s *Session) closeLocked() error {
	if s.gui == nil {
		return nil
	}

	g := s.gui
	s.gui = nil
	s.layout = ""

	err := g.HandleClose(s.player)
	s.player.CloseInventory()

	return errors.Join(err, s.m.save(s.player), s.player.Refresh())
}

func (s *Session) tick() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	if s.gui != nil {
		if err := s.gui.Update(); err != nil {
			return err
		}
	}
	return s.player.RefreshIfChanged()
}

// shutdown closes the open gui and saves the player. Later calls do nothing.
func (s *Session) shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	g := s.gui
	s.gui = nil
	s.layout = ""

	var err error
	if g != nil {
		err = g.HandleClose(s.player)
		s.player.CloseInventory()
	}
	return errors.Join(err, s.m.save(s.player))
}
