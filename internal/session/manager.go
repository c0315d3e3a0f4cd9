package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/pixil98/go-invgui/internal/gui"
	"github.com/pixil98/go-invgui/internal/host"
	"github.com/pixil98/go-invgui/internal/layout"
	"github.com/pixil98/go-invgui/internal/storage"
)

// Messenger delivers rendered screens to players and lets a session receive
// what is published to its player.
type Messenger interface {
	host.Publisher
	SubscribePlayer(id string, handler func(data []byte)) (func(), error)
}

type ManagerOpt func(*Manager)

// WithJournal mirrors cached inventories to j and recovers them on login.
func WithJournal(j *host.CacheJournal) ManagerOpt {
	return func(m *Manager) {
		m.journal = j
	}
}

// Manager runs player sessions and owns the guis they open.
type Manager struct {
	layouts  *storage.SelectableStorer[*layout.Definition]
	players  storage.Storer[*host.PlayerRecord]
	registry *layout.Registry
	msg      Messenger
	journal  *host.CacheJournal

	cache    *gui.HumanEntityCache
	loader   *layout.Loader
	commands map[string]*command

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(layouts storage.Storer[*layout.Definition], players storage.Storer[*host.PlayerRecord], registry *layout.Registry, msg Messenger, opts ...ManagerOpt) (*Manager, error) {
	m := &Manager{
		layouts:  storage.NewSelectableStorer(layouts),
		players:  players,
		registry: registry,
		msg:      msg,
		sessions: map[string]*Session{},
	}

	for _, opt := range opts {
		opt(m)
	}

	var cacheOpts []gui.CacheOpt
	if m.journal != nil {
		cacheOpts = append(cacheOpts, gui.WithJournal(m.journal))
	}
	m.cache = gui.NewHumanEntityCache(cacheOpts...)
	m.loader = layout.NewLoader(registry, host.StackFromDef, host.Factory{}, m.cache)
	m.commands = m.buildCommands()

	if err := m.registerActions(); err != nil {
		return nil, err
	}

	// Every layout must build with the registered callbacks.
	for id, def := range layouts.GetAll() {
		if _, err := m.loader.Build(def, titleData{Name: "Check", Id: "check"}); err != nil {
			return nil, fmt.Errorf("building layout %q: %w", id, err)
		}
	}

	return m, nil
}

// Start waits for shutdown, then closes every open gui and saves the
// players still connected. Inventories that cannot be restored stay in the
// journal for the next login.
func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()

	for _, s := range m.liveSessions() {
		if err := s.shutdown(); err != nil {
			slog.Warn("closing session on shutdown", "player", s.player.Id(), "error", err)
		}
	}

	err := m.cache.RestoreAndForgetAll(func(id string) gui.User {
		m.mu.Lock()
		defer m.mu.Unlock()
		if s, ok := m.sessions[id]; ok {
			return s.player
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("restoring cached inventories: %w", err)
	}
	if n := m.cache.Len(); n > 0 {
		slog.Warn("inventories left in cache", "count", n)
	}
	return nil
}

// Tick redraws the open guis of every session.
func (m *Manager) Tick(ctx context.Context) error {
	for _, s := range m.liveSessions() {
		if err := s.tick(); err != nil {
			slog.WarnContext(ctx, "updating session", "player", s.player.Id(), "error", err)
		}
	}
	return nil
}

// RunSession logs a player in on rw and runs their commands until they quit,
// the connection drops or ctx is canceled.
func (m *Manager) RunSession(ctx context.Context, rw io.ReadWriter) error {
	c := newConn(rw)

	p, err := m.login(c)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s := newSession(m, p, c)
	if err := m.register(s); err != nil {
		_, _ = io.WriteString(c, "You are already connected.\n")
		return err
	}
	defer m.unregister(s)

	unsub, err := m.msg.SubscribePlayer(p.Id(), s.deliver)
	if err != nil {
		return err
	}
	defer unsub()

	slog.InfoContext(ctx, "player connected", "player", p.Id())

	if err := m.offerLayout(s); err != nil {
		return errors.Join(err, s.shutdown())
	}

	err = s.play(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	slog.InfoContext(ctx, "player disconnected", "player", p.Id())
	return errors.Join(err, s.shutdown())
}

func (m *Manager) register(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := s.player.Id()
	if _, ok := m.sessions[id]; ok {
		return fmt.Errorf("%s: %w", id, ErrAlreadyConnected)
	}
	m.sessions[id] = s
	return nil
}

func (m *Manager) unregister(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessions[s.player.Id()] == s {
		delete(m.sessions, s.player.Id())
	}
}

func (m *Manager) session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

func (m *Manager) liveSessions() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// save stores p's record. It does nothing while p's inventory is cached,
// as the live inventory holds gui items then.
func (m *Manager) save(p *host.Player) error {
	if m.cache.Contains(p.Id()) {
		return nil
	}
	if err := m.players.Save(p.Id(), p.Record()); err != nil {
		return fmt.Errorf("saving %s: %w", p.Id(), err)
	}
	return nil
}

// titleData is passed to layout title templates.
type titleData struct {
	Name string
	Id   string
}
