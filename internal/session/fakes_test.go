package session

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/pixil98/go-invgui/internal/host"
	"github.com/pixil98/go-invgui/internal/layout"
)

// memStore is an in-memory storage.Storer.
type memStore[T any] struct {
	mu      sync.Mutex
	records map[string]T
}

func newMemStore[T any](records map[string]T) *memStore[T] {
	if records == nil {
		records = map[string]T{}
	}
	return &memStore[T]{records: records}
}

func (s *memStore[T]) Save(id string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = v
	return nil
}

func (s *memStore[T]) Get(id string) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[id]
}

func (s *memStore[T]) GetAll() map[string]T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]T, len(s.records))
	for k, v := range s.records {
		out[k] = v
	}
	return out
}

// directMessenger hands published messages straight to the subscriber.
type directMessenger struct {
	mu        sync.Mutex
	handlers  map[string]func([]byte)
	published map[string][]string
}

func (m *directMessenger) PublishToPlayer(id string, data []byte) error {
	m.mu.Lock()
	if m.published == nil {
		m.published = map[string][]string{}
	}
	m.published[id] = append(m.published[id], string(data))
	h := m.handlers[id]
	m.mu.Unlock()

	if h != nil {
		h(data)
	}
	return nil
}

func (m *directMessenger) SubscribePlayer(id string, handler func([]byte)) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handlers == nil {
		m.handlers = map[string]func([]byte){}
	}
	m.handlers[id] = handler
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.handlers, id)
	}, nil
}

// sawScreen reports whether a screen starting with title was published to id.
func (m *directMessenger) sawScreen(id, title string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.published[id] {
		if strings.HasPrefix(msg, title+"\n") {
			return true
		}
	}
	return false
}

func shopLayout() *layout.Definition {
	return &layout.Definition{
		Title: "Shop",
		Rows:  1,
		Panes: []layout.PaneDef{{
			Type:   layout.PaneStatic,
			Length: 9,
			Height: 1,
			Items: []layout.ItemDef{
				{X: 0, Material: "emerald", Amount: 2, Action: "take"},
				{X: 8, Material: "barrier", Action: "close"},
			},
		}},
	}
}

// vaultLayout overlays the first row of the viewer's inventory.
func vaultLayout() *layout.Definition {
	return &layout.Definition{
		Title:   "{{ .Name }}'s vault",
		Rows:    1,
		OnClose: "save",
		Panes: []layout.PaneDef{{
			Type:   layout.PaneStatic,
			Y:      1,
			Length: 9,
			Height: 1,
			Items:  []layout.ItemDef{{Material: "glass_pane"}},
		}},
	}
}

type fixture struct {
	m       *Manager
	msg     *directMessenger
	players *memStore[*host.PlayerRecord]
}

func newFixture(t *testing.T, layouts map[string]*layout.Definition, players map[string]*host.PlayerRecord, opts ...ManagerOpt) *fixture {
	t.Helper()
	return newFixtureWithRegistry(t, layout.NewRegistry(), layouts, players, opts...)
}

func newFixtureWithRegistry(t *testing.T, registry *layout.Registry, layouts map[string]*layout.Definition, players map[string]*host.PlayerRecord, opts ...ManagerOpt) *fixture {
	t.Helper()

	f := &fixture{
		msg:     &directMessenger{},
		players: newMemStore(players),
	}

	m, err := NewManager(newMemStore(layouts), f.players, registry, f.msg, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.m = m
	return f
}

// run plays input through a session and returns everything written to it.
func (f *fixture) run(t *testing.T, input string) string {
	t.Helper()

	var out bytes.Buffer
	rw := struct {
		io.Reader
		io.Writer
	}{strings.NewReader(input), &out}

	if err := f.m.RunSession(context.Background(), rw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String()
}

func defaultLayouts() map[string]*layout.Definition {
	return map[string]*layout.Definition{
		"shop":  shopLayout(),
		"vault": vaultLayout(),
	}
}

func discardConn() *conn {
	return newConn(struct {
		io.Reader
		io.Writer
	}{strings.NewReader(""), io.Discard})
}
