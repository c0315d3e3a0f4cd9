package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"syscall"
)

// SessionRunner runs a player session on a connection until it ends.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

type ConnectionManager struct {
	sr SessionRunner
}

func NewConnectionManager(sr SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sr: sr,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.sr.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}

// connGroup tracks the connections a listener has accepted. Connections run
// on their own context so a listener can stop accepting before it cancels
// the sessions it already owns.
type connGroup struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newConnGroup() *connGroup {
	ctx, cancel := context.WithCancel(context.Background())
	return &connGroup{ctx: ctx, cancel: cancel}
}

// Go runs fn on its own goroutine with the group's context.
func (g *connGroup) Go(fn func(ctx context.Context)) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		fn(g.ctx)
	}()
}

// Track runs fn on the calling goroutine with the group's context.
func (g *connGroup) Track(fn func(ctx context.Context)) {
	g.wg.Add(1)
	defer g.wg.Done()
	fn(g.ctx)
}

// Stop cancels every tracked connection and waits for them to return.
func (g *connGroup) Stop() {
	g.cancel()
	g.wg.Wait()
}

func listenError(proto string, port uint16, err error) error {
	if errors.Is(err, syscall.EADDRINUSE) {
		return fmt.Errorf("%s port %d is already in use (another server running?)", proto, port)
	}
	return fmt.Errorf("serving %s on port %d: %w", proto, port, err)
}
