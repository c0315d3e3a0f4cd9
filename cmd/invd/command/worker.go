package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-invgui/internal/driver"
	"github.com/pixil98/go-invgui/internal/layout"
	"github.com/pixil98/go-invgui/internal/listener"
	"github.com/pixil98/go-invgui/internal/messaging"
	"github.com/pixil98/go-invgui/internal/session"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	layouts, err := cfg.Storage.buildLayouts()
	if err != nil {
		return nil, err
	}
	players, err := cfg.Storage.buildPlayers()
	if err != nil {
		return nil, err
	}
	slog.Info("loaded assets", "layouts", layouts.Len(), "players", players.Len())

	ns, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, err
	}

	var opts []session.ManagerOpt
	journal, err := cfg.Storage.buildJournal()
	if err != nil {
		return nil, fmt.Errorf("creating cache journal: %w", err)
	}
	if journal != nil {
		opts = append(opts, session.WithJournal(journal))
	}

	sessions, err := session.NewManager(layouts, players, layout.NewRegistry(), messaging.NewNatsPublisher(ns), opts...)
	if err != nil {
		return nil, fmt.Errorf("creating session manager: %w", err)
	}

	// Create Listeners
	cm := listener.NewConnectionManager(sessions)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = &afterReady{ready: ns.Ready(), worker: w}
	}

	d := driver.NewDriver([]driver.Ticker{sessions}, driver.WithTickLength(cfg.tickInterval()))

	return service.WorkerList{
		"nats":      ns,
		"sessions":  sessions,
		"driver":    d,
		"listeners": &listeners,
	}, nil
}

// afterReady starts worker once ready is closed, so no session connects
// before messages can be delivered.
type afterReady struct {
	ready  <-chan struct{}
	worker service.Worker
}

func (a *afterReady) Start(ctx context.Context) error {
	select {
	case <-a.ready:
	case <-ctx.Done():
		return nil
	}
	return a.worker.Start(ctx)
}
