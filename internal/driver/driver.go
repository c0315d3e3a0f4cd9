package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultTickLength is how often open guis are redrawn.
	DefaultTickLength = time.Second
)

// Ticker is redrawn on every tick.
type Ticker interface {
	Tick(context.Context) error
}

// Driver ticks its tickers at a fixed interval until stopped.
type Driver struct {
	tickLength time.Duration
	tickers    []Ticker
}

func NewDriver(tickers []Ticker, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		tickers:    tickers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "driver started", "tick_length", d.tickLength)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick runs every ticker once, in order. The first error stops the tick.
func (d *Driver) Tick(ctx context.Context) error {
	for i, t := range d.tickers {
		if err := t.Tick(ctx); err != nil {
			return fmt.Errorf("ticker %d: %w", i, err)
		}
	}
	return nil
}
