package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

const defaultTickInterval = time.Second

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Listeners    []ListenerConfig `json:"listeners"`
	Storage      StorageConfig    `json:"storage"`
	Nats         NatsConfig       `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < 50*time.Millisecond {
			el.Add(fmt.Errorf("tick_interval must be at least 50ms"))
		}
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) tickInterval() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return defaultTickInterval
	}
	return d
}
