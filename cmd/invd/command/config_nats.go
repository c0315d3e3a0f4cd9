package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-invgui/internal/messaging"
)

// NatsConfig configures the embedded server that carries rendered screens.
type NatsConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
	MaxPayload   int32  `json:"max_payload"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("port must be between -1 and 65535"))
	}
	if n.MaxPayload < 0 {
		el.Add(fmt.Errorf("max_payload must not be negative"))
	}
	if _, err := n.startTimeout(); err != nil {
		el.Add(err)
	}

	return el.Err()
}

func (n *NatsConfig) startTimeout() (time.Duration, error) {
	if n.StartTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(n.StartTimeout)
	if err != nil {
		return 0, fmt.Errorf("parsing start_timeout: %w", err)
	}
	return d, nil
}

func (n *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	timeout, err := n.startTimeout()
	if err != nil {
		return nil, err
	}

	opts := []messaging.NatsServerOpt{messaging.WithMaxPayload(n.MaxPayload)}
	if timeout > 0 {
		opts = append(opts, messaging.WithStartTimeout(timeout))
	}
	if n.Host != "" {
		opts = append(opts, messaging.WithHost(n.Host))
	}
	if n.Port != 0 {
		opts = append(opts, messaging.WithPort(n.Port))
	}

	return messaging.NewNatsServer(opts...)
}
