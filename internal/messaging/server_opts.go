package messaging

import "time"

type serverConfig struct {
	host           string
	port           int
	startupTimeout time.Duration
	maxPayload     int32
}

type NatsServerOpt func(*serverConfig)

// WithStartTimeout bounds how long Start waits for the server to accept
// connections.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(c *serverConfig) {
		c.startupTimeout = d
	}
}

func WithHost(host string) NatsServerOpt {
	return func(c *serverConfig) {
		c.host = host
	}
}

// WithPort sets the client port. -1 picks a random port.
func WithPort(port int) NatsServerOpt {
	return func(c *serverConfig) {
		c.port = port
	}
}

// WithMaxPayload caps the size of one published screen. Zero keeps the
// server default.
func WithMaxPayload(n int32) NatsServerOpt {
	return func(c *serverConfig) {
		c.maxPayload = n
	}
}
