package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

var ErrNotStarted = errors.New("nats server not started")

const defaultStartupTimeout = 10 * time.Second

// NatsServer embeds a nats server and holds one client connection to it.
// Screens for every player travel through that connection.
type NatsServer struct {
	ns             *server.Server
	startupTimeout time.Duration

	mu    sync.RWMutex
	conn  *nats.Conn
	ready chan struct{}
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	cfg := serverConfig{
		host:           "127.0.0.1",
		startupTimeout: defaultStartupTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ns, err := server.NewServer(&server.Options{
		Host:       cfg.host,
		Port:       cfg.port,
		MaxPayload: cfg.maxPayload,
		NoSigs:     true, // signals belong to the service
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	return &NatsServer{
		ns:             ns,
		startupTimeout: cfg.startupTimeout,
		ready:          make(chan struct{}),
	}, nil
}

func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	// Create internal client connection
	conn, err := nats.Connect(n.ns.ClientURL())
	if err != nil {
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	n.mu.Lock()
	n.conn = conn
	n.mu.Unlock()
	close(n.ready)

	slog.InfoContext(ctx, "nats server listening", "addr", n.ns.Addr())

	<-ctx.Done()

	n.mu.Lock()
	n.conn.Close()
	n.conn = nil
	n.mu.Unlock()

	n.ns.Shutdown()
	n.ns.WaitForShutdown()

	return nil
}

// Ready is closed once the server accepts clients.
func (n *NatsServer) Ready() <-chan struct{} {
	return n.ready
}

// Subscribe creates a subscription on the given subject.
// The handler is called for each message received.
// Returns an unsubscribe function to remove the subscription.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.conn == nil {
		return nil, ErrNotStarted
	}
	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			slog.Warn("unsubscribing", "subject", subject, "error", err)
		}
	}, nil
}

// Publish sends a message to the given subject
func (n *NatsServer) Publish(subject string, data []byte) error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.conn == nil {
		return ErrNotStarted
	}
	return n.conn.Publish(subject, data)
}

// Flush waits until the server has processed every published message.
func (n *NatsServer) Flush() error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.conn == nil {
		return ErrNotStarted
	}
	return n.conn.Flush()
}
