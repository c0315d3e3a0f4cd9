package listener

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iammegalith/telnet"
)

// TelnetListener serves sessions to plain telnet clients.
type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		port: port,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	conns := newConnGroup()
	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), &telnetHandler{cm: l.cm, conns: conns})

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			conns.Stop()
		case <-stopped:
		}
	}()

	slog.InfoContext(ctx, "listening for telnet", "port", l.port)

	if err := svr.ListenAndServe(); err != nil {
		conns.Stop()
		return listenError("telnet", l.port, err)
	}
	return nil
}

type telnetHandler struct {
	cm    *ConnectionManager
	conns *connGroup
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("closing telnet connection", "error", err)
		}
	}()

	h.conns.Track(func(ctx context.Context) {
		h.cm.AcceptConnection(ctx, newCRLFReadWriter(conn))
	})
}
