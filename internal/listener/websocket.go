package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsReadHeaderTimeout = 5 * time.Second
	wsWriteTimeout      = 5 * time.Second
	wsShutdownTimeout   = 5 * time.Second
)

// WebsocketListener serves sessions over websocket text messages. Each
// message received is one line of input.
type WebsocketListener struct {
	port uint16
	path string
	cm   *ConnectionManager

	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, path string, cm *ConnectionManager) *WebsocketListener {
	if path == "" {
		path = "/"
	}
	return &WebsocketListener{
		port: port,
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	conns := newConnGroup()
	defer conns.Stop()

	mux := http.NewServeMux()
	mux.Handle(l.path, l.handler(conns))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", l.port),
		Handler:           mux,
		ReadHeaderTimeout: wsReadHeaderTimeout,
	}

	// done signals that Start is returning (either success or failure)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			conns.cancel()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), wsShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("shutting down websocket listener", "error", err)
			}
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "listening for websocket", "port", l.port, "path", l.path)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return listenError("websocket", l.port, err)
}

// handler upgrades requests and runs a session on each connection until the
// group is stopped.
func (l *WebsocketListener) handler(conns *connGroup) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := l.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("upgrading websocket", "remote", r.RemoteAddr, "error", err)
			return
		}

		conns.Track(func(ctx context.Context) {
			sessionCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			// Closing the connection unblocks any pending read.
			go func() {
				<-sessionCtx.Done()
				_ = conn.Close()
			}()

			slog.InfoContext(ctx, "websocket connection established", "remote", r.RemoteAddr)
			l.cm.AcceptConnection(sessionCtx, newWSReadWriter(conn))
		})
	})
}

// wsReadWriter adapts a websocket connection to a byte stream. Every text
// message read ends with a newline.
type wsReadWriter struct {
	conn *websocket.Conn
	buf  []byte

	mu sync.Mutex
}

func newWSReadWriter(conn *websocket.Conn) *wsReadWriter {
	return &wsReadWriter{conn: conn}
}

func (w *wsReadWriter) Read(p []byte) (int, error) {
	for len(w.buf) == 0 {
		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		if len(msg) == 0 || msg[len(msg)-1] != '\n' {
			msg = append(msg, '\n')
		}
		w.buf = msg
	}

	n := copy(p, w.buf)
	w.buf = w.buf[n:]
	return n, nil
}

func (w *wsReadWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_ = w.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
