package listener

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-testutil"
)

// greeter answers the first line it reads.
type greeter struct {
	done chan struct{}
}

func (g *greeter) RunSession(ctx context.Context, conn io.ReadWriter) error {
	defer close(g.done)

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(conn, "hello %s\n", strings.TrimSpace(line))
	return err
}

func TestWebsocketListener_Handler(t *testing.T) {
	g := &greeter{done: make(chan struct{})}
	l := NewWebsocketListener(0, "/play", NewConnectionManager(g))

	conns := newConnGroup()
	srv := httptest.NewServer(l.handler(conns))
	defer srv.Close()
	defer conns.Stop()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("bob")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reply", string(msg), "hello bob\n")

	select {
	case <-g.done:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish")
	}
}

func TestNewWebsocketListener_DefaultPath(t *testing.T) {
	l := NewWebsocketListener(8080, "", nil)
	testutil.AssertEqual(t, "path", l.path, "/")
}
