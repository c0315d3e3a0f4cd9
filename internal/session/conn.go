package session

import (
	"bufio"
	"io"
	"sync"
)

// conn buffers a connection's input so prompts and the command loop read
// from the same buffer, and serializes writes from the session and its
// subscription.
type conn struct {
	*bufio.Reader

	mu sync.Mutex
	w  io.Writer
}

func newConn(rw io.ReadWriter) *conn {
	return &conn{
		Reader: bufio.NewReader(rw),
		w:      rw,
	}
}

func (c *conn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}
