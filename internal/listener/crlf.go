package listener

import (
	"io"
)

// crlfReadWriter normalizes line endings for line based clients. Input \r\n
// and bare \r become \n; output \n becomes \r\n.
type crlfReadWriter struct {
	rw io.ReadWriter
	// lastCR is set when the previous read ended in \r, so a leading \n in
	// the next read belongs to the same line break.
	lastCR bool
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfReadWriter{rw: rw}
}

func (c *crlfReadWriter) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)

		// Rewriting in place is safe, out never gets ahead of the input.
		out := p[:0]
		for _, b := range p[:n] {
			switch {
			case b == '\n' && c.lastCR:
				c.lastCR = false
			case b == '\r':
				c.lastCR = true
				out = append(out, '\n')
			default:
				c.lastCR = false
				out = append(out, b)
			}
		}

		if len(out) > 0 || n == 0 || err != nil {
			return len(out), err
		}
	}
}

func (c *crlfReadWriter) Write(p []byte) (int, error) {
	converted := make([]byte, 0, len(p)+len(p)/8)
	for i, b := range p {
		if b == '\n' && (i == 0 || p[i-1] != '\r') {
			converted = append(converted, '\r')
		}
		converted = append(converted, b)
	}

	_, err := c.rw.Write(converted)
	// Return the original length so callers aren't confused by the size change
	return len(p), err
}
