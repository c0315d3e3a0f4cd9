package internal

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

type bufferedConn struct {
	*bufio.Reader
	out *bytes.Buffer
}

func (c *bufferedConn) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func newConn(input string) *bufferedConn {
	return &bufferedConn{
		Reader: bufio.NewReader(strings.NewReader(input)),
		out:    &bytes.Buffer{},
	}
}

func TestPrompt(t *testing.T) {
	tests := map[string]struct {
		input  string
		opts   []promptOption
		exp    string
		expErr error
	}{
		"plain line": {
			input: "hello\n",
			exp:   "hello",
		},
		"crlf line": {
			input: "hello\r\n",
			exp:   "hello",
		},
		"last line without newline": {
			input: "hello",
			exp:   "hello",
		},
		"retries until valid": {
			input: "bad\ngood\n",
			opts: []promptOption{WithValidator(func(s string) (bool, string) {
				return s == "good", "again\n"
			})},
			exp: "good",
		},
		"gives up after max tries": {
			input: "bad\nbad\ngood\n",
			opts: []promptOption{
				WithMaxTries(2),
				WithValidator(func(s string) (bool, string) { return s == "good", "again\n" }),
			},
			expErr: ErrTooManyTries,
		},
		"closed input": {
			input:  "",
			expErr: io.EOF,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			conn := newConn(tt.input)

			got, err := Prompt(conn, "> ", tt.opts...)

			if tt.expErr != nil {
				testutil.AssertEqual(t, "error", errors.Is(err, tt.expErr), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "input", got, tt.exp)
		})
	}
}

func TestPrompt_SharesBufferedReader(t *testing.T) {
	conn := newConn("first\nsecond\n")

	first, err := Prompt(conn, "> ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Prompt(conn, "> ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "first", first, "first")
	testutil.AssertEqual(t, "second", second, "second")
	testutil.AssertEqual(t, "prompts written", conn.out.String(), "> > ")
}

func TestPromptYN(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   bool
	}{
		"yes":          {input: "yes\n", exp: true},
		"short yes":    {input: "Y\n", exp: true},
		"no":           {input: "no\n", exp: false},
		"retry to yes": {input: "maybe\ny\n", exp: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := PromptYN(newConn(tt.input), "Sure? ")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "answer", got, tt.exp)
		})
	}
}
