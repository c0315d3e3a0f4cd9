package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrTooManyTries = errors.New("too many tries")

// LineReader is implemented by readers that already buffer their input, such
// as *bufio.Reader. Prompt reads from them directly so no input is lost
// between prompts.
type LineReader interface {
	ReadString(delim byte) (string, error)
}

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

func Prompt(rw io.ReadWriter, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	lr, ok := rw.(LineReader)
	if !ok {
		lr = bufio.NewReader(rw)
	}

	tries := 0
	for {
		_, err := io.WriteString(rw, prompt)
		if err != nil {
			return "", err
		}

		line, err := lr.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return "", err
		}
		input := strings.TrimRight(line, "\r\n")

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if _, err := io.WriteString(rw, msg); err != nil {
					return "", err
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					return "", fmt.Errorf("prompting %q: %w", strings.TrimSpace(prompt), ErrTooManyTries)
				}

				continue
			}
		}

		return input, nil
	}
}

func PromptYN(rw io.ReadWriter, prompt string) (bool, error) {
	str, err := Prompt(rw, prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
