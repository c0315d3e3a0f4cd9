package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	goerrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-invgui/internal/listener"
	"github.com/pixil98/go-service"
	"golang.org/x/crypto/ssh"
)

type ListenerType int

const (
	ListenerTypeTelnet ListenerType = iota
	ListenerTypeSSH
	ListenerTypeWebsocket
)

var listenerTypeNames = map[ListenerType]string{
	ListenerTypeTelnet:    "telnet",
	ListenerTypeSSH:       "ssh",
	ListenerTypeWebsocket: "websocket",
}

func (lt ListenerType) String() string {
	if name, ok := listenerTypeNames[lt]; ok {
		return name
	}
	return fmt.Sprintf("ListenerType(%d)", int(lt))
}

func (lt *ListenerType) UnmarshalText(text []byte) error {
	for t, name := range listenerTypeNames {
		if name == string(text) {
			*lt = t
			return nil
		}
	}
	return fmt.Errorf("unknown listener type: %s", text)
}

type ListenerConfig struct {
	Protocol ListenerType `json:"protocol"`
	Port     uint16       `json:"port"`
	// HostKeyPath names the ssh host key. A missing file is created with a
	// fresh key so the server keeps its identity across restarts.
	HostKeyPath string `json:"host_key_path,omitempty"`
	// Path is the http path websocket clients connect to.
	Path string `json:"path,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if cl.HostKeyPath != "" && cl.Protocol != ListenerTypeSSH {
		el.Add(fmt.Errorf("host_key_path does not apply to %s listeners", cl.Protocol))
	}
	if cl.Path != "" {
		if cl.Protocol != ListenerTypeWebsocket {
			el.Add(fmt.Errorf("path does not apply to %s listeners", cl.Protocol))
		} else if !strings.HasPrefix(cl.Path, "/") {
			el.Add(fmt.Errorf("path must start with /"))
		}
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch cl.Protocol {
	case ListenerTypeTelnet:
		return listener.NewTelnetListener(cl.Port, cm), nil
	case ListenerTypeSSH:
		hostKey, err := cl.loadOrGenerateHostKey()
		if err != nil {
			return nil, fmt.Errorf("setting up ssh host key: %w", err)
		}
		return listener.NewSshListener(cl.Port, cm, hostKey), nil
	case ListenerTypeWebsocket:
		return listener.NewWebsocketListener(cl.Port, cl.Path, cm), nil
	default:
		return nil, fmt.Errorf("unknown listener type: %s", cl.Protocol)
	}
}

func (cl *ListenerConfig) loadOrGenerateHostKey() (ssh.Signer, error) {
	if cl.HostKeyPath == "" {
		slog.Warn("no host_key_path configured for ssh listener, generating ephemeral key")
		signer, _, err := generateHostKey()
		return signer, err
	}

	keyBytes, err := os.ReadFile(cl.HostKeyPath)
	if goerrors.Is(err, fs.ErrNotExist) {
		return cl.createHostKey()
	}
	if err != nil {
		return nil, fmt.Errorf("reading host key %q: %w", cl.HostKeyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing host key %q: %w", cl.HostKeyPath, err)
	}
	return signer, nil
}

func (cl *ListenerConfig) createHostKey() (ssh.Signer, error) {
	signer, keyPEM, err := generateHostKey()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(cl.HostKeyPath, keyPEM, 0o600); err != nil {
		return nil, fmt.Errorf("writing host key %q: %w", cl.HostKeyPath, err)
	}

	slog.Info("generated ssh host key", "path", cl.HostKeyPath, "fingerprint", ssh.FingerprintSHA256(signer.PublicKey()))
	return signer, nil
}

// generateHostKey returns an ed25519 signer and its PEM encoded private key.
func generateHostKey() (ssh.Signer, []byte, error) {
	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generating host key: %w", err)
	}

	block, err := ssh.MarshalPrivateKey(privKey, "")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding host key: %w", err)
	}

	signer, err := ssh.NewSignerFromKey(privKey)
	if err != nil {
		return nil, nil, fmt.Errorf("creating signer: %w", err)
	}
	return signer, pem.EncodeToMemory(block), nil
}
