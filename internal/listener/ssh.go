package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/crypto/ssh"
)

type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	config := &ssh.ServerConfig{
		NoClientAuth: true,
	}
	config.AddHostKey(l.hostKey)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return listenError("ssh", l.port, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "port", l.port)

	conns := newConnGroup()

	// Close the listener when the parent context is canceled
	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			// Check if shutdown was requested
			select {
			case <-ctx.Done():
				conns.Stop()
				return nil
			default:
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		conns.Go(func(ctx context.Context) {
			l.handleConnection(ctx, conn, config)
		})
	}
}

func (l *SshListener) handleConnection(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer func() { _ = conn.Close() }()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.ErrorContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer func() { _ = sshConn.Close() }()

	slog.InfoContext(ctx, "ssh connection established", "remote", conn.RemoteAddr(), "user", sshConn.User())

	// Close the SSH connection when the context is cancelled.
	// This unblocks the channel iteration loop below so handleConnection can return.
	go func() {
		<-ctx.Done()
		_ = sshConn.Close()
	}()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			_ = newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}

		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
			continue
		}

		if !awaitShell(ctx, requests) {
			_ = ch.Close()
			continue
		}

		l.cm.AcceptConnection(ctx, newCRLFReadWriter(ch))
		_ = ch.Close()
	}
}

// awaitShell answers channel requests until the client asks for a shell.
// SSH clients won't forward input until they receive the shell reply.
func awaitShell(ctx context.Context, requests <-chan *ssh.Request) bool {
	shellReady := make(chan struct{})
	go func() {
		for req := range requests {
			switch req.Type {
			case "shell":
				_ = req.Reply(true, nil)
				close(shellReady)
			default:
				// Rejecting "pty-req" keeps local echo and line buffering on
				// the client, which the line based screens rely on.
				_ = req.Reply(false, nil)
			}
		}
	}()

	select {
	case <-shellReady:
		return true
	case <-ctx.Done():
		return false
	}
}
