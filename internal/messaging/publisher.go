package messaging

import "fmt"

// PlayerSubject is the subject a player's screens are published on.
func PlayerSubject(id string) string {
	return fmt.Sprintf("player-%s", id)
}

// NatsPublisher publishes messages to individual player NATS channels.
type NatsPublisher struct {
	server *NatsServer
}

// NewNatsPublisher wraps a NatsServer for per-player message delivery.
func NewNatsPublisher(server *NatsServer) *NatsPublisher {
	return &NatsPublisher{server: server}
}

func (p *NatsPublisher) PublishToPlayer(id string, data []byte) error {
	if err := p.server.Publish(PlayerSubject(id), data); err != nil {
		return fmt.Errorf("publishing to %s: %w", id, err)
	}
	return nil
}

// SubscribePlayer delivers everything published to id to handler.
func (p *NatsPublisher) SubscribePlayer(id string, handler func(data []byte)) (func(), error) {
	unsub, err := p.server.Subscribe(PlayerSubject(id), handler)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", id, err)
	}
	return unsub, nil
}
