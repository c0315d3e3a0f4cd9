package host

import (
	"fmt"
	"sync"

	"github.com/pixil98/go-invgui/internal/gui"
)

// recordingPublisher keeps every published message.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs map[string][]string
	err  error
}

func (p *recordingPublisher) PublishToPlayer(id string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.msgs == nil {
		p.msgs = map[string][]string{}
	}
	p.msgs[id] = append(p.msgs[id], string(data))
	return nil
}

func (p *recordingPublisher) count(id string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.msgs[id])
}

func (p *recordingPublisher) last(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.msgs[id]) == 0 {
		return ""
	}
	return p.msgs[id][len(p.msgs[id])-1]
}

// foreignStack is a gui.Stack that is not a *Stack.
type foreignStack struct{}

func (foreignStack) Empty() bool { return false }

func (f foreignStack) Clone() gui.Stack { return f }

func errPublish(id string) error {
	return fmt.Errorf("no route to %s", id)
}
