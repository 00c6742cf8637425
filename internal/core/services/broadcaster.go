package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
	"github.com/custodia-labs/docwatch/internal/core/ports/driving"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// Ensure Broadcaster implements the interface.
var _ driving.ChangeFeed = (*Broadcaster)(nil)

// DefaultListenerBuffer is the channel capacity of each listener.
const DefaultListenerBuffer = 16

// Broadcaster fans change messages out to registered listeners.
// A listener whose context is done is dropped and its channel closed.
// A listener whose buffer is full misses that message but stays
// registered: it still has an undelivered change waiting.
type Broadcaster struct {
	mu        sync.Mutex
	listeners map[string]*listener
	buffer    int
	clock     driven.Clock
}

type listener struct {
	ch  chan domain.ChangeMessage
	ctx context.Context
}

// NewBroadcaster creates a broadcaster. A nil clock uses the wall clock.
func NewBroadcaster(clock driven.Clock) *Broadcaster {
	if clock == nil {
		clock = SystemClock
	}
	return &Broadcaster{
		listeners: make(map[string]*listener),
		buffer:    DefaultListenerBuffer,
		clock:     clock,
	}
}

// Register adds a listener and returns its id and receive channel.
func (b *Broadcaster) Register(ctx context.Context) (string, <-chan domain.ChangeMessage) {
	id := uuid.NewString()
	l := &listener{
		ch:  make(chan domain.ChangeMessage, b.buffer),
		ctx: ctx,
	}

	b.mu.Lock()
	b.listeners[id] = l
	b.mu.Unlock()

	if done := ctx.Done(); done != nil {
		go func() {
			<-done
			b.Unregister(id)
		}()
	}

	logger.Debug("listener %s registered", id)
	return id, l.ch
}

// Unregister removes a listener and closes its channel. Unknown ids are
// ignored.
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drop(id)
}

// Subscribe is Register under the ChangeFeed name.
func (b *Broadcaster) Subscribe(ctx context.Context) (string, <-chan domain.ChangeMessage) {
	return b.Register(ctx)
}

// Unsubscribe is Unregister under the ChangeFeed name.
func (b *Broadcaster) Unsubscribe(id string) {
	b.Unregister(id)
}

// Broadcast delivers msg to every listener without blocking and returns
// the number of listeners that received it.
func (b *Broadcaster) Broadcast(msg domain.ChangeMessage) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for id, l := range b.listeners {
		if l.ctx.Err() != nil {
			b.drop(id)
			continue
		}
		select {
		case l.ch <- msg:
			delivered++
		default:
			logger.Debug("listener %s is not keeping up, skipping %s", id, msg.Kind)
		}
	}
	return delivered
}

// NotifyChanged broadcasts a file change stamped with the current time.
func (b *Broadcaster) NotifyChanged() {
	b.Broadcast(domain.FileChanged(b.clock.Now().Unix()))
}

// Len returns the number of registered listeners.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// RunKeepAlive broadcasts a keep-alive every interval until ctx is done.
func (b *Broadcaster) RunKeepAlive(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = domain.DefaultKeepAliveInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Broadcast(domain.KeepAlive())
		}
	}
}

// drop removes and closes a listener (caller must hold lock).
func (b *Broadcaster) drop(id string) {
	l, ok := b.listeners[id]
	if !ok {
		return
	}
	delete(b.listeners, id)
	close(l.ch)
}
