package eventbus

import (
	"context"
	"sync"

	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/platform/metrics"
)

// Bus manages subscriptions and event dispatching.
type Bus struct {
	subscriptions map[Topic][]Handler
	mu            sync.RWMutex // Protects the subscriptions map
	wg            sync.WaitGroup
	logger        logger.Logger
}

// NewBus creates a new event bus.
func NewBus(logger logger.Logger) *Bus {
	return &Bus{
		subscriptions: make(map[Topic][]Handler),
		logger:        logger,
	}
}

// Subscribe adds a handler for a specific topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[topic] = append(b.subscriptions[topic], handler)
}

// Publish sends an event to all subscribers of a topic (Fire-and-Forget).
// Handlers run detached from the caller's cancellation so a finished request
// does not abort them.
func (b *Bus) Publish(ctx context.Context, event Event) {
	metrics.EventsPublishedTotal.WithLabelValues(string(event.Topic)).Inc()

	b.mu.RLock()
	handlers := b.subscriptions[event.Topic]
	b.mu.RUnlock()

	hctx := context.WithoutCancel(ctx)
	for _, handler := range handlers {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			if err := h(hctx, event); err != nil {
				metrics.EventHandlerFailuresTotal.WithLabelValues(string(event.Topic)).Inc()
				b.logger.Error(hctx, "event handler failed", "topic", event.Topic, "error", err)
			}
		}(handler)
	}
}

// Wait blocks until every handler started by Publish has returned.
func (b *Bus) Wait() {
	b.wg.Wait()
}
