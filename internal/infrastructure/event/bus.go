package event

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/salesquota/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// queuedEvent carries an event through the async dispatch queue
type queuedEvent struct {
	ctx   context.Context
	event shared.DomainEvent
}

// InMemoryEventBus implements EventBus with in-memory pub/sub. By default
// events are dispatched synchronously on the publisher's goroutine; the
// async variant dispatches from a background worker with a bounded queue.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	async    bool
	queue    chan queuedEvent
	running  atomic.Bool
	wg       sync.WaitGroup

	// mu orders queue sends against the close in Stop
	mu sync.RWMutex
}

// NewInMemoryEventBus creates a new synchronous in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// NewAsyncEventBus creates an in-memory event bus that dispatches events
// from a background worker. bufferSize bounds the dispatch queue; when the
// queue is full events fall back to synchronous dispatch.
func NewAsyncEventBus(logger *zap.Logger, bufferSize int) *InMemoryEventBus {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
		async:    true,
		queue:    make(chan queuedEvent, bufferSize),
	}
}

// Publish publishes events to all registered handlers
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		if b.async && b.tryEnqueue(ctx, event) {
			continue
		}
		b.dispatch(ctx, event)
	}
	return nil
}

// tryEnqueue hands an event to the dispatch worker. It returns false when
// the bus is stopped or the queue is full, leaving the caller to dispatch
// synchronously. The read lock keeps the send ordered before the close in
// Stop.
func (b *InMemoryEventBus) tryEnqueue(ctx context.Context, event shared.DomainEvent) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.running.Load() {
		return false
	}
	// Queued events outlive the originating request
	qe := queuedEvent{ctx: context.WithoutCancel(ctx), event: event}
	select {
	case b.queue <- qe:
		return true
	default:
		b.logger.Warn("event queue full, dispatching synchronously",
			zap.String("event_type", event.EventType()),
		)
		return false
	}
}

// dispatch delivers a single event to all handlers registered for it
func (b *InMemoryEventBus) dispatch(ctx context.Context, event shared.DomainEvent) {
	handlers := b.registry.GetHandlers(event.EventType())

	for _, handler := range handlers {
		if err := b.dispatchToHandler(ctx, handler, event); err != nil {
			// Log error but continue with other handlers
			b.logger.Error("handler failed to process event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// Start starts the event bus and, in async mode, its dispatch worker
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	if b.running.Swap(true) {
		return nil
	}
	if b.async {
		b.wg.Add(1)
		go b.worker()
	}
	b.logger.Info("event bus started", zap.Bool("async", b.async))
	return nil
}

// Stop stops the event bus gracefully, draining the queue in async mode
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	if !b.running.Swap(false) {
		return nil
	}
	if b.async {
		// Taking the write lock waits out publishers that saw the bus
		// running before the swap above
		b.mu.Lock()
		close(b.queue)
		b.mu.Unlock()
	}
	b.wg.Wait()
	b.logger.Info("event bus stopped")
	return nil
}

// worker drains the dispatch queue until the bus is stopped
func (b *InMemoryEventBus) worker() {
	defer b.wg.Done()
	for qe := range b.queue {
		b.dispatch(qe.ctx, qe.event)
	}
}

// dispatchToHandler safely dispatches an event to a handler
func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
