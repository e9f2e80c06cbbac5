package event

import (
	"context"
	"sync"
	"time"

	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// HandlerFunc reacts to one event. A non-nil error triggers a retry; after
// the retry budget is spent the failure is logged and counted, never
// propagated back to the publisher.
type HandlerFunc func(ctx context.Context, e Event) error

type handler struct {
	name string
	fn   HandlerFunc
}

// Bus is an explicit in-process publish/subscribe registry. Subscriptions
// happen once during app wiring; Publish dispatches each event to every
// subscribed handler on its own goroutine, after the publishing transaction
// has committed. Semantics toward each handler are at-least-once.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]handler

	retries int
	backoff time.Duration
	timeout time.Duration

	wg sync.WaitGroup
}

func NewBus(retries int, backoff, timeout time.Duration) *Bus {
	if retries < 1 {
		retries = 1
	}
	return &Bus{
		handlers: make(map[Type][]handler),
		retries:  retries,
		backoff:  backoff,
		timeout:  timeout,
	}
}

// Subscribe registers a named handler for one event type. Not safe to call
// concurrently with Publish; all wiring happens at startup.
func (b *Bus) Subscribe(t Type, name string, fn HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], handler{name: name, fn: fn})
}

// Publish dispatches e asynchronously to every handler subscribed to its type.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	hs := b.handlers[e.EventType()]
	b.mu.RUnlock()

	for _, h := range hs {
		h := h
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.deliver(h, e)
		}()
	}
}

func (b *Bus) deliver(h handler, e Event) {
	var err error
	for attempt := 1; attempt <= b.retries; attempt++ {
		err = b.invoke(h, e)
		if err == nil {
			return
		}
		logger.Log.Warn("event handler failed",
			zap.String("event", string(e.EventType())),
			zap.String("handler", h.name),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < b.retries {
			time.Sleep(b.backoff * time.Duration(attempt))
		}
	}

	monitoring.EventHandlerFailures.WithLabelValues(string(e.EventType()), h.name).Inc()
	logger.Log.Error("event handler exhausted retries",
		zap.String("event", string(e.EventType())),
		zap.String("handler", h.name),
		zap.Error(err),
	)
}

func (b *Bus) invoke(h handler, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	return h.fn(ctx, e)
}

// Wait blocks until all in-flight deliveries finish. Used on shutdown and in
// tests.
func (b *Bus) Wait() {
	b.wg.Wait()
}

type panicError struct {
	value interface{}
}

func (p *panicError) Error() string {
	if e, ok := p.value.(error); ok {
		return "handler panic: " + e.Error()
	}
	return "handler panic"
}
