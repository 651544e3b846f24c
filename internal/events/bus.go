// Package events is the in-process notification fan-out. Services publish
// one event per observable fact (a transition, a message, a moderation
// verdict); delivery components subscribe. Publishing never blocks the
// transaction that produced the fact — a slow subscriber loses events
// rather than stalling the exchange engine.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

// Type identifies what happened.
type Type string

const (
	TypeExchangeProposed Type = "exchange.proposed"
	TypeExchangeChanged  Type = "exchange.status_changed"
	TypeMessageAppended  Type = "exchange.message_appended"
	TypeDisputeRaised    Type = "exchange.dispute_raised"
	TypeDisputeResolved  Type = "exchange.dispute_resolved"
	TypeReviewSubmitted  Type = "review.submitted"
	TypeReviewModerated  Type = "review.moderated"
)

// Event is one notification. Fields beyond Type and At are populated
// depending on the event type.
type Event struct {
	Type       Type
	At         time.Time
	ActorID    uuid.UUID
	ExchangeID uuid.UUID
	ReviewID   uuid.UUID
	From       domain.ExchangeStatus
	To         domain.ExchangeStatus
}

// Bus fans events out to subscribers over buffered channels.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan Event
	buffer int
	closed bool
	log    *slog.Logger
}

// NewBus creates a bus whose subscriber channels hold up to buffer events.
func NewBus(log *slog.Logger, buffer int) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bus{
		buffer: buffer,
		log:    log.With("component", "events"),
	}
}

// Subscribe registers a new subscriber and returns its channel. The
// channel is closed by Close.
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Publish delivers the event to every subscriber without blocking. When a
// subscriber's buffer is full the event is dropped for that subscriber and
// a warning is logged.
func (b *Bus) Publish(ctx context.Context, e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.log.WarnContext(ctx, "subscriber buffer full, dropping event",
				slog.String("type", string(e.Type)),
			)
		}
	}
}

// Close closes all subscriber channels. Publish after Close is a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
