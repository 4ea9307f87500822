// Package audit records forum activity events. Services emit events into a
// buffered channel; a worker drains it into a store (memory or Kafka) so the
// request path never blocks on the sink.
package audit

import (
	"context"
	"time"
)

// Store is the sink a worker drains events into.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher hands events to the worker's inbox. Emission is best-effort: if
// the inbox is full the event is dropped rather than stalling a request.
type Publisher struct {
	inbox chan<- Event
}

func NewPublisher(inbox chan<- Event) *Publisher {
	return &Publisher{inbox: inbox}
}

// Emit stamps and queues an event. Never blocks.
func (p *Publisher) Emit(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
	}
}
