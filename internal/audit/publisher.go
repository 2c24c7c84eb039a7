package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists audit events. Append-only; implementations must be safe for
// concurrent use.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It stamps identity and time so
// callers only describe what happened, and uses the store for persistence so
// tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return p.store.Append(ctx, event)
}
