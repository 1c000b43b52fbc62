package messaging

import (
	"context"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

// Publisher defines the interface for publishing marketplace events to a
// message broker.
type Publisher interface {
	// PublishEvent publishes a marketplace event
	PublishEvent(ctx context.Context, event *domain.Event) error
	// Close closes the connection
	Close()
}

// NoopPublisher discards events. Used in tests and when no broker is
// configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(_ context.Context, _ *domain.Event) error { return nil }

func (NoopPublisher) Close() {}
