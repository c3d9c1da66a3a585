package publisher

import (
	"context"
	"time"
)

// EventType classifies a price event
type EventType string

const (
	// EventObservation is a successful price reading during a sweep
	EventObservation EventType = "observation"
	// EventDrop is a price strictly below the previously observed price
	EventDrop EventType = "drop"
	// EventAdded is a newly registered product with an observed price
	EventAdded EventType = "added"
	// EventRemoved is a product removed from tracking
	EventRemoved EventType = "removed"
)

// Event is the payload published to downstream consumers. Optional amounts
// are pointers so absent values stay out of the encoded document.
type Event struct {
	Type       EventType `json:"type"`
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name,omitempty"`
	URL        string    `json:"url,omitempty"`
	Price      *float64  `json:"price,omitempty"`
	OldPrice   *float64  `json:"old_price,omitempty"`
	DropAmount *float64  `json:"drop_amount,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher represents a service for publishing price events
type Publisher interface {
	// Publish publishes one event
	Publish(ctx context.Context, event Event) error

	// Close closes the publisher connection
	Close() error
}

// NoopPublisher discards every event. Used when no Redis address is
// configured.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

// NewNoopPublisher creates a publisher that discards events
func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

// Publish discards the event
func (p *NoopPublisher) Publish(ctx context.Context, event Event) error { return nil }

// Close is a no-op
func (p *NoopPublisher) Close() error { return nil }
