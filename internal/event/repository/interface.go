package repository

import (
	"context"

	"repo-event-relay/internal/model"
)

// Repository is the bounded, most-recent-N log of normalized events.
type Repository interface {
	// Append persists event before returning and trims the oldest entries past capacity.
	Append(ctx context.Context, event model.Event) error

	// List returns every stored event, oldest first.
	List(ctx context.Context) ([]model.Event, error)
}
