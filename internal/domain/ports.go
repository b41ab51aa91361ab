package domain

import "context"

// CatalogSource yields the fixed destination dataset, in display order.
// It is read once at startup.
type CatalogSource interface {
	Load(ctx context.Context) ([]Destination, error)
}

// DestinationStore is the write side used by the seeder.
type DestinationStore interface {
	UpsertDestination(ctx context.Context, position int, d Destination) error
}
