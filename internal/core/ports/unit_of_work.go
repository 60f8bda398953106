package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per planning run.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one consistent read snapshot. Every repository it hands out
// reads through the same transaction once Begin has been called.
type UnitOfWork interface {
	// Begin opens a read-only repeatable-read transaction.
	Begin(ctx context.Context) error

	// Commit ends the transaction.
	Commit(ctx context.Context) error

	// Rollback ends the transaction; it is a no-op after Commit.
	Rollback(ctx context.Context) error

	TransferRepository() TransferRepository
	ProductRepository() ProductRepository
	ShipmentHistoryRepository() ShipmentHistoryRepository
	PricingRepository() PricingRepository
}
