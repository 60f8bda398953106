// Package ports defines the read contracts between the packing core and its
// storage adapters. Every method is read only; the core never writes.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transfer"
)

// TransferRepository loads transfers with their packable lines.
type TransferRepository interface {
	// Get returns the transfer and its live lines. Each line carries the
	// product name, sku, category code and recorded dimensions; its quantity
	// is the sent quantity when non-zero, else the requested one.
	//
	// Returns *errs.ObjectNotFoundError when no transfer has this id.
	Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error)
}
