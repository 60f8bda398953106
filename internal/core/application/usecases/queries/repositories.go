// Package queries contains the read use cases of the freight service. Each
// query is built through its constructor, validated, and handled inside one
// read-only unit of work.
package queries

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces narrow ports.UnitOfWork to what each handler reads.
type (
	// TxManager opens and releases the snapshot. Nothing is ever written, so a
	// snapshot always ends with Rollback.
	TxManager interface {
		Begin(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	TransferRepoFactory interface {
		TransferRepository() ports.TransferRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	HistoryRepoFactory interface {
		ShipmentHistoryRepository() ports.ShipmentHistoryRepository
	}

	PricingRepoFactory interface {
		PricingRepository() ports.PricingRepository
	}

	// WeightUoW reads everything the weight resolver consults.
	WeightUoW interface {
		TxManager
		ProductRepoFactory
		HistoryRepoFactory
	}

	WeightUoWFactory interface {
		Create() WeightUoW
	}

	// PlanningUoW reads a transfer, its weights and the pricing matrix in one
	// snapshot.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   t, err := uow.TransferRepository().Get(ctx, id)
	//   rows, err := uow.PricingRepository().ActiveRows(ctx, asOf)
	//   // ... resolve, allocate, optimize
	PlanningUoW interface {
		TxManager
		TransferRepoFactory
		ProductRepoFactory
		HistoryRepoFactory
		PricingRepoFactory
	}

	PlanningUoWFactory interface {
		Create() PlanningUoW
	}
)
