package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight/internal/adapters/out/postgres/historyrepo"
	"freight/internal/adapters/out/postgres/pricingrepo"
	"freight/internal/adapters/out/postgres/productrepo"
	"freight/internal/adapters/out/postgres/transferrepo"
	"freight/internal/core/domain/model/catalog"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transfer"
	"freight/internal/core/domain/model/weight"
)

// isolated runs one read under its own savepoint when a transaction is open.
// PostgreSQL aborts the whole transaction on a failed statement; rolling back
// to the savepoint keeps the snapshot usable for the reads that follow.
func isolated[T any](ctx context.Context, uow *GormUnitOfWork, read func() (T, error)) (T, error) {
	if uow.tx == nil {
		return read()
	}

	uow.savepoint++
	name := fmt.Sprintf("freight_read_%d", uow.savepoint)
	sp := uow.tx.WithContext(ctx)

	if err := sp.SavePoint(name).Error; err != nil {
		var zero T
		return zero, fmt.Errorf("savepoint %s: %w", name, err)
	}

	result, err := read()
	if err != nil {
		if rbErr := uow.tx.WithContext(ctx).RollbackTo(name).Error; rbErr != nil {
			return result, errors.Join(err, fmt.Errorf("rollback to savepoint %s: %w", name, rbErr))
		}
		return result, err
	}

	if err = uow.tx.WithContext(ctx).Exec("RELEASE SAVEPOINT " + name).Error; err != nil {
		return result, fmt.Errorf("release savepoint %s: %w", name, err)
	}
	return result, nil
}

type isolatedTransferRepository struct {
	uow  *GormUnitOfWork
	repo *transferrepo.GormTransferRepository
}

func (r isolatedTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error) {
	return isolated(ctx, r.uow, func() (*transfer.Transfer, error) {
		return r.repo.Get(ctx, id)
	})
}

type isolatedProductRepository struct {
	uow  *GormUnitOfWork
	repo *productrepo.GormProductRepository
}

func (r isolatedProductRepository) Meta(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID]weight.ProductMeta, error) {
	return isolated(ctx, r.uow, func() (map[kernel.ProductID]weight.ProductMeta, error) {
		return r.repo.Meta(ctx, ids)
	})
}

func (r isolatedProductRepository) CuratedWeights(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID]float64, error) {
	return isolated(ctx, r.uow, func() (map[kernel.ProductID]float64, error) {
		return r.repo.CuratedWeights(ctx, ids)
	})
}

func (r isolatedProductRepository) ProductDimensions(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID]kernel.Dimensions, error) {
	return isolated(ctx, r.uow, func() (map[kernel.ProductID]kernel.Dimensions, error) {
		return r.repo.ProductDimensions(ctx, ids)
	})
}

func (r isolatedProductRepository) CategoryDimensions(
	ctx context.Context,
	ids []kernel.CategoryID,
) (map[kernel.CategoryID]kernel.Dimensions, error) {
	return isolated(ctx, r.uow, func() (map[kernel.CategoryID]kernel.Dimensions, error) {
		return r.repo.CategoryDimensions(ctx, ids)
	})
}

func (r isolatedProductRepository) ListUncuratedShipped(
	ctx context.Context,
	since time.Time,
	limit int,
) ([]kernel.ProductID, error) {
	return isolated(ctx, r.uow, func() ([]kernel.ProductID, error) {
		return r.repo.ListUncuratedShipped(ctx, since, limit)
	})
}

type isolatedHistoryRepository struct {
	uow  *GormUnitOfWork
	repo *historyrepo.GormShipmentHistoryRepository
}

func (r isolatedHistoryRepository) ProductObservations(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID][]weight.ParcelObservation, error) {
	return isolated(ctx, r.uow, func() (map[kernel.ProductID][]weight.ParcelObservation, error) {
		return r.repo.ProductObservations(ctx, ids)
	})
}

func (r isolatedHistoryRepository) CategoryObservations(
	ctx context.Context,
	ids []kernel.CategoryID,
) (map[kernel.CategoryID][]weight.ParcelObservation, error) {
	return isolated(ctx, r.uow, func() (map[kernel.CategoryID][]weight.ParcelObservation, error) {
		return r.repo.CategoryObservations(ctx, ids)
	})
}

type isolatedPricingRepository struct {
	uow  *GormUnitOfWork
	repo *pricingrepo.GormPricingRepository
}

func (r isolatedPricingRepository) ActiveRows(ctx context.Context, asOf time.Time) ([]catalog.PricingRow, error) {
	return isolated(ctx, r.uow, func() ([]catalog.PricingRow, error) {
		return r.repo.ActiveRows(ctx, asOf)
	})
}
