// Package postgres provides the GORM-based Unit of Work used by planning runs.
// A unit of work wraps one read-only, repeatable-read transaction so that a
// transfer, its product facts, its shipment history and the pricing matrix are
// all read from the same snapshot.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	t, err := uow.TransferRepository().Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	rows, err := uow.PricingRepository().ActiveRows(ctx, asOf)
//	if err != nil {
//	    // the snapshot is still usable
//	}
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns its own transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Inside a transaction every repository call runs under its own savepoint,
//     so a failed read is rolled back alone and later reads still succeed
package postgres

import (
	"context"
	"database/sql"

	"freight/internal/adapters/out/postgres/historyrepo"
	"freight/internal/adapters/out/postgres/pricingrepo"
	"freight/internal/adapters/out/postgres/productrepo"
	"freight/internal/adapters/out/postgres/transferrepo"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// snapshotOptions opens a transaction that sees one consistent snapshot and
// refuses writes.
var snapshotOptions = &sql.TxOptions{
	Isolation: sql.LevelRepeatableRead,
	ReadOnly:  true,
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Every planning run gets a fresh instance.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no transaction open yet.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one snapshot transaction. Repositories obtained
// before Begin read through the plain connection; repositories obtained after
// Begin read inside the transaction.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	savepoint int
}

// Begin opens the snapshot transaction. Calling Begin again while a
// transaction is open does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin(snapshotOptions)
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit ends the transaction. Returns gorm.ErrInvalidTransaction if no
// transaction is open. Read paths end the snapshot with Rollback instead.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback ends the transaction without committing. It is a no-op when no
// transaction is open, so it can be deferred right after Begin.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) TransferRepository() ports.TransferRepository {
	return isolatedTransferRepository{
		uow:  uow,
		repo: transferrepo.NewGormTransferRepository(uow.conn()),
	}
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return isolatedProductRepository{
		uow:  uow,
		repo: productrepo.NewGormProductRepository(uow.conn()),
	}
}

func (uow *GormUnitOfWork) ShipmentHistoryRepository() ports.ShipmentHistoryRepository {
	return isolatedHistoryRepository{
		uow:  uow,
		repo: historyrepo.NewGormShipmentHistoryRepository(uow.conn()),
	}
}

func (uow *GormUnitOfWork) PricingRepository() ports.PricingRepository {
	return isolatedPricingRepository{
		uow:  uow,
		repo: pricingrepo.NewGormPricingRepository(uow.conn()),
	}
}

// Migrations lists every DTO the adapters read, in creation order.
func Migrations() []any {
	models := transferrepo.Migrations()
	models = append(models, productrepo.Migrations()...)
	models = append(models, historyrepo.Migrations()...)
	models = append(models, pricingrepo.Migrations()...)
	return models
}
