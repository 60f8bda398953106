// Package pgtest starts a disposable PostgreSQL for integration tests and
// seeds the tables the adapters read.
package pgtest

import (
	"context"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/historyrepo"
	"freight/internal/adapters/out/postgres/productrepo"
	"freight/internal/adapters/out/postgres/transferrepo"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every migrated table, for TRUNCATE between tests.
const Tables = "transfers, transfer_items, vend_products, product_classification_unified, " +
	"category_weights, product_types, product_dimensions, product_category_dimensions, " +
	"transfer_parcels, transfer_parcel_items, pricing_matrix"

// Start runs postgres:15-alpine, connects GORM and migrates every adapter table.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return container, nil, err
	}

	if err = db.AutoMigrate(postgres_adapter.Migrations()...); err != nil {
		return container, nil, err
	}
	return container, db, nil
}

// Truncate empties every adapter table.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE " + Tables).Error
}

// Seeder writes fixture rows.
type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Product inserts a product with an optional curated weight.
func (s *Seeder) Product(id, name string, curated *float64) error {
	return s.db.Create(&productrepo.VendProductDTO{
		ID:             id,
		Name:           name,
		SKU:            "SKU-" + id,
		AvgWeightGrams: curated,
	}).Error
}

// Classify places a product in a category and product type.
func (s *Seeder) Classify(productID, categoryID, categoryCode, typeCode string) error {
	return s.db.Create(&productrepo.ProductClassificationDTO{
		ProductID:       productID,
		CategoryID:      categoryID,
		CategoryCode:    categoryCode,
		ProductTypeCode: typeCode,
	}).Error
}

// Dimensions records product edges in millimetres.
func (s *Seeder) Dimensions(productID string, length, width, height float64) error {
	return s.db.Create(&productrepo.ProductDimensionDTO{
		ProductID: productID,
		LengthMM:  &length,
		WidthMM:   &width,
		HeightMM:  &height,
	}).Error
}

// Transfer inserts a transfer header created at the given time.
func (s *Seeder) Transfer(from, to string, createdAt time.Time) (uuid.UUID, error) {
	dto := transferrepo.TransferDTO{
		ID:         uuid.New(),
		OutletFrom: from,
		OutletTo:   to,
		CreatedAt:  createdAt,
	}
	return dto.ID, s.db.Create(&dto).Error
}

// Item inserts a transfer line.
func (s *Seeder) Item(transferID uuid.UUID, productID string, requested, sent int) (uuid.UUID, error) {
	dto := transferrepo.TransferItemDTO{
		ID:           uuid.New(),
		TransferID:   transferID,
		ProductID:    productID,
		QtyRequested: requested,
		QtySentTotal: sent,
	}
	return dto.ID, s.db.Create(&dto).Error
}

// Parcel inserts a weighed parcel and its contents, keyed by transfer item.
func (s *Seeder) Parcel(transferID uuid.UUID, grams float64, contents map[uuid.UUID]int) error {
	parcel := historyrepo.ParcelDTO{
		ID:          uuid.New(),
		TransferID:  transferID,
		WeightGrams: &grams,
	}
	if err := s.db.Create(&parcel).Error; err != nil {
		return err
	}
	for itemID, qty := range contents {
		if err := s.db.Create(&historyrepo.ParcelItemDTO{
			ID:       uuid.New(),
			ParcelID: parcel.ID,
			ItemID:   itemID,
			Qty:      qty,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
