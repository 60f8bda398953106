package pricingrepo

import (
	"context"
	"time"

	"freight/internal/core/domain/model/catalog"

	"gorm.io/gorm"
)

// GormPricingRepository implements ports.PricingRepository using GORM.
type GormPricingRepository struct {
	db *gorm.DB
}

func NewGormPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// ActiveRows returns active rows whose date window contains asOf. Rows with
// bad dimensions or no price are still returned; the catalog records why it
// drops them.
func (r *GormPricingRepository) ActiveRows(ctx context.Context, asOf time.Time) ([]catalog.PricingRow, error) {
	day := asOf.Format(time.DateOnly)

	var dtos []PricingRowDTO
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("effective_from IS NULL OR effective_from <= ?", day).
		Where("effective_to IS NULL OR effective_to >= ?", day).
		Order("carrier_code, container_code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	rows := make([]catalog.PricingRow, 0, len(dtos))
	for _, dto := range dtos {
		rows = append(rows, DtoToDomain(dto))
	}
	return rows, nil
}
