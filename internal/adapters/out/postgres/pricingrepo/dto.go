// Package pricingrepo reads carrier container pricing from PostgreSQL.
package pricingrepo

import (
	"time"

	"freight/internal/core/domain/model/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingRowDTO maps pricing_matrix. One row prices one container of one
// carrier for a date window; open bounds are NULL.
type PricingRowDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierCode    string    `gorm:"index"`
	ContainerCode  string    `gorm:"index"`
	ContainerName  string
	LengthMM       int
	WidthMM        int
	HeightMM       int
	MaxWeightGrams int
	Price          decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Currency       string
	Active         bool
	EffectiveFrom  *time.Time `gorm:"type:date"`
	EffectiveTo    *time.Time `gorm:"type:date"`
}

func (PricingRowDTO) TableName() string {
	return "pricing_matrix"
}

// Migrations lists the DTOs owned by this package.
func Migrations() []any {
	return []any{&PricingRowDTO{}}
}

// DomainToDTO is used by seeding tools and tests.
func DomainToDTO(row catalog.PricingRow) PricingRowDTO {
	dto := PricingRowDTO{
		ID:             uuid.New(),
		CarrierCode:    row.CarrierCode,
		ContainerCode:  row.ContainerCode,
		ContainerName:  row.ContainerName,
		LengthMM:       row.LengthMM,
		WidthMM:        row.WidthMM,
		HeightMM:       row.HeightMM,
		MaxWeightGrams: row.MaxWeightGrams,
		Currency:       row.Currency,
		Active:         true,
		EffectiveFrom:  row.EffectiveFrom,
		EffectiveTo:    row.EffectiveTo,
	}
	if row.Price != nil {
		dto.Price = decimal.NewNullDecimal(*row.Price)
	}
	return dto
}

func DtoToDomain(dto PricingRowDTO) catalog.PricingRow {
	row := catalog.PricingRow{
		CarrierCode:    dto.CarrierCode,
		ContainerCode:  dto.ContainerCode,
		ContainerName:  dto.ContainerName,
		LengthMM:       dto.LengthMM,
		WidthMM:        dto.WidthMM,
		HeightMM:       dto.HeightMM,
		MaxWeightGrams: dto.MaxWeightGrams,
		Currency:       dto.Currency,
		EffectiveFrom:  dto.EffectiveFrom,
		EffectiveTo:    dto.EffectiveTo,
	}
	if dto.Price.Valid {
		price := dto.Price.Decimal
		row.Price = &price
	}
	return row
}
