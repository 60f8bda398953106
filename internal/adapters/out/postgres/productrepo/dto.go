// Package productrepo reads product classification, curated weights and
// dimensions from PostgreSQL.
package productrepo

import (
	"database/sql"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/weight"
)

// VendProductDTO maps vend_products. AvgWeightGrams is the curated weight;
// legacy rows store kilograms below one.
type VendProductDTO struct {
	ID             string `gorm:"primaryKey"`
	Name           string
	SKU            string
	AvgWeightGrams *float64 `gorm:"type:numeric(10,3)"`
}

func (VendProductDTO) TableName() string {
	return "vend_products"
}

// ProductClassificationDTO maps product_classification_unified.
type ProductClassificationDTO struct {
	ProductID       string `gorm:"primaryKey"`
	CategoryID      string `gorm:"index"`
	CategoryCode    string
	ProductTypeCode string
}

func (ProductClassificationDTO) TableName() string {
	return "product_classification_unified"
}

// CategoryWeightDTO maps category_weights.
type CategoryWeightDTO struct {
	CategoryID     string   `gorm:"primaryKey"`
	AvgWeightGrams *float64 `gorm:"type:numeric(10,3)"`
}

func (CategoryWeightDTO) TableName() string {
	return "category_weights"
}

// ProductTypeDTO maps product_types.
type ProductTypeDTO struct {
	Code           string   `gorm:"primaryKey"`
	AvgWeightGrams *float64 `gorm:"type:numeric(10,3)"`
}

func (ProductTypeDTO) TableName() string {
	return "product_types"
}

// ProductDimensionDTO maps product_dimensions.
type ProductDimensionDTO struct {
	ProductID string   `gorm:"primaryKey"`
	LengthMM  *float64 `gorm:"type:numeric(10,2)"`
	WidthMM   *float64 `gorm:"type:numeric(10,2)"`
	HeightMM  *float64 `gorm:"type:numeric(10,2)"`
	VolumeCm3 *float64 `gorm:"type:numeric(12,2)"`
}

func (ProductDimensionDTO) TableName() string {
	return "product_dimensions"
}

// CategoryDimensionDTO maps product_category_dimensions.
type CategoryDimensionDTO struct {
	CategoryID      string   `gorm:"primaryKey"`
	TypicalLengthMM *float64 `gorm:"type:numeric(10,2)"`
	TypicalWidthMM  *float64 `gorm:"type:numeric(10,2)"`
	TypicalHeightMM *float64 `gorm:"type:numeric(10,2)"`
}

func (CategoryDimensionDTO) TableName() string {
	return "product_category_dimensions"
}

// Migrations lists the DTOs owned by this package, in creation order.
func Migrations() []any {
	return []any{
		&VendProductDTO{},
		&ProductClassificationDTO{},
		&CategoryWeightDTO{},
		&ProductTypeDTO{},
		&ProductDimensionDTO{},
		&CategoryDimensionDTO{},
	}
}

// gramsOf normalizes a nullable stored weight. Unknown or non-positive
// values become nil.
func gramsOf(v sql.NullFloat64) *int {
	if !v.Valid {
		return nil
	}
	grams, ok := weight.NormalizeGrams(v.Float64)
	if !ok {
		return nil
	}
	return &grams
}

func productIDStrings(ids []kernel.ProductID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func categoryIDStrings(ids []kernel.CategoryID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
