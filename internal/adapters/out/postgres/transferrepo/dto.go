// Package transferrepo reads transfers and their packable lines from PostgreSQL.
package transferrepo

import (
	"time"

	"github.com/google/uuid"
)

// TransferDTO maps the transfers table.
type TransferDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OutletFrom string
	OutletTo   string
	CreatedAt  time.Time `gorm:"index"`
}

func (TransferDTO) TableName() string {
	return "transfers"
}

// TransferItemDTO maps transfer_items. Soft-deleted rows carry DeletedAt.
type TransferItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransferID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID    string    `gorm:"index"`
	QtyRequested int
	QtySentTotal int
	DeletedAt    *time.Time
}

func (TransferItemDTO) TableName() string {
	return "transfer_items"
}

// Migrations lists the DTOs owned by this package.
func Migrations() []any {
	return []any{&TransferDTO{}, &TransferItemDTO{}}
}

// lineRow is one transfer item joined with its product data.
type lineRow struct {
	ProductID    string
	ProductName  string
	SKU          string
	CategoryCode string
	QtyRequested int
	QtySentTotal int
	LengthMM     float64
	WidthMM      float64
	HeightMM     float64
	VolumeCm3    float64
}

// quantity prefers the sent quantity once something has been sent.
func (r lineRow) quantity() int {
	if r.QtySentTotal != 0 {
		return r.QtySentTotal
	}
	return r.QtyRequested
}
