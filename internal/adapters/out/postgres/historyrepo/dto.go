// Package historyrepo reads historical parcel weights from PostgreSQL.
package historyrepo

import (
	"github.com/google/uuid"
)

// ParcelDTO maps transfer_parcels. WeightGrams is the scale reading taken
// when the parcel was sealed.
type ParcelDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransferID  uuid.UUID `gorm:"type:uuid;index"`
	WeightGrams *float64  `gorm:"type:numeric(10,2)"`
}

func (ParcelDTO) TableName() string {
	return "transfer_parcels"
}

// ParcelItemDTO maps transfer_parcel_items.
type ParcelItemDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID uuid.UUID `gorm:"type:uuid;index"`
	ItemID   uuid.UUID `gorm:"type:uuid;index"`
	Qty      int
}

func (ParcelItemDTO) TableName() string {
	return "transfer_parcel_items"
}

// Migrations lists the DTOs owned by this package.
func Migrations() []any {
	return []any{&ParcelDTO{}, &ParcelItemDTO{}}
}
