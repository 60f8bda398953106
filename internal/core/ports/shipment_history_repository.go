package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/weight"
)

// ShipmentHistoryRepository reads weighed historical parcels. Each observation
// pairs a parcel's weight with the total quantity packed in it.
type ShipmentHistoryRepository interface {
	ProductObservations(ctx context.Context, ids []kernel.ProductID) (map[kernel.ProductID][]weight.ParcelObservation, error)
	CategoryObservations(ctx context.Context, ids []kernel.CategoryID) (map[kernel.CategoryID][]weight.ParcelObservation, error)
}
