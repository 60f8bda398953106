package historyrepo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/weight"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// parcelTotals sums the packed quantity of every weighed parcel.
const parcelTotals = `
	WITH parcel_qty AS (
		SELECT tpi.parcel_id, SUM(tpi.qty) AS total_qty
		FROM transfer_parcel_items tpi
		GROUP BY tpi.parcel_id
	)
`

// GormShipmentHistoryRepository implements ports.ShipmentHistoryRepository.
// Every parcel line yields one observation carrying the parcel weight and
// the parcel's total quantity.
type GormShipmentHistoryRepository struct {
	db *gorm.DB
}

func NewGormShipmentHistoryRepository(db *gorm.DB) *GormShipmentHistoryRepository {
	return &GormShipmentHistoryRepository{db: db}
}

func (r *GormShipmentHistoryRepository) ProductObservations(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID][]weight.ParcelObservation, error) {
	out := make(map[kernel.ProductID][]weight.ParcelObservation, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	rows, err := r.db.WithContext(ctx).Raw(parcelTotals+`
		SELECT ti.product_id, tp.weight_grams, pq.total_qty
		FROM transfer_parcel_items tpi
		INNER JOIN transfer_parcels tp ON tp.id = tpi.parcel_id
		INNER JOIN transfer_items ti ON ti.id = tpi.item_id
		INNER JOIN parcel_qty pq ON pq.parcel_id = tpi.parcel_id
		WHERE ti.product_id = ANY(?)
			AND tp.weight_grams > 0
			AND pq.total_qty > 0
	`, pq.Array(keys)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  string
			obs weight.ParcelObservation
		)
		if err = rows.Scan(&id, &obs.ParcelWeightGrams, &obs.ParcelQuantity); err != nil {
			return nil, err
		}
		pid := kernel.ProductID(id)
		out[pid] = append(out[pid], obs)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormShipmentHistoryRepository) CategoryObservations(
	ctx context.Context,
	ids []kernel.CategoryID,
) (map[kernel.CategoryID][]weight.ParcelObservation, error) {
	out := make(map[kernel.CategoryID][]weight.ParcelObservation, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	rows, err := r.db.WithContext(ctx).Raw(parcelTotals+`
		SELECT pcu.category_id, tp.weight_grams, pq.total_qty
		FROM transfer_parcel_items tpi
		INNER JOIN transfer_parcels tp ON tp.id = tpi.parcel_id
		INNER JOIN transfer_items ti ON ti.id = tpi.item_id
		INNER JOIN product_classification_unified pcu ON pcu.product_id = ti.product_id
		INNER JOIN parcel_qty pq ON pq.parcel_id = tpi.parcel_id
		WHERE pcu.category_id = ANY(?)
			AND tp.weight_grams > 0
			AND pq.total_qty > 0
	`, pq.Array(keys)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  string
			obs weight.ParcelObservation
		)
		if err = rows.Scan(&id, &obs.ParcelWeightGrams, &obs.ParcelQuantity); err != nil {
			return nil, err
		}
		cid := kernel.CategoryID(id)
		out[cid] = append(out[cid], obs)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
