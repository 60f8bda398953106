package transferrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/packing"
	"freight/internal/core/domain/model/transfer"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTransferRepository implements ports.TransferRepository using GORM.
type GormTransferRepository struct {
	db *gorm.DB
}

func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// Get loads the transfer header, then its live lines joined with product
// names, classification and dimensions.
func (r *GormTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transfer", id.String())
		}
		return nil, err
	}

	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}

	return transfer.NewTransfer(id, dto.OutletFrom, dto.OutletTo, lines)
}

func (r *GormTransferRepository) lines(ctx context.Context, id kernel.UUID) ([]packing.Line, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			ti.product_id,
			COALESCE(vp.name, ''),
			COALESCE(vp.sku, ''),
			COALESCE(pcu.category_code, ''),
			COALESCE(ti.qty_requested, 0),
			COALESCE(ti.qty_sent_total, 0),
			COALESCE(pd.length_mm, 0),
			COALESCE(pd.width_mm, 0),
			COALESCE(pd.height_mm, 0),
			COALESCE(pd.volume_cm3, 0)
		FROM transfer_items ti
		LEFT JOIN vend_products vp ON vp.id = ti.product_id
		LEFT JOIN product_classification_unified pcu ON pcu.product_id = ti.product_id
		LEFT JOIN product_dimensions pd ON pd.product_id = ti.product_id
		WHERE ti.transfer_id = ?
			AND ti.deleted_at IS NULL
		ORDER BY ti.product_id, ti.id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]packing.Line, 0)
	for rows.Next() {
		var row lineRow
		if err = rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.SKU,
			&row.CategoryCode,
			&row.QtyRequested,
			&row.QtySentTotal,
			&row.LengthMM,
			&row.WidthMM,
			&row.HeightMM,
			&row.VolumeCm3,
		); err != nil {
			return nil, err
		}

		lines = append(lines, packing.Line{
			ProductID:    kernel.ProductID(row.ProductID),
			ProductName:  row.ProductName,
			SKU:          row.SKU,
			CategoryCode: row.CategoryCode,
			Quantity:     row.quantity(),
			Dimensions: kernel.Dimensions{
				LengthMM:  row.LengthMM,
				WidthMM:   row.WidthMM,
				HeightMM:  row.HeightMM,
				VolumeCm3: row.VolumeCm3,
			},
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
