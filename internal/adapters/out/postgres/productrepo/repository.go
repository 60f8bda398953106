package productrepo

import (
	"context"
	"database/sql"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/weight"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository using GORM.
// Id lists are bound as PostgreSQL arrays.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Meta(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID]weight.ProductMeta, error) {
	out := make(map[kernel.ProductID]weight.ProductMeta, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			pcu.product_id,
			COALESCE(pcu.category_id, ''),
			COALESCE(pcu.category_code, ''),
			COALESCE(pcu.product_type_code, ''),
			cw.avg_weight_grams,
			pt.avg_weight_grams
		FROM product_classification_unified pcu
		LEFT JOIN category_weights cw ON cw.category_id = pcu.category_id
		LEFT JOIN product_types pt ON pt.code = pcu.product_type_code
		WHERE pcu.product_id = ANY(?)
	`, pq.Array(productIDStrings(ids))).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID, categoryID string
			meta                  weight.ProductMeta
			categoryAvg, typeAvg  sql.NullFloat64
		)
		if err = rows.Scan(
			&productID,
			&categoryID,
			&meta.CategoryCode,
			&meta.ProductTypeCode,
			&categoryAvg,
			&typeAvg,
		); err != nil {
			return nil, err
		}
		meta.CategoryID = kernel.CategoryID(categoryID)
		meta.CategoryAvgGrams = gramsOf(categoryAvg)
		meta.TypeAvgGrams = gramsOf(typeAvg)
		out[kernel.ProductID(productID)] = meta
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormProductRepository) CuratedWeights(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID]float64, error) {
	out := make(map[kernel.ProductID]float64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT id, avg_weight_grams
		FROM vend_products
		WHERE id = ANY(?)
			AND avg_weight_grams > 0
	`, pq.Array(productIDStrings(ids))).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			grams float64
		)
		if err = rows.Scan(&id, &grams); err != nil {
			return nil, err
		}
		out[kernel.ProductID(id)] = grams
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormProductRepository) ProductDimensions(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID]kernel.Dimensions, error) {
	out := make(map[kernel.ProductID]kernel.Dimensions, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			COALESCE(length_mm, 0),
			COALESCE(width_mm, 0),
			COALESCE(height_mm, 0),
			COALESCE(volume_cm3, 0)
		FROM product_dimensions
		WHERE product_id = ANY(?)
	`, pq.Array(productIDStrings(ids))).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   string
			dims kernel.Dimensions
		)
		if err = rows.Scan(&id, &dims.LengthMM, &dims.WidthMM, &dims.HeightMM, &dims.VolumeCm3); err != nil {
			return nil, err
		}
		if dims.IsKnown() {
			out[kernel.ProductID(id)] = dims
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormProductRepository) CategoryDimensions(
	ctx context.Context,
	ids []kernel.CategoryID,
) (map[kernel.CategoryID]kernel.Dimensions, error) {
	out := make(map[kernel.CategoryID]kernel.Dimensions, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			category_id,
			COALESCE(typical_length_mm, 0),
			COALESCE(typical_width_mm, 0),
			COALESCE(typical_height_mm, 0)
		FROM product_category_dimensions
		WHERE category_id = ANY(?)
	`, pq.Array(categoryIDStrings(ids))).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   string
			dims kernel.Dimensions
		)
		if err = rows.Scan(&id, &dims.LengthMM, &dims.WidthMM, &dims.HeightMM); err != nil {
			return nil, err
		}
		if dims.HasEdges() {
			out[kernel.CategoryID(id)] = dims
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormProductRepository) ListUncuratedShipped(
	ctx context.Context,
	since time.Time,
	limit int,
) ([]kernel.ProductID, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ti.product_id
		FROM transfer_items ti
		INNER JOIN transfers t ON t.id = ti.transfer_id
		LEFT JOIN vend_products vp ON vp.id = ti.product_id
		WHERE t.created_at >= ?
			AND ti.deleted_at IS NULL
			AND (vp.avg_weight_grams IS NULL OR vp.avg_weight_grams <= 0)
		ORDER BY ti.product_id
		LIMIT ?
	`, since, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.ProductID, 0)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, kernel.ProductID(id))
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
