package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/catalog"
)

// PricingRepository reads the carrier pricing matrix.
type PricingRepository interface {
	// ActiveRows returns the rows effective on asOf. Validation and
	// de-duplication are left to catalog.New.
	ActiveRows(ctx context.Context, asOf time.Time) ([]catalog.PricingRow, error)
}
