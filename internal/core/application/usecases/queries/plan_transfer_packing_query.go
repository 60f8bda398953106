package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/catalog"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/packing"
	"freight/internal/core/domain/model/weight"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrPlanTransferPackingQueryIsNotConstructed = errors.New(
	"PlanTransferPackingQuery must be created via NewPlanTransferPackingQuery constructor",
)

// PlanTransferPackingQuery computes the packing plan of one transfer: weights,
// tentative boxes and the cost-optimized boxes.
//
// Example:
//
//	query, err := NewPlanTransferPackingQuery(transferID, packing.DefaultOptions(), time.Now())
//	if err != nil {
//	    return err
//	}
//	plan, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown transfer
//	}
type PlanTransferPackingQuery struct {
	transferID kernel.UUID
	options    packing.Options
	asOf       time.Time

	guard guard.ConstructorGuard
}

// NewPlanTransferPackingQuery validates the transfer id, the options and the
// pricing date, reporting every problem at once.
func NewPlanTransferPackingQuery(
	transferID kernel.UUID,
	options packing.Options,
	asOf time.Time,
) (PlanTransferPackingQuery, error) {
	q := PlanTransferPackingQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setTransferID(transferID),
		q.setOptions(options),
		q.setAsOf(asOf),
	); err != nil {
		return PlanTransferPackingQuery{}, err
	}
	return q, nil
}

func (q PlanTransferPackingQuery) Validate() error {
	return q.guard.Validate(ErrPlanTransferPackingQueryIsNotConstructed)
}

func (q PlanTransferPackingQuery) TransferID() kernel.UUID {
	return q.transferID
}

func (q PlanTransferPackingQuery) Options() packing.Options {
	return q.options
}

// AsOf is the date pricing rows must be effective on.
func (q PlanTransferPackingQuery) AsOf() time.Time {
	return q.asOf
}

func (q *PlanTransferPackingQuery) setTransferID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("transfer id", err)
	}
	q.transferID = id
	return nil
}

func (q *PlanTransferPackingQuery) setOptions(options packing.Options) error {
	if err := options.Validate(); err != nil {
		return err
	}
	q.options = options
	return nil
}

func (q *PlanTransferPackingQuery) setAsOf(asOf time.Time) error {
	if asOf.IsZero() {
		return errs.NewValueIsRequiredError("pricing date")
	}
	q.asOf = asOf
	return nil
}

// PlanTransferPackingQueryResponse is the full packing plan of a transfer.
type PlanTransferPackingQueryResponse struct {
	TransferID        kernel.UUID
	OutletFrom        string
	OutletTo          string
	Weights           weight.Report
	Allocation        packing.Allocation
	Optimization      packing.Optimization
	CatalogSize       int
	CatalogRejections []catalog.Rejection
}
