package queries

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/catalog"
	"freight/internal/core/domain/model/packing"
	"freight/internal/core/domain/model/weight"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/logging"

	"go.uber.org/zap"
)

// PlanTransferPackingQueryHandler runs the packing pipeline for one transfer:
//
//	transfer lines → WeightResolver → BoxAllocator → CarrierOptimizer
//
// All reads happen inside one read-only snapshot. Only a missing transfer or a
// failed transaction is an error; missing weight or pricing data degrades the
// plan instead.
type PlanTransferPackingQueryHandler struct {
	uowFactory PlanningUoWFactory
	resolver   services.WeightResolver
	allocator  services.BoxAllocator
	optimizer  services.CarrierOptimizer
	logger     *zap.Logger
}

func NewPlanTransferPackingQueryHandler(
	uowFactory PlanningUoWFactory,
	logger *zap.Logger,
) (PlanTransferPackingQueryHandler, error) {
	if uowFactory == nil {
		return PlanTransferPackingQueryHandler{}, errs.NewValueIsRequiredError("planning unit of work factory")
	}
	return PlanTransferPackingQueryHandler{
		uowFactory: uowFactory,
		resolver:   services.NewWeightResolver(),
		allocator:  services.NewBoxAllocator(),
		optimizer:  services.NewCarrierOptimizer(),
		logger:     logging.Component(logger, "plan_transfer_packing"),
	}, nil
}

// Handle returns *errs.ObjectNotFoundError when the transfer does not exist.
func (h PlanTransferPackingQueryHandler) Handle(
	ctx context.Context,
	query PlanTransferPackingQuery,
) (PlanTransferPackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PlanTransferPackingQueryResponse{}, err
	}
	logger := h.logger.With(zap.String("transfer_id", query.TransferID().String()))

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlanTransferPackingQueryResponse{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	t, err := uow.TransferRepository().Get(ctx, query.TransferID())
	if err != nil {
		return PlanTransferPackingQueryResponse{}, err
	}

	cat := h.loadCatalog(ctx, uow.PricingRepository(), query, logger)

	loader := factsLoader{products: uow.ProductRepository(), history: uow.ShipmentHistoryRepository(), logger: logger}
	facts := loader.load(ctx, t.ProductIDs())
	if err = ctx.Err(); err != nil {
		return PlanTransferPackingQueryResponse{}, err
	}

	report := h.resolver.Resolve(t.ProductIDs(), facts)
	logLowWeights(logger, report.Warnings)

	lines := withKnownDimensions(t.Lines(), facts)
	allocation, err := h.allocator.Allocate(lines, report, cat, query.Options())
	if err != nil {
		return PlanTransferPackingQueryResponse{}, fmt.Errorf("allocate boxes: %w", err)
	}

	optimization, err := h.optimizer.Optimize(allocation.Boxes, cat, query.Options())
	if err != nil {
		return PlanTransferPackingQueryResponse{}, fmt.Errorf("optimize boxes: %w", err)
	}

	logger.Info("packing plan computed",
		zap.Int("items", allocation.TotalItems),
		zap.Int("allocated_boxes", len(allocation.Boxes)),
		zap.Int("optimized_boxes", len(optimization.Boxes)),
		zap.Int("fallback_events", allocation.FallbackEvents),
		zap.Int("merges", optimization.Summary.Merges),
		zap.Int("downsizes", optimization.Summary.Downsizes),
	)

	return PlanTransferPackingQueryResponse{
		TransferID:        t.ID(),
		OutletFrom:        t.OutletFrom(),
		OutletTo:          t.OutletTo(),
		Weights:           report,
		Allocation:        allocation,
		Optimization:      optimization,
		CatalogSize:       cat.Len(),
		CatalogRejections: cat.Rejections(),
	}, nil
}

// withKnownDimensions gives lines without recorded dimensions the envelope
// the weight resolver measured, falling back to the category's typical box.
func withKnownDimensions(lines []packing.Line, facts weight.Facts) []packing.Line {
	for i := range lines {
		if lines[i].Dimensions.IsKnown() {
			continue
		}
		if dims, ok := facts.Dimensions(lines[i].ProductID); ok {
			lines[i].Dimensions = dims
		}
	}
	return lines
}

// loadCatalog builds the run's catalog. A failed pricing read leaves the
// catalog empty, so boxes fall back to the static templates.
func (h PlanTransferPackingQueryHandler) loadCatalog(
	ctx context.Context,
	pricing ports.PricingRepository,
	query PlanTransferPackingQuery,
	logger *zap.Logger,
) *catalog.Catalog {
	rows, err := pricing.ActiveRows(ctx, query.AsOf())
	if err != nil {
		logger.Warn("pricing unavailable, using static templates",
			zap.Error(fmt.Errorf("%w: pricing matrix: %w", ports.ErrDataUnavailable, err)))
		return catalog.Empty()
	}

	cat := catalog.New(rows, query.AsOf())
	for _, r := range cat.Rejections() {
		logger.Warn("pricing row rejected",
			zap.String("container_code", r.ContainerCode),
			zap.String("carrier_code", r.CarrierCode),
			zap.String("reason", r.Reason),
		)
	}
	return cat
}
