package queries

import (
	"context"

	"freight/internal/core/domain/model/weight"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/logging"

	"go.uber.org/zap"
)

// ResolveWeightsQueryHandler resolves product weights inside one snapshot.
type ResolveWeightsQueryHandler struct {
	uowFactory WeightUoWFactory
	resolver   services.WeightResolver
	logger     *zap.Logger
}

// NewResolveWeightsQueryHandler fails when no unit of work factory is given,
// since the handler cannot read any data without one.
func NewResolveWeightsQueryHandler(
	uowFactory WeightUoWFactory,
	logger *zap.Logger,
) (ResolveWeightsQueryHandler, error) {
	if uowFactory == nil {
		return ResolveWeightsQueryHandler{}, errs.NewValueIsRequiredError("weight unit of work factory")
	}
	return ResolveWeightsQueryHandler{
		uowFactory: uowFactory,
		resolver:   services.NewWeightResolver(),
		logger:     logging.Component(logger, "resolve_weights"),
	}, nil
}

// Handle loads the facts for the requested products and resolves them. Low
// weights are logged and returned as warnings.
func (h ResolveWeightsQueryHandler) Handle(
	ctx context.Context,
	query ResolveWeightsQuery,
) (ResolveWeightsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveWeightsQueryResponse{}, err
	}

	ids := query.ProductIDs()
	if len(ids) == 0 {
		return newResolveWeightsResponse(weight.NewReport()), nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ResolveWeightsQueryResponse{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loader := factsLoader{products: uow.ProductRepository(), history: uow.ShipmentHistoryRepository(), logger: h.logger}
	facts := loader.load(ctx, ids)
	if err := ctx.Err(); err != nil {
		return ResolveWeightsQueryResponse{}, err
	}

	report := h.resolver.Resolve(ids, facts)
	logLowWeights(h.logger, report.Warnings)

	h.logger.Debug("weights resolved", zap.Int("products", len(ids)))
	return newResolveWeightsResponse(report), nil
}
