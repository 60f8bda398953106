package queries

import (
	"context"

	"freight/internal/core/domain/model/weight"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/logging"

	"go.uber.org/zap"
)

// AuditWeightGapsQueryHandler lists uncurated products shipped in the audit
// window and resolves them. The listing is mandatory; the weight lookups
// behind the resolution are optional as usual.
type AuditWeightGapsQueryHandler struct {
	uowFactory WeightUoWFactory
	resolver   services.WeightResolver
	logger     *zap.Logger
}

func NewAuditWeightGapsQueryHandler(
	uowFactory WeightUoWFactory,
	logger *zap.Logger,
) (AuditWeightGapsQueryHandler, error) {
	if uowFactory == nil {
		return AuditWeightGapsQueryHandler{}, errs.NewValueIsRequiredError("weight unit of work factory")
	}
	return AuditWeightGapsQueryHandler{
		uowFactory: uowFactory,
		resolver:   services.NewWeightResolver(),
		logger:     logging.Component(logger, "audit_weight_gaps"),
	}, nil
}

func (h AuditWeightGapsQueryHandler) Handle(
	ctx context.Context,
	query AuditWeightGapsQuery,
) (AuditWeightGapsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return AuditWeightGapsQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AuditWeightGapsQueryResponse{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ids, err := uow.ProductRepository().ListUncuratedShipped(ctx, query.Since(), query.Limit())
	if err != nil {
		return AuditWeightGapsQueryResponse{}, err
	}

	loader := factsLoader{products: uow.ProductRepository(), history: uow.ShipmentHistoryRepository(), logger: h.logger}
	facts := loader.load(ctx, ids)
	if err = ctx.Err(); err != nil {
		return AuditWeightGapsQueryResponse{}, err
	}

	report := h.resolver.Resolve(ids, facts)

	fallbacks := make([]weight.Resolution, 0)
	for _, res := range report.Sorted() {
		if res.Source == weight.Fallback {
			fallbacks = append(fallbacks, res)
		}
	}

	return AuditWeightGapsQueryResponse{
		Checked:   len(report.Resolutions),
		Summary:   report.Summary(),
		LowWeight: report.Warnings,
		Fallbacks: fallbacks,
	}, nil
}
