package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/packing"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

// PackingPlanner runs the packing-plan query.
type PackingPlanner interface {
	Handle(ctx context.Context, q queries.PlanTransferPackingQuery) (queries.PlanTransferPackingQueryResponse, error)
}

// WeightResolver runs the weight resolution query.
type WeightResolver interface {
	Handle(ctx context.Context, q queries.ResolveWeightsQuery) (queries.ResolveWeightsQueryResponse, error)
}

// Server coordinates between HTTP handlers and application queries.
type Server struct {
	planner  PackingPlanner
	resolver WeightResolver
	options  packing.Options
	now      func() time.Time
	logger   *zap.Logger
}

// NewServer creates a server. options are the packing defaults a request may
// override.
func NewServer(
	planner PackingPlanner,
	resolver WeightResolver,
	options packing.Options,
	logger *zap.Logger,
) (*Server, error) {
	if planner == nil {
		return nil, errs.NewValueIsRequiredError("planner")
	}
	if resolver == nil {
		return nil, errs.NewValueIsRequiredError("resolver")
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	return &Server{
		planner:  planner,
		resolver: resolver,
		options:  options,
		now:      time.Now,
		logger:   logging.Component(logger, "http_server"),
	}, nil
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// PlanTransferPacking handles POST /api/v1/transfers/:id/packing-plan.
func (s *Server) PlanTransferPacking(ctx echo.Context) error {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("transfer id", err))
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("transfer id", err))
	}

	var body PlanRequest
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	options := s.options
	if body.SafetyMargin != nil {
		if options, err = options.WithSafetyMargin(*body.SafetyMargin); err != nil {
			return s.fail(ctx, err)
		}
	}

	query, err := queries.NewPlanTransferPackingQuery(id, options, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	plan, err := s.planner.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPlanView(plan))
}

// ResolveWeights handles POST /api/v1/weights/resolve.
func (s *Server) ResolveWeights(ctx echo.Context) error {
	var body ResolveRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	query, err := queries.NewResolveWeightsQuery(body.ProductIDs)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.resolver.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toWeightsView(resp))
}

// fail maps an application error to its status code. Unexpected errors are
// logged and hidden from the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", ctx.Path()),
			zap.String("request_id", ctx.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Error(err),
		)
		message = "Internal server error"
	}
	return ctx.JSON(status, Error{Code: status, Message: message})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, packing.ErrOptionsAreNotConstructed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
