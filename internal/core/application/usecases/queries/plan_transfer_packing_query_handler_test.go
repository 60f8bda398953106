package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/catalog"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/packing"
	"freight/internal/core/domain/model/transfer"
	"freight/internal/core/domain/model/weight"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var planDate = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func satchelRow(code string, capGrams int, price string) catalog.PricingRow {
	p := decimal.RequireFromString(price)
	return catalog.PricingRow{
		CarrierCode:    "nzpost",
		ContainerCode:  code,
		LengthMM:       400,
		WidthMM:        300,
		HeightMM:       100,
		MaxWeightGrams: capGrams,
		Price:          &p,
	}
}

func newPlanQuery(t *testing.T, id kernel.UUID) queries.PlanTransferPackingQuery {
	t.Helper()
	q, err := queries.NewPlanTransferPackingQuery(id, packing.DefaultOptions(), planDate)
	require.NoError(t, err)
	return q
}

func TestNewPlanTransferPackingQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id := kernel.NewUUID()

		q, err := queries.NewPlanTransferPackingQuery(id, packing.DefaultOptions(), planDate)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.True(t, q.TransferID().IsEqual(id))
		assert.Equal(t, planDate, q.AsOf())
		assert.InDelta(t, 0.85, q.Options().SafetyMargin(), 1e-9)
	})

	t.Run("reports_every_problem", func(t *testing.T) {
		_, err := queries.NewPlanTransferPackingQuery(kernel.UUID{}, packing.Options{}, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, packing.ErrOptionsAreNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestPlanTransferPackingQueryHandler_Handle(t *testing.T) {
	t.Run("plans_and_optimizes_transfer", func(t *testing.T) {
		// Given
		ctx := t.Context()
		id := kernel.NewUUID()
		tr, err := transfer.NewTransfer(id, "Hamilton", "Auckland CBD", []packing.Line{
			{ProductID: "p-1", ProductName: "Charger", Quantity: 1},
			{ProductID: "p-2", ProductName: "Cable", Quantity: 1},
		})
		require.NoError(t, err)

		uow := newMockUoW()
		uow.transfers.On("Get", mock.Anything, id).Return(tr, nil).Once()
		uow.pricing.On("ActiveRows", mock.Anything, planDate).Return([]catalog.PricingRow{
			satchelRow("pouch", 1000, "3.00"),
			satchelRow("satchel", 2000, "5.00"),
			satchelRow("broken", 0, "1.00"),
		}, nil).Once()
		uow.products.On("CuratedWeights", mock.Anything, []kernel.ProductID{"p-1", "p-2"}).
			Return(map[kernel.ProductID]float64{"p-1": 800, "p-2": 700}, nil).Once()
		uow.expectEmptyFacts()
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockPlanningUoWFactory)
		factory.On("Create").Return(uow).Once()

		h, err := queries.NewPlanTransferPackingQueryHandler(factory, zaptest.NewLogger(t))
		require.NoError(t, err)

		// When
		plan, err := h.Handle(ctx, newPlanQuery(t, id))

		// Then
		require.NoError(t, err)
		assert.True(t, plan.TransferID.IsEqual(id))
		assert.Equal(t, "Hamilton", plan.OutletFrom)
		assert.Equal(t, 2, plan.CatalogSize)
		require.Len(t, plan.CatalogRejections, 1)
		assert.Equal(t, "broken", plan.CatalogRejections[0].ContainerCode)

		require.Len(t, plan.Allocation.Boxes, 2)
		assert.Equal(t, 2, plan.Allocation.TotalItems)
		require.Len(t, plan.Optimization.Boxes, 1)
		assert.Equal(t, 1, plan.Optimization.Summary.Merges)
		require.NotNil(t, plan.Optimization.Summary.Savings)
		assert.True(t, plan.Optimization.Summary.Savings.Equal(decimal.NewFromInt(1)))
		assert.Equal(t, "satchel", plan.Optimization.Boxes[0].Container().Code)
		assert.Equal(t, "pouch", plan.Allocation.Boxes[0].Container().Code, "allocation is kept as computed")

		uow.AssertExpectations(t)
		uow.transfers.AssertExpectations(t)
		uow.pricing.AssertExpectations(t)
	})

	t.Run("missing_transfer_is_surfaced", func(t *testing.T) {
		// Given
		ctx := t.Context()
		id := kernel.NewUUID()
		uow := newMockUoW()
		uow.transfers.On("Get", mock.Anything, id).
			Return(nil, errs.NewObjectNotFoundError("transfer", id.String())).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockPlanningUoWFactory)
		factory.On("Create").Return(uow).Once()
		h, _ := queries.NewPlanTransferPackingQueryHandler(factory, zaptest.NewLogger(t))

		// When
		_, err := h.Handle(ctx, newPlanQuery(t, id))

		// Then
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, id.String(), notFound.ID)
		uow.pricing.AssertNotCalled(t, "ActiveRows", mock.Anything, mock.Anything)
	})

	t.Run("pricing_failure_falls_back_to_templates", func(t *testing.T) {
		// Given
		ctx := t.Context()
		id := kernel.NewUUID()
		tr, _ := transfer.NewTransfer(id, "a", "b", []packing.Line{
			{ProductID: "p-1", ProductName: "Charger", Quantity: 3, Dimensions: kernel.Dimensions{VolumeCm3: 500}},
		})
		uow := newMockUoW()
		uow.transfers.On("Get", mock.Anything, id).Return(tr, nil).Once()
		uow.pricing.On("ActiveRows", mock.Anything, planDate).Return(nil, errors.New("permission denied")).Once()
		uow.products.On("CuratedWeights", mock.Anything, mock.Anything).
			Return(map[kernel.ProductID]float64{"p-1": 1000}, nil).Once()
		uow.expectEmptyFacts()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockPlanningUoWFactory)
		factory.On("Create").Return(uow).Once()
		h, _ := queries.NewPlanTransferPackingQueryHandler(factory, zaptest.NewLogger(t))

		// When
		plan, err := h.Handle(ctx, newPlanQuery(t, id))

		// Then
		require.NoError(t, err)
		assert.Zero(t, plan.CatalogSize)
		require.Len(t, plan.Allocation.Boxes, 1)
		assert.Equal(t, catalog.StaticMedium, plan.Allocation.Boxes[0].Container().Code)
		assert.Equal(t, 1, plan.Allocation.FallbackEvents)
		assert.Nil(t, plan.Optimization.Summary.Savings)
		assert.Equal(t, 1000, plan.Weights.Resolutions["p-1"].ResolvedGrams, "later lookups still run")
		uow.AssertExpectations(t)
		uow.products.AssertExpectations(t)
	})

	t.Run("category_dimensions_fill_unit_volume", func(t *testing.T) {
		// Given
		ctx := t.Context()
		id := kernel.NewUUID()
		tr, err := transfer.NewTransfer(id, "a", "b", []packing.Line{
			{ProductID: "p-1", ProductName: "Tank", Quantity: 20},
		})
		require.NoError(t, err)
		uow := newMockUoW()
		uow.transfers.On("Get", mock.Anything, id).Return(tr, nil).Once()
		uow.pricing.On("ActiveRows", mock.Anything, planDate).Return([]catalog.PricingRow{}, nil).Once()
		uow.products.On("Meta", mock.Anything, mock.Anything).Return(map[kernel.ProductID]weight.ProductMeta{
			"p-1": {CategoryID: "c-1", CategoryCode: "hardware"},
		}, nil).Once()
		uow.products.On("CategoryDimensions", mock.Anything, []kernel.CategoryID{"c-1"}).
			Return(map[kernel.CategoryID]kernel.Dimensions{
				"c-1": {LengthMM: 100, WidthMM: 100, HeightMM: 100},
			}, nil).Once()
		uow.expectEmptyFacts()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockPlanningUoWFactory)
		factory.On("Create").Return(uow).Once()
		h, _ := queries.NewPlanTransferPackingQueryHandler(factory, zaptest.NewLogger(t))

		// When
		plan, err := h.Handle(ctx, newPlanQuery(t, id))

		// Then
		require.NoError(t, err)
		res := plan.Weights.Resolutions["p-1"]
		assert.Equal(t, weight.Dimension, res.Source)
		assert.Equal(t, 200, res.ResolvedGrams)

		usable := 300.0 * 200 * 150 / 1000 * packing.DefaultSafetyMargin
		require.Len(t, plan.Allocation.Boxes, 3)
		for _, b := range plan.Allocation.Boxes {
			assert.Equal(t, catalog.StaticMedium, b.Container().Code)
			assert.Positive(t, b.VolumeCm3())
			assert.LessOrEqual(t, b.VolumeCm3(), usable)
		}
		assert.InDelta(t, 20000, plan.Allocation.TotalVolumeCm3, 1e-6)
		uow.products.AssertExpectations(t)
	})

	t.Run("empty_transfer_gives_empty_plan", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		tr, _ := transfer.NewTransfer(id, "a", "b", nil)
		uow := newMockUoW()
		uow.transfers.On("Get", mock.Anything, id).Return(tr, nil).Once()
		uow.pricing.On("ActiveRows", mock.Anything, planDate).Return([]catalog.PricingRow{}, nil).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockPlanningUoWFactory)
		factory.On("Create").Return(uow).Once()
		h, _ := queries.NewPlanTransferPackingQueryHandler(factory, zaptest.NewLogger(t))

		plan, err := h.Handle(ctx, newPlanQuery(t, id))

		require.NoError(t, err)
		assert.Empty(t, plan.Allocation.Boxes)
		assert.Empty(t, plan.Optimization.Boxes)
		assert.Empty(t, plan.Weights.Resolutions)
		uow.products.AssertNotCalled(t, "Meta", mock.Anything, mock.Anything)
	})

	t.Run("cancelled_context_aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		id := kernel.NewUUID()
		tr, _ := transfer.NewTransfer(id, "a", "b", []packing.Line{{ProductID: "p-1", Quantity: 1}})
		uow := newMockUoW()
		uow.transfers.On("Get", mock.Anything, id).Return(tr, nil).Once()
		uow.pricing.On("ActiveRows", mock.Anything, planDate).
			Run(func(mock.Arguments) { cancel() }).
			Return(nil, context.Canceled).Once()
		uow.expectEmptyFacts()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		factory := new(MockPlanningUoWFactory)
		factory.On("Create").Return(uow).Once()
		h, _ := queries.NewPlanTransferPackingQueryHandler(factory, zaptest.NewLogger(t))

		_, err := h.Handle(ctx, newPlanQuery(t, id))

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("requires_factory", func(t *testing.T) {
		_, err := queries.NewPlanTransferPackingQueryHandler(nil, zaptest.NewLogger(t))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
