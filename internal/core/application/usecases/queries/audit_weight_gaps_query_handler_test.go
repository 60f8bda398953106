package queries_test

import (
	"errors"
	"testing"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/weight"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewAuditWeightGapsQuery(t *testing.T) {
	since := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		q, err := queries.NewAuditWeightGapsQuery(since, 200)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Equal(t, since, q.Since())
		assert.Equal(t, 200, q.Limit())
	})

	t.Run("limit_out_of_range", func(t *testing.T) {
		_, err := queries.NewAuditWeightGapsQuery(since, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = queries.NewAuditWeightGapsQuery(since, queries.MaxAuditLimit+1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("window_start_required", func(t *testing.T) {
		_, err := queries.NewAuditWeightGapsQuery(time.Time{}, 10)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestAuditWeightGapsQueryHandler_Handle(t *testing.T) {
	since := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("summarizes_uncurated_products", func(t *testing.T) {
		// Given
		ctx := t.Context()
		uow := newMockUoW()
		uow.products.On("ListUncuratedShipped", mock.Anything, since, 50).
			Return([]kernel.ProductID{"p-1", "p-2", "p-3"}, nil).Once()
		uow.products.On("Meta", mock.Anything, mock.Anything).Return(map[kernel.ProductID]weight.ProductMeta{
			"p-1": {CategoryCode: "coil"},
			"p-2": {CategoryCode: "tanks"},
		}, nil).Once()
		uow.products.On("CuratedWeights", mock.Anything, mock.Anything).
			Return(map[kernel.ProductID]float64{"p-1": 8}, nil).Once()
		uow.expectEmptyFacts()
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockWeightUoWFactory)
		factory.On("Create").Return(uow).Once()

		h, err := queries.NewAuditWeightGapsQueryHandler(factory, zaptest.NewLogger(t))
		require.NoError(t, err)
		q, err := queries.NewAuditWeightGapsQuery(since, 50)
		require.NoError(t, err)

		// When
		resp, err := h.Handle(ctx, q)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Checked)
		assert.Equal(t, 1, resp.Summary[weight.Curated])
		assert.Equal(t, 1, resp.Summary[weight.CategoryDefault])
		assert.Equal(t, 1, resp.Summary[weight.Fallback])
		require.Len(t, resp.LowWeight, 1)
		assert.Equal(t, kernel.ProductID("p-1"), resp.LowWeight[0].ProductID)
		require.Len(t, resp.Fallbacks, 1)
		assert.Equal(t, kernel.ProductID("p-3"), resp.Fallbacks[0].ProductID)
		uow.AssertExpectations(t)
	})

	t.Run("listing_failure_is_an_error", func(t *testing.T) {
		ctx := t.Context()
		uow := newMockUoW()
		uow.products.On("ListUncuratedShipped", mock.Anything, since, 50).
			Return(nil, errors.New("statement timeout")).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockWeightUoWFactory)
		factory.On("Create").Return(uow).Once()
		h, _ := queries.NewAuditWeightGapsQueryHandler(factory, zaptest.NewLogger(t))
		q, _ := queries.NewAuditWeightGapsQuery(since, 50)

		_, err := h.Handle(ctx, q)

		require.EqualError(t, err, "statement timeout")
	})

	t.Run("nothing_to_audit", func(t *testing.T) {
		ctx := t.Context()
		uow := newMockUoW()
		uow.products.On("ListUncuratedShipped", mock.Anything, since, 50).Return([]kernel.ProductID{}, nil).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockWeightUoWFactory)
		factory.On("Create").Return(uow).Once()
		h, _ := queries.NewAuditWeightGapsQueryHandler(factory, zaptest.NewLogger(t))
		q, _ := queries.NewAuditWeightGapsQuery(since, 50)

		resp, err := h.Handle(ctx, q)

		require.NoError(t, err)
		assert.Zero(t, resp.Checked)
		assert.Empty(t, resp.Fallbacks)
	})

	t.Run("requires_factory", func(t *testing.T) {
		_, err := queries.NewAuditWeightGapsQueryHandler(nil, zaptest.NewLogger(t))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
