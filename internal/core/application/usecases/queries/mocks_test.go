package queries_test

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/catalog"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transfer"
	"freight/internal/core/domain/model/weight"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockTransferRepository struct{ mock.Mock }

func (m *MockTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*transfer.Transfer)
	return t, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Meta(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID]weight.ProductMeta, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).(map[kernel.ProductID]weight.ProductMeta)
	return out, args.Error(1)
}

func (m *MockProductRepository) CuratedWeights(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID]float64, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).(map[kernel.ProductID]float64)
	return out, args.Error(1)
}

func (m *MockProductRepository) ProductDimensions(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID]kernel.Dimensions, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).(map[kernel.ProductID]kernel.Dimensions)
	return out, args.Error(1)
}

func (m *MockProductRepository) CategoryDimensions(
	ctx context.Context,
	ids []kernel.CategoryID,
) (map[kernel.CategoryID]kernel.Dimensions, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).(map[kernel.CategoryID]kernel.Dimensions)
	return out, args.Error(1)
}

func (m *MockProductRepository) ListUncuratedShipped(
	ctx context.Context,
	since time.Time,
	limit int,
) ([]kernel.ProductID, error) {
	args := m.Called(ctx, since, limit)
	out, _ := args.Get(0).([]kernel.ProductID)
	return out, args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) ProductObservations(
	ctx context.Context,
	ids []kernel.ProductID,
) (map[kernel.ProductID][]weight.ParcelObservation, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).(map[kernel.ProductID][]weight.ParcelObservation)
	return out, args.Error(1)
}

func (m *MockHistoryRepository) CategoryObservations(
	ctx context.Context,
	ids []kernel.CategoryID,
) (map[kernel.CategoryID][]weight.ParcelObservation, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).(map[kernel.CategoryID][]weight.ParcelObservation)
	return out, args.Error(1)
}

type MockPricingRepository struct{ mock.Mock }

func (m *MockPricingRepository) ActiveRows(ctx context.Context, asOf time.Time) ([]catalog.PricingRow, error) {
	args := m.Called(ctx, asOf)
	out, _ := args.Get(0).([]catalog.PricingRow)
	return out, args.Error(1)
}

// MockUoW satisfies both queries.WeightUoW and queries.PlanningUoW.
type MockUoW struct {
	mock.Mock

	transfers *MockTransferRepository
	products  *MockProductRepository
	history   *MockHistoryRepository
	pricing   *MockPricingRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		transfers: new(MockTransferRepository),
		products:  new(MockProductRepository),
		history:   new(MockHistoryRepository),
		pricing:   new(MockPricingRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) TransferRepository() ports.TransferRepository               { return m.transfers }
func (m *MockUoW) ProductRepository() ports.ProductRepository                 { return m.products }
func (m *MockUoW) ShipmentHistoryRepository() ports.ShipmentHistoryRepository { return m.history }
func (m *MockUoW) PricingRepository() ports.PricingRepository                 { return m.pricing }

// expectEmptyFacts makes every weight lookup return nothing.
func (m *MockUoW) expectEmptyFacts() {
	m.products.On("Meta", mock.Anything, mock.Anything).Return(map[kernel.ProductID]weight.ProductMeta{}, nil).Maybe()
	m.products.On("CuratedWeights", mock.Anything, mock.Anything).Return(map[kernel.ProductID]float64{}, nil).Maybe()
	m.products.On("ProductDimensions", mock.Anything, mock.Anything).
		Return(map[kernel.ProductID]kernel.Dimensions{}, nil).Maybe()
	m.products.On("CategoryDimensions", mock.Anything, mock.Anything).
		Return(map[kernel.CategoryID]kernel.Dimensions{}, nil).Maybe()
	m.history.On("ProductObservations", mock.Anything, mock.Anything).
		Return(map[kernel.ProductID][]weight.ParcelObservation{}, nil).Maybe()
	m.history.On("CategoryObservations", mock.Anything, mock.Anything).
		Return(map[kernel.CategoryID][]weight.ParcelObservation{}, nil).Maybe()
}

type MockWeightUoWFactory struct{ mock.Mock }

func (m *MockWeightUoWFactory) Create() queries.WeightUoW {
	return m.Called().Get(0).(queries.WeightUoW)
}

type MockPlanningUoWFactory struct{ mock.Mock }

func (m *MockPlanningUoWFactory) Create() queries.PlanningUoW {
	return m.Called().Get(0).(queries.PlanningUoW)
}
