package pricingrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/adapters/out/postgres/pricingrepo"
	"freight/internal/core/domain/model/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type PricingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *pricingrepo.GormPricingRepository
}

func (suite *PricingRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.repository = pricingrepo.NewGormPricingRepository(db)
}

func (suite *PricingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *PricingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func (suite *PricingRepositoryIntegrationTestSuite) insert(row catalog.PricingRow, active bool) {
	dto := pricingrepo.DomainToDTO(row)
	dto.Active = active
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func row(code, price string) catalog.PricingRow {
	r := catalog.PricingRow{
		CarrierCode:    "nzpost",
		ContainerCode:  code,
		ContainerName:  "Satchel " + code,
		LengthMM:       400,
		WidthMM:        300,
		HeightMM:       100,
		MaxWeightGrams: 2000,
		Currency:       "NZD",
	}
	if price != "" {
		p := decimal.RequireFromString(price)
		r.Price = &p
	}
	return r
}

func (suite *PricingRepositoryIntegrationTestSuite) TestActiveRows_FiltersByWindowAndFlag() {
	ctx := context.Background()
	asOf := time.Date(2026, 5, 4, 15, 0, 0, 0, time.UTC)

	open := row("open", "5.50")
	suite.insert(open, true)

	current := row("current", "6.00")
	current.EffectiveFrom = date(2026, 5, 1)
	current.EffectiveTo = date(2026, 5, 4)
	suite.insert(current, true)

	expired := row("expired", "4.00")
	expired.EffectiveTo = date(2026, 5, 3)
	suite.insert(expired, true)

	future := row("future", "4.00")
	future.EffectiveFrom = date(2026, 5, 5)
	suite.insert(future, true)

	suite.insert(row("retired", "3.00"), false)
	suite.insert(row("unpriced", ""), true)

	rows, err := suite.repository.ActiveRows(ctx, asOf)

	suite.Require().NoError(err)
	codes := make([]string, 0, len(rows))
	for _, r := range rows {
		codes = append(codes, r.ContainerCode)
	}
	suite.Equal([]string{"current", "open", "unpriced"}, codes)

	suite.Require().NotNil(rows[1].Price)
	suite.True(rows[1].Price.Equal(decimal.RequireFromString("5.50")))
	suite.Equal("NZD", rows[1].Currency)
	suite.Nil(rows[2].Price, "missing prices are passed through")
}

func (suite *PricingRepositoryIntegrationTestSuite) TestActiveRows_BuildCatalog() {
	ctx := context.Background()
	asOf := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	suite.insert(row("satchel", "5.00"), true)
	broken := row("broken", "1.00")
	broken.MaxWeightGrams = 0
	suite.insert(broken, true)

	rows, err := suite.repository.ActiveRows(ctx, asOf)
	suite.Require().NoError(err)
	cat := catalog.New(rows, asOf)

	suite.Equal(1, cat.Len())
	suite.Require().Len(cat.Rejections(), 1)
	suite.Equal("broken", cat.Rejections()[0].ContainerCode)
}

func TestPricingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PricingRepositoryIntegrationTestSuite))
}
