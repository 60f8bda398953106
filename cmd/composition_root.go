package cmd

import (
	"time"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const weightAuditTimeout = 2 * time.Minute

type CompositionRoot struct {
	cfg        Config
	logger     *zap.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) planningUoWFactory() queries.PlanningUoWFactory {
	return FuncPlanningUoWFactory(func() queries.PlanningUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) weightUoWFactory() queries.WeightUoWFactory {
	return FuncWeightUoWFactory(func() queries.WeightUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlanTransferPackingQueryHandler() (queries.PlanTransferPackingQueryHandler, error) {
	return queries.NewPlanTransferPackingQueryHandler(c.planningUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateResolveWeightsQueryHandler() (queries.ResolveWeightsQueryHandler, error) {
	return queries.NewResolveWeightsQueryHandler(c.weightUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateAuditWeightGapsQueryHandler() (queries.AuditWeightGapsQueryHandler, error) {
	return queries.NewAuditWeightGapsQueryHandler(c.weightUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	planner, err := c.CreatePlanTransferPackingQueryHandler()
	if err != nil {
		return nil, err
	}
	resolver, err := c.CreateResolveWeightsQueryHandler()
	if err != nil {
		return nil, err
	}
	options, err := c.cfg.PackingOptions()
	if err != nil {
		return nil, err
	}
	return httpin.NewServer(planner, resolver, options, c.logger)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server, err := c.CreateHTTPServer()
	if err != nil {
		return nil, err
	}
	contract, err := httpin.LoadContract()
	if err != nil {
		return nil, err
	}
	limit := httpin.RateLimit{
		RequestsPerSecond: c.cfg.RateLimit.RequestsPerSecond,
		Burst:             c.cfg.RateLimit.Burst,
	}
	return httpin.NewRouter(server, contract, limit, c.logger), nil
}

// CreateJobManager registers the background jobs enabled in the configuration.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	manager := jobs.NewJobManager()
	if !c.cfg.WeightAudit.Enabled {
		return manager, nil
	}

	auditor, err := c.CreateAuditWeightGapsQueryHandler()
	if err != nil {
		return nil, err
	}
	job, err := jobs.NewWeightAuditJob(auditor, jobs.WeightAuditSettings{
		Schedule: c.cfg.WeightAudit.Schedule,
		Lookback: c.cfg.WeightAudit.Lookback,
		Limit:    c.cfg.WeightAudit.Limit,
		Timeout:  weightAuditTimeout,
	}, c.logger)
	if err != nil {
		return nil, err
	}
	manager.Register("weight-audit", job)
	return manager, nil
}

type FuncPlanningUoWFactory func() queries.PlanningUoW

func (f FuncPlanningUoWFactory) Create() queries.PlanningUoW {
	return f()
}

type FuncWeightUoWFactory func() queries.WeightUoW

func (f FuncWeightUoWFactory) Create() queries.WeightUoW {
	return f()
}
