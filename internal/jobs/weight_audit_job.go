package jobs

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/weight"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/logging"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// WeightAuditor runs the weight gap audit query.
type WeightAuditor interface {
	Handle(ctx context.Context, q queries.AuditWeightGapsQuery) (queries.AuditWeightGapsQueryResponse, error)
}

// WeightAuditSettings configures WeightAuditJob.
type WeightAuditSettings struct {
	// Schedule is a six-field cron expression (seconds first).
	Schedule string
	// Lookback is how far back shipped transfers are scanned.
	Lookback time.Duration
	// Limit caps the products checked per run.
	Limit int
	// Timeout bounds a single run.
	Timeout time.Duration
}

// WeightAuditJob periodically resolves weights of shipped products that have
// no curated weight and logs what needs manual review.
type WeightAuditJob struct {
	auditor  WeightAuditor
	settings WeightAuditSettings
	cron     *cron.Cron
	now      func() time.Time
	logger   *zap.Logger
}

// NewWeightAuditJob creates the job. It does not validate the schedule;
// Start does.
func NewWeightAuditJob(auditor WeightAuditor, settings WeightAuditSettings, logger *zap.Logger) (*WeightAuditJob, error) {
	if auditor == nil {
		return nil, errs.NewValueIsRequiredError("auditor")
	}
	if settings.Lookback <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("audit lookback", settings.Lookback, "0 (exclusive)", "unbounded")
	}
	if settings.Limit <= 0 || settings.Limit > queries.MaxAuditLimit {
		return nil, errs.NewValueIsOutOfRangeError("audit limit", settings.Limit, 1, queries.MaxAuditLimit)
	}
	if settings.Timeout <= 0 {
		settings.Timeout = time.Minute
	}

	return &WeightAuditJob{
		auditor:  auditor,
		settings: settings,
		cron:     cron.New(cron.WithSeconds()),
		now:      time.Now,
		logger:   logging.Component(logger, "weight_audit_job"),
	}, nil
}

// Start schedules the audit.
func (j *WeightAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.settings.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.settings.Timeout)
		defer cancel()

		if err := j.Run(ctx); err != nil {
			j.logger.Error("Weight audit job failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Weight audit job started", zap.String("schedule", j.settings.Schedule))
	return nil
}

// Stop stops scheduling and waits for a running audit to finish.
func (j *WeightAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Weight audit job stopped")
}

// Run performs one audit over the lookback window ending now.
func (j *WeightAuditJob) Run(ctx context.Context) error {
	q, err := queries.NewAuditWeightGapsQuery(j.now().Add(-j.settings.Lookback), j.settings.Limit)
	if err != nil {
		return err
	}

	resp, err := j.auditor.Handle(ctx, q)
	if err != nil {
		return err
	}

	if resp.Checked == 0 {
		j.logger.Info("Weight audit found no uncurated products")
		return nil
	}

	fields := []zap.Field{zap.Int("checked", resp.Checked)}
	for _, source := range weight.AllSources() {
		fields = append(fields, zap.Int(source.String(), resp.Summary[source]))
	}
	j.logger.Info("Weight audit summary", fields...)

	for _, w := range resp.LowWeight {
		j.logger.Warn("Product weight needs review",
			zap.String("product_id", w.ProductID.String()),
			zap.Int("resolved_weight_g", w.ResolvedGrams),
			zap.Stringer("source", w.Source),
		)
	}
	for _, r := range resp.Fallbacks {
		j.logger.Warn("Product weight is a fallback guess",
			zap.String("product_id", r.ProductID.String()),
			zap.String("category_code", r.CategoryCode),
		)
	}
	return nil
}
