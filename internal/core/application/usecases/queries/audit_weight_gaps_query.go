package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/weight"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const MaxAuditLimit = 5000

var ErrAuditWeightGapsQueryIsNotConstructed = errors.New(
	"AuditWeightGapsQuery must be created via NewAuditWeightGapsQuery constructor",
)

// AuditWeightGapsQuery resolves recently shipped products that still lack a
// curated weight, so their inferred weights can be reviewed.
type AuditWeightGapsQuery struct {
	since time.Time
	limit int

	guard guard.ConstructorGuard
}

func NewAuditWeightGapsQuery(since time.Time, limit int) (AuditWeightGapsQuery, error) {
	q := AuditWeightGapsQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(q.setSince(since), q.setLimit(limit)); err != nil {
		return AuditWeightGapsQuery{}, err
	}
	return q, nil
}

func (q AuditWeightGapsQuery) Validate() error {
	return q.guard.Validate(ErrAuditWeightGapsQueryIsNotConstructed)
}

func (q AuditWeightGapsQuery) Since() time.Time { return q.since }
func (q AuditWeightGapsQuery) Limit() int       { return q.limit }

func (q *AuditWeightGapsQuery) setSince(since time.Time) error {
	if since.IsZero() {
		return errs.NewValueIsRequiredError("audit window start")
	}
	q.since = since
	return nil
}

func (q *AuditWeightGapsQuery) setLimit(limit int) error {
	if limit < 1 || limit > MaxAuditLimit {
		return errs.NewValueIsOutOfRangeError("audit limit", limit, 1, MaxAuditLimit)
	}
	q.limit = limit
	return nil
}

// AuditWeightGapsQueryResponse summarizes how uncurated products resolved.
type AuditWeightGapsQueryResponse struct {
	Checked   int
	Summary   map[weight.Source]int
	LowWeight []weight.LowWeightWarning
	Fallbacks []weight.Resolution
}
