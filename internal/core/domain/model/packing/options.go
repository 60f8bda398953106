package packing

import (
	"errors"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const (
	DefaultSafetyMargin           = 0.85
	DefaultFragileCeilingGrams    = 5000.0
	DefaultMinMergeUtilization    = 0.35
	DefaultRequireTighterDownsize = true
)

var ErrOptionsAreNotConstructed = errors.New("Options must be created via NewOptions or DefaultOptions")

// Options tunes one planning run. Thresholds apply uniformly to every box.
type Options struct {
	safetyMargin           float64
	fragileCeilingGrams    float64
	minMergeUtilization    float64
	requireTighterDownsize bool

	guard guard.ConstructorGuard
}

// DefaultOptions returns margin 0.85, fragile ceiling 5000 g, merge threshold 35%
// and tighter-cap downsizing.
func DefaultOptions() Options {
	return Options{
		safetyMargin:           DefaultSafetyMargin,
		fragileCeilingGrams:    DefaultFragileCeilingGrams,
		minMergeUtilization:    DefaultMinMergeUtilization,
		requireTighterDownsize: DefaultRequireTighterDownsize,
		guard:                  guard.NewConstructorGuard(),
	}
}

// NewOptions validates every threshold and reports all violations at once.
func NewOptions(
	safetyMargin float64,
	fragileCeilingGrams float64,
	minMergeUtilization float64,
	requireTighterDownsize bool,
) (Options, error) {
	o := Options{
		requireTighterDownsize: requireTighterDownsize,
		guard:                  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setSafetyMargin(safetyMargin),
		o.setFragileCeiling(fragileCeilingGrams),
		o.setMinMergeUtilization(minMergeUtilization),
	); err != nil {
		return Options{}, err
	}

	return o, nil
}

// WithSafetyMargin returns a copy using a different margin.
func (o Options) WithSafetyMargin(margin float64) (Options, error) {
	if err := o.setSafetyMargin(margin); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (o Options) Validate() error {
	return o.guard.Validate(ErrOptionsAreNotConstructed)
}

func (o Options) SafetyMargin() float64 {
	return o.safetyMargin
}

func (o Options) FragileCeilingGrams() float64 {
	return o.fragileCeilingGrams
}

func (o Options) MinMergeUtilization() float64 {
	return o.minMergeUtilization
}

func (o Options) RequireTighterDownsize() bool {
	return o.requireTighterDownsize
}

func (o *Options) setSafetyMargin(margin float64) error {
	if margin <= 0 || margin > 1 {
		return errs.NewValueIsOutOfRangeError("safety margin", margin, "0 (exclusive)", 1)
	}
	o.safetyMargin = margin
	return nil
}

func (o *Options) setFragileCeiling(grams float64) error {
	if grams <= 0 {
		return errs.NewValueIsOutOfRangeError("fragile ceiling", grams, "0 (exclusive)", "unbounded")
	}
	o.fragileCeilingGrams = grams
	return nil
}

func (o *Options) setMinMergeUtilization(ratio float64) error {
	if ratio < 0 || ratio > 1 {
		return errs.NewValueIsOutOfRangeError("merge utilization", ratio, 0, 1)
	}
	o.minMergeUtilization = ratio
	return nil
}
