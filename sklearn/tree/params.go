package tree

import (
	"math"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
)

// Params holds the hyperparameters of a GBTree.
type Params struct {
	// MaxDepth is the deepest level a split node may occupy; the root is depth 1.
	MaxDepth int `json:"max_depth"`

	// MinSamplesSplit is the smallest row count a node needs to be split.
	MinSamplesSplit int `json:"min_samples_split"`

	// SplitThreshold is the minimum raw gain a split must reach.
	SplitThreshold float64 `json:"split_threshold"`

	// Gamma only enters the reported loss reduction 0.5*gain - gamma.
	Gamma float64 `json:"gamma"`

	// Lambda is the L2 regulariser in the gain and leaf formulas.
	Lambda float64 `json:"lambda"`

	// NJobs bounds subtree and prediction parallelism. 1 is sequential,
	// -1 uses one worker per CPU.
	NJobs int `json:"n_jobs"`

	// Loss turns labels and predictions into the g/h columns a tree trains on.
	Loss LossFunction `json:"-"`
}

// DefaultParams returns the default hyperparameters.
func DefaultParams() Params {
	return Params{
		MaxDepth:        5,
		MinSamplesSplit: 5,
		SplitThreshold:  10,
		Gamma:           1,
		Lambda:          1,
		NJobs:           1,
		Loss:            LeastSquaresLoss(),
	}
}

// Validate checks that every hyperparameter is usable.
func (p Params) Validate() error {
	if p.MaxDepth < 0 {
		return errors.NewValidationError("max_depth", "must be non-negative", p.MaxDepth)
	}
	if p.MinSamplesSplit < 0 {
		return errors.NewValidationError("min_samples_split", "must be non-negative", p.MinSamplesSplit)
	}
	if p.NJobs == 0 || p.NJobs < -1 {
		return errors.NewValidationError("n_jobs", "must be positive or -1", p.NJobs)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"split_threshold", p.SplitThreshold},
		{"gamma", p.Gamma},
		{"lambda", p.Lambda},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.NewValidationError(f.name, "must be finite", f.value)
		}
	}
	return nil
}

// workers maps NJobs onto a worker count for core/parallel, where <= 0 means
// one worker per CPU.
func (p Params) workers() int {
	if p.NJobs < 0 {
		return 0
	}
	return p.NJobs
}

// Option configures a GBTree.
type Option func(*GBTree)

// WithMaxDepth sets max_depth.
func WithMaxDepth(depth int) Option {
	return func(t *GBTree) { t.params.MaxDepth = depth }
}

// WithMinSamplesSplit sets min_samples_split.
func WithMinSamplesSplit(n int) Option {
	return func(t *GBTree) { t.params.MinSamplesSplit = n }
}

// WithSplitThreshold sets split_threshold.
func WithSplitThreshold(threshold float64) Option {
	return func(t *GBTree) { t.params.SplitThreshold = threshold }
}

// WithGamma sets gamma.
func WithGamma(gamma float64) Option {
	return func(t *GBTree) { t.params.Gamma = gamma }
}

// WithLambda sets lambda.
func WithLambda(lambda float64) Option {
	return func(t *GBTree) { t.params.Lambda = lambda }
}

// WithNJobs sets n_jobs.
func WithNJobs(n int) Option {
	return func(t *GBTree) { t.params.NJobs = n }
}

// WithLoss sets the loss used by GBTree.Gradients.
func WithLoss(loss LossFunction) Option {
	return func(t *GBTree) { t.params.Loss = loss }
}

// WithParams replaces every hyperparameter at once.
func WithParams(p Params) Option {
	return func(t *GBTree) {
		loss := t.params.Loss
		t.params = p
		if t.params.Loss == nil {
			t.params.Loss = loss
		}
	}
}

// WithObserver routes builder events to o instead of the default LogObserver.
func WithObserver(o Observer) Option {
	return func(t *GBTree) { t.observer = o }
}
