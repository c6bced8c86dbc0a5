package tree

import (
	"context"
	"sync"
	"time"

	"github.com/YuminosukeSato/gbtree/core/model"
	"github.com/YuminosukeSato/gbtree/metrics"
	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"github.com/YuminosukeSato/gbtree/pkg/log"
	"gonum.org/v1/gonum/mat"
)

const modelName = "GBTree"

var (
	_ model.ParameterGetter = (*GBTree)(nil)
	_ model.ParameterSetter = (*GBTree)(nil)
	_ model.Persistable     = (*GBTree)(nil)
)

// GBTree is a second-order gradient boosting regression tree: the weak
// learner of an xgboost-style booster. It trains on a Frame whose last two
// columns hold each row's gradient and hessian, and predicts the Newton step
// -G/(H+lambda) of the leaf a row falls into.
//
// A fitted GBTree is safe for concurrent Predict, PredictRow and Score calls.
type GBTree struct {
	state *model.StateManager

	mu           sync.RWMutex
	params       Params
	observer     Observer
	root         *Node
	featureNames []string
}

// NewGBTree creates an unfitted tree with DefaultParams adjusted by opts.
func NewGBTree(opts ...Option) *GBTree {
	t := &GBTree{
		state:  model.NewStateManager(),
		params: DefaultParams(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Fit grows a new tree on X, replacing any previous one. X must end with the
// g and h columns. y is carried alongside the rows and may be nil.
func (t *GBTree) Fit(X *Frame, y mat.Vector) error {
	return t.FitContext(context.Background(), X, y)
}

// FitContext is Fit with cancellation. Once ctx is done every node not yet
// built becomes a leaf, exactly as if the depth limit had been reached; the
// resulting tree is valid and no error is returned.
func (t *GBTree) FitContext(ctx context.Context, X *Frame, y mat.Vector) (err error) {
	defer errors.Recover(&err, "GBTree.Fit")

	t.mu.RLock()
	params, observer := t.params, t.observer
	t.mu.RUnlock()

	if err := params.Validate(); err != nil {
		return err
	}

	logger := log.GetLoggerWithName("tree.gbtree").With(
		log.ModelNameKey, modelName,
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
	)

	data, names, err := newTrainingSet("Fit", X, y)
	if err != nil {
		logger.Error("Invalid training frame", err)
		return err
	}
	if observer == nil {
		observer = NewLogObserver(nil)
	}

	logger.Info("Training GBTree",
		log.SamplesKey, data.len(),
		log.FeaturesKey, len(names),
		log.WorkersKey, params.NJobs,
	)
	start := time.Now()

	root, err := newBuilder(ctx, params, names, observer).build(data, 1)
	if err != nil {
		logger.Error("Training failed", err)
		return err
	}

	t.mu.Lock()
	t.root = root
	t.featureNames = names
	t.mu.Unlock()
	t.state.SetFitted(len(names), data.len())

	if ctx.Err() != nil {
		logger.Warn("Training canceled, remaining nodes built as leaves", "error", ctx.Err().Error())
	}
	logger.Info("Training completed",
		log.NodesKey, root.NumNodes(),
		log.LeavesKey, root.NumLeaves(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns one prediction per row of X, in row order. X needs every
// feature the tree splits on; other columns, including g and h, are ignored.
func (t *GBTree) Predict(X *Frame) (*mat.VecDense, error) {
	if err := t.state.RequireFitted(modelName, "Predict"); err != nil {
		return nil, err
	}

	t.mu.RLock()
	root, names, workers := t.root, t.featureNames, t.params.workers()
	t.mu.RUnlock()

	return predictFrame(root, names, X, workers)
}

// PredictRow predicts a single row given as feature name to value.
func (t *GBTree) PredictRow(row map[string]float64) (float64, error) {
	if err := t.state.RequireFitted(modelName, "PredictRow"); err != nil {
		return 0, err
	}

	t.mu.RLock()
	root, names := t.root, t.featureNames
	t.mu.RUnlock()

	return predictRow(root, names, row)
}

// Score returns the mean squared error of the predictions for X against y.
func (t *GBTree) Score(X *Frame, y mat.Vector) (float64, error) {
	if err := t.state.RequireFitted(modelName, "Score"); err != nil {
		return 0, err
	}
	if y == nil {
		return 0, errors.NewValueError("Score", "labels are required")
	}

	pred, err := t.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.MSE(y, pred)
}

// Gradients builds a training frame for X from labels y and the current
// ensemble predictions pred, using the configured loss.
func (t *GBTree) Gradients(X mat.Matrix, columns []string, y, pred mat.Vector) (*Frame, error) {
	t.mu.RLock()
	loss := t.params.Loss
	t.mu.RUnlock()

	return WithGradients(X, columns, y, pred, loss)
}

// Root returns the fitted tree, or nil before Fit.
func (t *GBTree) Root() *Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root
}

// FeatureNames returns the feature columns the tree was fitted on.
func (t *GBTree) FeatureNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, len(t.featureNames))
	copy(names, t.featureNames)
	return names
}

// IsFitted reports whether Fit or Load has completed.
func (t *GBTree) IsFitted() bool {
	return t.state.IsFitted()
}

// Params returns a copy of the hyperparameters.
func (t *GBTree) Params() Params {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.params
}

// GetParams returns the hyperparameters keyed by their JSON names.
func (t *GBTree) GetParams() map[string]interface{} {
	p := t.Params()
	return map[string]interface{}{
		"max_depth":         p.MaxDepth,
		"min_samples_split": p.MinSamplesSplit,
		"split_threshold":   p.SplitThreshold,
		"gamma":             p.Gamma,
		"lambda":            p.Lambda,
		"n_jobs":            p.NJobs,
	}
}

// SetParams updates hyperparameters from the keys GetParams returns. Numbers
// may be given as int or float64. Nothing changes unless every key is valid.
func (t *GBTree) SetParams(params map[string]interface{}) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.params
	for key, value := range params {
		var err error
		switch key {
		case "max_depth":
			p.MaxDepth, err = intParam(key, value)
		case "min_samples_split":
			p.MinSamplesSplit, err = intParam(key, value)
		case "n_jobs":
			p.NJobs, err = intParam(key, value)
		case "split_threshold":
			p.SplitThreshold, err = floatParam(key, value)
		case "gamma":
			p.Gamma, err = floatParam(key, value)
		case "lambda":
			p.Lambda, err = floatParam(key, value)
		default:
			err = errors.NewValidationError(key, "unknown parameter", value)
		}
		if err != nil {
			return err
		}
	}
	if err := p.Validate(); err != nil {
		return err
	}
	t.params = p
	return nil
}

func intParam(key string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, errors.NewValidationError(key, "must be an integer", value)
}

func floatParam(key string, value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, errors.NewValidationError(key, "must be a number", value)
}

// Save writes the fitted tree to path as JSON.
func (t *GBTree) Save(path string) error {
	return model.SaveModel(t, path)
}

// Load replaces the tree with one written by Save.
func (t *GBTree) Load(path string) error {
	return model.LoadModel(t, path)
}
