// Standard attribute keys for gbtree log records.
//
// Keys follow a dotted hierarchy ("data.samples", "tree.depth") so records from
// training, prediction and the CLI can be filtered uniformly.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "GBTree".
	ModelNameKey = "model.name"

	// OperationKey names the operation: "fit", "predict", "score".
	OperationKey = "ml.operation"

	// ComponentKey identifies the emitting component, e.g. "tree.builder".
	ComponentKey = "ml.component"

	// PhaseKey indicates the lifecycle phase.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	PathKey     = "data.path"
)

// Tree growth.
const (
	// DepthKey is the depth of the node being built; the root is depth 1.
	DepthKey = "tree.depth"

	// FeatureKey is the feature chosen for a split.
	FeatureKey = "tree.feature"

	// ThresholdKey is the split threshold; rows with value <= threshold go left.
	ThresholdKey = "tree.threshold"

	// GainKey is the raw split gain compared against split_threshold.
	GainKey = "tree.gain"

	// LossReductionKey is 0.5*gain - gamma, reported only.
	LossReductionKey = "tree.loss_reduction"

	// LeafValueKey is the fitted value of a leaf.
	LeafValueKey = "tree.leaf_value"

	// StopReasonKey tells why a node became a leaf.
	StopReasonKey = "tree.stop_reason"

	// NodesKey and LeavesKey summarise a finished tree.
	NodesKey  = "tree.nodes"
	LeavesKey = "tree.leaves"
)

// Performance and metrics.
const (
	DurationMsKey = "perf.duration_ms"
	LossKey       = "metrics.loss"
	R2ScoreKey    = "metrics.r2_score"
	PredsKey      = "preds.count"
	WorkersKey    = "infra.workers"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted    = "NOT_FITTED"
	ErrorEmptyData    = "EMPTY_DATA"
	ErrorInvalidInput = "INVALID_INPUT"
)
