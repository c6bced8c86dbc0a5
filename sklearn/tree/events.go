package tree

import (
	"github.com/YuminosukeSato/gbtree/pkg/log"
)

// StopReason tells why the builder turned a node into a leaf.
type StopReason string

const (
	// StopMaxDepth: the node is deeper than max_depth.
	StopMaxDepth StopReason = "max_depth"
	// StopMinSamples: fewer rows than min_samples_split.
	StopMinSamples StopReason = "min_samples_split"
	// StopSplitThreshold: the best gain is below split_threshold.
	StopSplitThreshold StopReason = "split_threshold"
	// StopEmptyPartition: the best split would leave one side without rows.
	StopEmptyPartition StopReason = "empty_partition"
	// StopCanceled: the fit context was done before the node was built.
	StopCanceled StopReason = "canceled"
)

// EventKind distinguishes builder events.
type EventKind int

const (
	// EventLeaf is emitted for every leaf.
	EventLeaf EventKind = iota
	// EventSplit is emitted for every split, before its children are built.
	EventSplit
)

func (k EventKind) String() string {
	if k == EventSplit {
		return "split"
	}
	return "leaf"
}

// Event describes one builder decision. Leaf events carry Reason and Value;
// split events carry Feature, Threshold, Gain and LossReduction.
type Event struct {
	Kind    EventKind
	Reason  StopReason
	Depth   int
	Samples int

	Feature       string
	Threshold     float64
	Gain          float64
	LossReduction float64

	Value float64
}

// Observer receives builder events. Events never change what gets built.
// With n_jobs > 1, OnEvent may be called from several goroutines.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) {
	f(e)
}

// LogObserver writes builder events to a structured logger.
type LogObserver struct {
	logger log.Logger
}

// NewLogObserver creates a LogObserver. A nil logger uses the
// "tree.builder" component logger.
func NewLogObserver(logger log.Logger) *LogObserver {
	if logger == nil {
		logger = log.GetLoggerWithName("tree.builder")
	}
	return &LogObserver{logger: logger}
}

// OnEvent implements Observer.
func (o *LogObserver) OnEvent(e Event) {
	switch e.Kind {
	case EventSplit:
		o.logger.Debug("Split chosen",
			log.DepthKey, e.Depth,
			log.SamplesKey, e.Samples,
			log.FeatureKey, e.Feature,
			log.ThresholdKey, e.Threshold,
			log.GainKey, e.Gain,
			log.LossReductionKey, e.LossReduction,
		)
	default:
		o.logger.Debug("Leaf created",
			log.DepthKey, e.Depth,
			log.SamplesKey, e.Samples,
			log.StopReasonKey, string(e.Reason),
			log.GainKey, e.Gain,
			log.LeafValueKey, e.Value,
		)
	}
}
