package tree

import (
	"context"

	"github.com/YuminosukeSato/gbtree/core/parallel"
	"github.com/YuminosukeSato/gbtree/pkg/errors"
)

// builder grows one tree. It holds no per-node state, so the two subtrees of
// a split can be built concurrently.
type builder struct {
	ctx      context.Context
	params   Params
	names    []string
	observer Observer
	pool     *parallel.Pool
}

func newBuilder(ctx context.Context, params Params, names []string, observer Observer) *builder {
	b := &builder{ctx: ctx, params: params, names: names, observer: observer}
	if params.NJobs != 1 {
		b.pool = parallel.NewPool(params.workers())
	}
	return b
}

// build returns the subtree for the rows of d at the given depth. Stopping
// rules are checked in order: cancellation, depth, row count, split search,
// gain floor and finally empty partitions. The largest distinct value is
// always a candidate that sends every row left; such a split would only add a
// right leaf no training row reaches, so the node becomes a leaf instead.
func (b *builder) build(d *dataset, depth int) (*Node, error) {
	g, h := d.sums()

	if b.ctx.Err() != nil {
		return b.leaf(d, depth, g, h, StopCanceled, 0)
	}
	if depth > b.params.MaxDepth {
		return b.leaf(d, depth, g, h, StopMaxDepth, 0)
	}
	if d.len() < b.params.MinSamplesSplit {
		return b.leaf(d, depth, g, h, StopMinSamples, 0)
	}

	best, err := findBestSplit(d, b.names, g, h, b.params.Lambda)
	if err != nil {
		return nil, err
	}
	if best.Gain < b.params.SplitThreshold {
		return b.leaf(d, depth, g, h, StopSplitThreshold, best.Gain)
	}

	left, right := d.partition(best.feature, best.Threshold)
	if left.len() == 0 || right.len() == 0 {
		return b.leaf(d, depth, g, h, StopEmptyPartition, best.Gain)
	}

	b.emit(Event{
		Kind:          EventSplit,
		Depth:         depth,
		Samples:       d.len(),
		Feature:       best.Feature,
		Threshold:     best.Threshold,
		Gain:          best.Gain,
		LossReduction: lossReduction(best.Gain, b.params.Gamma),
	})

	var leftNode *Node
	wait := b.pool.Go(func() error {
		var err error
		leftNode, err = b.build(left, depth+1)
		return err
	})
	rightNode, rightErr := b.build(right, depth+1)
	if err := wait(); err != nil {
		return nil, err
	}
	if rightErr != nil {
		return nil, rightErr
	}

	return &Node{
		Kind:      SplitNode,
		Feature:   best.Feature,
		Threshold: best.Threshold,
		Left:      leftNode,
		Right:     rightNode,
		Gain:      best.Gain,
		Samples:   d.len(),
		Depth:     depth,
		feature:   best.feature,
	}, nil
}

func (b *builder) leaf(d *dataset, depth int, g, h float64, reason StopReason, gain float64) (*Node, error) {
	value := leafValue(g, h, b.params.Lambda)
	if err := errors.CheckScalar("leaf value", value); err != nil {
		return nil, errors.Wrapf(err, "hessian sum %g at depth %d cancels lambda", h, depth)
	}

	b.emit(Event{
		Kind:    EventLeaf,
		Reason:  reason,
		Depth:   depth,
		Samples: d.len(),
		Gain:    gain,
		Value:   value,
	})
	return &Node{Kind: LeafNode, Value: value, Gain: gain, Samples: d.len(), Depth: depth}, nil
}

func (b *builder) emit(e Event) {
	if b.observer != nil {
		b.observer.OnEvent(e)
	}
}
