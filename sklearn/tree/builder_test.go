package tree

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_SingleStepSplit(t *testing.T) {
	rec := &recorder{}
	reg := NewGBTree(
		WithMaxDepth(3),
		WithMinSamplesSplit(2),
		WithSplitThreshold(0),
		WithGamma(0),
		WithLambda(1),
		WithObserver(rec),
	)
	require.NoError(t, reg.Fit(stepFrame(t), stepLabels()))

	root := reg.Root()
	require.NotNil(t, root)
	require.Equal(t, SplitNode, root.Kind)
	assert.Equal(t, "f", root.Feature)
	assert.Equal(t, 5.0, root.Threshold)
	assert.Equal(t, 10, root.Samples)
	assert.Equal(t, 1, root.Depth)

	require.True(t, root.Left.IsLeaf())
	require.True(t, root.Right.IsLeaf())
	assert.Equal(t, -(-5.0)/(5+1), root.Left.Value)
	assert.Equal(t, -(5.0)/(5+1), root.Right.Value)
	assert.Equal(t, 3, root.NumNodes())
	assert.Equal(t, 2, root.NumLeaves())

	require.Len(t, rec.events, 3)
	split := rec.events[0]
	assert.Equal(t, EventSplit, split.Kind)
	assert.Equal(t, 1, split.Depth)
	assert.Equal(t, "f", split.Feature)
	assert.InDelta(t, 50.0/6, split.Gain, 1e-12)
	assert.InDelta(t, 25.0/6, split.LossReduction, 1e-12)

	for i, want := range []float64{5.0 / 6, -5.0 / 6} {
		leaf := rec.events[i+1]
		assert.Equal(t, EventLeaf, leaf.Kind)
		assert.Equal(t, StopEmptyPartition, leaf.Reason)
		assert.Equal(t, 2, leaf.Depth)
		assert.Equal(t, 5, leaf.Samples)
		assert.Equal(t, want, leaf.Value)
	}
}

func TestFit_MinSamplesSplitGivesSingleLeaf(t *testing.T) {
	rows := make([][]float64, 10)
	for i := range rows {
		rows[i] = []float64{float64(i), 1, 1}
	}
	rec := &recorder{}
	reg := NewGBTree(WithMinSamplesSplit(100), WithLambda(1), WithObserver(rec))
	require.NoError(t, reg.Fit(frameOf(t, []string{"f", "g", "h"}, rows...), nil))

	root := reg.Root()
	require.True(t, root.IsLeaf())
	assert.Equal(t, -10.0/11, root.Value)
	require.Len(t, rec.events, 1)
	assert.Equal(t, StopMinSamples, rec.events[0].Reason)
}

func TestFit_SplitThresholdAboveBestGain(t *testing.T) {
	rows := make([][]float64, 10)
	for i := range rows {
		g := -2.0
		if i >= 5 {
			g = 1
		}
		rows[i] = []float64{float64(i + 1), g, 1}
	}
	frame := frameOf(t, []string{"f", "g", "h"}, rows...)

	rec := &recorder{}
	reg := NewGBTree(WithSplitThreshold(100), WithMinSamplesSplit(2), WithObserver(rec))
	require.NoError(t, reg.Fit(frame, nil))

	root := reg.Root()
	require.True(t, root.IsLeaf())
	assert.Equal(t, 5.0/11, root.Value)
	require.Len(t, rec.events, 1)
	assert.Equal(t, StopSplitThreshold, rec.events[0].Reason)
	assert.InDelta(t, 100.0/6+25.0/6-25.0/11, rec.events[0].Gain, 1e-12)

	// The same data splits once the floor is lowered.
	require.NoError(t, reg.SetParams(map[string]interface{}{"split_threshold": 0}))
	require.NoError(t, reg.Fit(frame, nil))
	assert.False(t, reg.Root().IsLeaf())
}

func TestFit_MaxDepth(t *testing.T) {
	rec := &recorder{}
	reg := NewGBTree(WithMaxDepth(1), WithMinSamplesSplit(2), WithSplitThreshold(0), WithObserver(rec))
	frame, y := randomFrame(t, 100, 3)
	require.NoError(t, reg.Fit(frame, y))

	root := reg.Root()
	require.Equal(t, SplitNode, root.Kind)
	assert.Equal(t, 2, root.Height())
	for _, leaf := range rec.leaves() {
		assert.Equal(t, StopMaxDepth, leaf.Reason)
		assert.Equal(t, 2, leaf.Depth)
	}

	require.NoError(t, reg.SetParams(map[string]interface{}{"max_depth": 0}))
	require.NoError(t, reg.Fit(frame, y))
	assert.True(t, reg.Root().IsLeaf())
}

func TestFit_LeafFormulaAndPartitionCompleteness(t *testing.T) {
	frame, y := randomFrame(t, 300, 11)
	reg := NewGBTree(WithMaxDepth(5), WithMinSamplesSplit(4), WithSplitThreshold(0), WithLambda(2))
	require.NoError(t, reg.Fit(frame, y))

	root := reg.Root()
	require.False(t, root.IsLeaf())

	// Route every training row and group rows by the leaf they reach.
	rows, cols := frame.Dims()
	byLeaf := make(map[*Node][]int)
	for i := 0; i < rows; i++ {
		leaf := handRoute(root, frame, i)
		byLeaf[leaf] = append(byLeaf[leaf], i)
	}

	root.Walk(func(n *Node) {
		if n.IsLeaf() {
			members := byLeaf[n]
			require.Len(t, members, n.Samples)
			var g, h float64
			for _, i := range members {
				g += frame.Data.At(i, cols-2)
				h += frame.Data.At(i, cols-1)
			}
			assert.InDelta(t, -g/(h+2), n.Value, 1e-12)
			return
		}
		require.NotNil(t, n.Left)
		require.NotNil(t, n.Right)
		assert.Equal(t, n.Samples, n.Left.Samples+n.Right.Samples)
		assert.Greater(t, n.Left.Samples, 0)
		assert.Greater(t, n.Right.Samples, 0)
		assert.Equal(t, n.Depth+1, n.Left.Depth)
	})
	assert.Equal(t, rows, root.Samples)
}

func TestFit_Deterministic(t *testing.T) {
	frame, y := randomFrame(t, 400, 5)

	first := NewGBTree(WithMaxDepth(6), WithSplitThreshold(0))
	second := NewGBTree(WithMaxDepth(6), WithSplitThreshold(0))
	require.NoError(t, first.Fit(frame, y))
	require.NoError(t, second.Fit(frame, y))

	assert.True(t, first.Root().Equal(second.Root()))
	assert.Equal(t, Flatten(first.Root()), Flatten(second.Root()))
}

func TestFit_ParallelMatchesSequential(t *testing.T) {
	frame, y := randomFrame(t, 600, 9)

	sequential := NewGBTree(WithMaxDepth(7), WithSplitThreshold(0), WithNJobs(1))
	require.NoError(t, sequential.Fit(frame, y))

	for _, jobs := range []int{2, 4, -1} {
		var mu sync.Mutex
		count := 0
		observer := ObserverFunc(func(Event) {
			mu.Lock()
			count++
			mu.Unlock()
		})

		parallel := NewGBTree(WithMaxDepth(7), WithSplitThreshold(0), WithNJobs(jobs), WithObserver(observer))
		require.NoError(t, parallel.Fit(frame, y))
		assert.True(t, sequential.Root().Equal(parallel.Root()), "n_jobs=%d", jobs)
		assert.Equal(t, sequential.Root().NumNodes(), count, "n_jobs=%d", jobs)
	}
}

func TestFitContext_Canceled(t *testing.T) {
	t.Run("before the root", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rec := &recorder{}
		reg := NewGBTree(WithMinSamplesSplit(2), WithSplitThreshold(0), WithObserver(rec))
		require.NoError(t, reg.FitContext(ctx, stepFrame(t), nil))

		assert.True(t, reg.IsFitted())
		root := reg.Root()
		require.True(t, root.IsLeaf())
		assert.Equal(t, 0.0, root.Value)
		require.Len(t, rec.events, 1)
		assert.Equal(t, StopCanceled, rec.events[0].Reason)
	})

	t.Run("after the first split", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rec := &recorder{}
		observer := ObserverFunc(func(e Event) {
			rec.OnEvent(e)
			if e.Kind == EventSplit {
				cancel()
			}
		})
		frame, y := randomFrame(t, 200, 1)
		reg := NewGBTree(WithMaxDepth(8), WithSplitThreshold(0), WithObserver(observer))
		require.NoError(t, reg.FitContext(ctx, frame, y))

		root := reg.Root()
		require.Equal(t, SplitNode, root.Kind)
		assert.Equal(t, 3, root.NumNodes())
		leaves := rec.leaves()
		require.Len(t, leaves, 2)
		for _, leaf := range leaves {
			assert.Equal(t, StopCanceled, leaf.Reason)
		}

		// Canceled leaves still hold the Newton step of their rows.
		pred, err := reg.Predict(frame)
		require.NoError(t, err)
		assert.Equal(t, root.Left.Value, pred.AtVec(firstRowAtOrBelow(frame, root)))
	})
}

func TestFit_LabelsAreOptional(t *testing.T) {
	withLabels := NewGBTree(WithSplitThreshold(0), WithMinSamplesSplit(2))
	withoutLabels := NewGBTree(WithSplitThreshold(0), WithMinSamplesSplit(2))
	require.NoError(t, withLabels.Fit(stepFrame(t), stepLabels()))
	require.NoError(t, withoutLabels.Fit(stepFrame(t), nil))
	assert.True(t, withLabels.Root().Equal(withoutLabels.Root()))
}

func TestFit_RefitReplacesTree(t *testing.T) {
	reg := NewGBTree(WithSplitThreshold(0), WithMinSamplesSplit(2))
	require.NoError(t, reg.Fit(stepFrame(t), nil))
	assert.Equal(t, []string{"f"}, reg.FeatureNames())

	frame, y := randomFrame(t, 50, 2)
	require.NoError(t, reg.Fit(frame, y))
	assert.Equal(t, []string{"x1", "x2", "x3"}, reg.FeatureNames())
	assert.Contains(t, []string{"x1", "x2", "x3"}, reg.Root().Feature)
}

// handRoute follows the tree for row i of frame using the column names.
func handRoute(n *Node, frame *Frame, i int) *Node {
	for !n.IsLeaf() {
		col := -1
		for j, name := range frame.Columns {
			if name == n.Feature {
				col = j
			}
		}
		if frame.Data.At(i, col) > n.Threshold {
			n = n.Right
		} else {
			n = n.Left
		}
	}
	return n
}

func firstRowAtOrBelow(frame *Frame, split *Node) int {
	rows, _ := frame.Dims()
	for i := 0; i < rows; i++ {
		if handRoute(split, frame, i) == split.Left {
			return i
		}
	}
	return -1
}
