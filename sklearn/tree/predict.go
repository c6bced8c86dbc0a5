package tree

import (
	"github.com/YuminosukeSato/gbtree/core/parallel"
	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// predictParallelThreshold is the batch size below which prediction stays on
// the calling goroutine.
const predictParallelThreshold = 1000

// traverse walks from n to a leaf. value returns the row's value for the
// feature at the given position in the tree's feature names.
func (n *Node) traverse(value func(feature int) float64) float64 {
	node := n
	for node.Kind == SplitNode {
		if value(node.feature) > node.Threshold {
			node = node.Right
		} else {
			node = node.Left
		}
	}
	return node.Value
}

// featureColumns maps each feature position of the tree onto a column of X.
// Features the tree never splits on map to -1; a referenced feature missing
// from X is a SchemaError.
func featureColumns(op string, root *Node, names []string, X *Frame) ([]int, error) {
	index, err := X.columnIndex(op)
	if err != nil {
		return nil, err
	}

	cols := make([]int, len(names))
	for i, name := range names {
		if j, ok := index[name]; ok {
			cols[i] = j
		} else {
			cols[i] = -1
		}
	}

	var missing []string
	for _, name := range root.referencedFeatures() {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaError(op, "frame lacks features used by the tree", missing...)
	}
	return cols, nil
}

// predictFrame predicts every row of X in order. Large batches are split
// across workers; each worker writes a disjoint range of the result.
func predictFrame(root *Node, names []string, X *Frame, workers int) (*mat.VecDense, error) {
	cols, err := featureColumns("Predict", root, names, X)
	if err != nil {
		return nil, err
	}

	rows, _ := X.Dims()
	if rows == 0 {
		return &mat.VecDense{}, nil
	}

	out := mat.NewVecDense(rows, nil)
	parallel.ParallelizeWithThreshold(rows, predictParallelThreshold, workers, func(start, end int) {
		for i := start; i < end; i++ {
			out.SetVec(i, root.traverse(func(f int) float64 {
				return X.Data.At(i, cols[f])
			}))
		}
	})
	return out, nil
}

// predictRow predicts a single row given as feature name to value.
func predictRow(root *Node, names []string, row map[string]float64) (float64, error) {
	var missing []string
	for _, name := range root.referencedFeatures() {
		if _, ok := row[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return 0, errors.NewSchemaError("PredictRow", "row lacks features used by the tree", missing...)
	}

	return root.traverse(func(f int) float64 {
		return row[names[f]]
	}), nil
}
