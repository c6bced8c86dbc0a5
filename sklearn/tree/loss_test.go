package tree

import (
	"testing"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLeastSquaresLoss(t *testing.T) {
	loss := LeastSquaresLoss()
	assert.Equal(t, "least_squares", loss.Name())
	assert.Equal(t, 1.5, loss.Gradient(1, 2.5))
	assert.Equal(t, -2.0, loss.Gradient(2, 0))
	assert.Equal(t, 1.0, loss.Hessian(2, 0))
}

func TestWithGradients(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
	})
	y := mat.NewVecDense(3, []float64{1, 2, 3})
	pred := mat.NewVecDense(3, []float64{0, 2, 5})

	frame, err := WithGradients(X, []string{"a", "b"}, y, pred, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "g", "h"}, frame.Columns)
	rows, cols := frame.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, []float64{2, 20, 0, 1}, mat.Row(nil, 1, frame.Data))
	assert.Equal(t, []float64{-1, 0, 2}, mat.Col(nil, 2, frame.Data))
	assert.Equal(t, []float64{1, 1, 1}, mat.Col(nil, 3, frame.Data))

	// The input matrix is copied, not aliased.
	X.Set(0, 0, 100)
	assert.Equal(t, 1.0, frame.Data.At(0, 0))
}

func TestWithGradients_Errors(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{1, 2})
	y := mat.NewVecDense(2, nil)

	tests := []struct {
		name    string
		X       mat.Matrix
		columns []string
		y, pred mat.Vector
		target  interface{}
	}{
		{name: "missing pred", X: X, columns: []string{"a"}, y: y, target: new(*errors.ValueError)},
		{name: "column count", X: X, columns: []string{"a", "b"}, y: y, pred: y, target: new(*errors.DimensionError)},
		{name: "label length", X: X, columns: []string{"a"}, y: mat.NewVecDense(3, nil), pred: y, target: new(*errors.DimensionError)},
		{name: "pred length", X: X, columns: []string{"a"}, y: y, pred: mat.NewVecDense(1, nil), target: new(*errors.DimensionError)},
		{name: "no rows", X: zeroRows(1), columns: []string{"a"}, y: y, pred: y, target: new(*errors.DegenerateDataError)},
		{name: "reserved column", X: X, columns: []string{"g"}, y: y, pred: y, target: new(*errors.SchemaError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WithGradients(tt.X, tt.columns, tt.y, tt.pred, LeastSquaresLoss())
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "got %v", err)
		})
	}
}

func TestGBTree_BoostingRounds(t *testing.T) {
	frame, y := randomFrame(t, 400, 13)
	rows, cols := frame.Dims()
	X := frame.Data.(interface {
		Slice(i, k, j, l int) mat.Matrix
	}).Slice(0, rows, 0, cols-2)
	names := frame.Columns[:cols-2]

	pred := mat.NewVecDense(rows, nil)
	reg := NewGBTree(WithMaxDepth(3), WithSplitThreshold(0), WithLambda(1))

	var losses []float64
	for round := 0; round < 5; round++ {
		train, err := reg.Gradients(X, names, y, pred)
		require.NoError(t, err)
		require.NoError(t, reg.Fit(train, y))

		update, err := reg.Predict(train)
		require.NoError(t, err)
		pred.AddScaledVec(pred, 0.5, update)

		var sse float64
		for i := 0; i < rows; i++ {
			d := y.AtVec(i) - pred.AtVec(i)
			sse += d * d
		}
		losses = append(losses, sse)
	}

	for i := 1; i < len(losses); i++ {
		assert.Less(t, losses[i], losses[i-1], "round %d", i)
	}
}
