package tree

import (
	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LossFunction supplies the per-row first and second derivatives of a
// boosting loss with respect to the current prediction.
type LossFunction interface {
	// Gradient returns dL/dpred for one row.
	Gradient(y, pred float64) float64

	// Hessian returns d²L/dpred² for one row.
	Hessian(y, pred float64) float64

	// Name identifies the loss in logs and saved configs.
	Name() string
}

type leastSquares struct{}

// LeastSquaresLoss returns the loss 0.5*(pred-y)², with g = pred-y and h = 1.
func LeastSquaresLoss() LossFunction {
	return leastSquares{}
}

func (leastSquares) Gradient(y, pred float64) float64 { return pred - y }
func (leastSquares) Hessian(_, _ float64) float64     { return 1 }
func (leastSquares) Name() string                     { return "least_squares" }

// WithGradients builds a training frame from the feature matrix X by
// appending the g and h columns computed by loss from the labels y and the
// current predictions pred. columns names the columns of X.
func WithGradients(X mat.Matrix, columns []string, y, pred mat.Vector, loss LossFunction) (*Frame, error) {
	if X == nil || y == nil || pred == nil {
		return nil, errors.NewValueError("WithGradients", "X, y and pred are required")
	}
	if loss == nil {
		loss = LeastSquaresLoss()
	}

	rows, cols := X.Dims()
	if rows == 0 {
		return nil, errors.NewDegenerateDataError("WithGradients", rows, "no rows")
	}
	if len(columns) != cols {
		return nil, errors.NewDimensionError("WithGradients", cols, len(columns), 1)
	}
	if y.Len() != rows {
		return nil, errors.NewDimensionError("WithGradients", rows, y.Len(), 0)
	}
	if pred.Len() != rows {
		return nil, errors.NewDimensionError("WithGradients", rows, pred.Len(), 0)
	}

	data := mat.NewDense(rows, cols+2, nil)
	if cols > 0 {
		data.Slice(0, rows, 0, cols).(*mat.Dense).Copy(X)
	}
	for i := 0; i < rows; i++ {
		yi, pi := y.AtVec(i), pred.AtVec(i)
		data.Set(i, cols, loss.Gradient(yi, pi))
		data.Set(i, cols+1, loss.Hessian(yi, pi))
	}

	names := make([]string, 0, cols+2)
	names = append(names, columns...)
	names = append(names, GradientColumn, HessianColumn)
	return NewFrame(data, names)
}
