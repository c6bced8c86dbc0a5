package tree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// stepFrame is ten rows of one feature f = 1..10 whose gradient is -1 up to
// f = 5 and +1 after, with unit hessians.
func stepFrame(t *testing.T) *Frame {
	t.Helper()
	data := mat.NewDense(10, 3, nil)
	for i := 0; i < 10; i++ {
		f := float64(i + 1)
		g := -1.0
		if f > 5 {
			g = 1
		}
		data.SetRow(i, []float64{f, g, 1})
	}
	frame, err := NewFrame(data, []string{"f", "g", "h"})
	require.NoError(t, err)
	return frame
}

// stepLabels are the labels whose least-squares gradients at a zero
// prediction match stepFrame.
func stepLabels() *mat.VecDense {
	y := mat.NewVecDense(10, nil)
	for i := 0; i < 10; i++ {
		if i < 5 {
			y.SetVec(i, 1)
		} else {
			y.SetVec(i, -1)
		}
	}
	return y
}

// randomFrame builds a reproducible frame with three features, one of which
// takes few distinct values so that ties are exercised.
func randomFrame(t *testing.T, rows int, seed int64) (*Frame, *mat.VecDense) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(rows, 3, nil)
	y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		x1 := rng.Float64() * 10
		x2 := float64(rng.Intn(4))
		x3 := rng.NormFloat64()
		X.SetRow(i, []float64{x1, x2, x3})
		y.SetVec(i, 3*x1-2*x2+0.5*x3+rng.NormFloat64())
	}
	frame, err := WithGradients(X, []string{"x1", "x2", "x3"}, y, mat.NewVecDense(rows, nil), LeastSquaresLoss())
	require.NoError(t, err)
	return frame, y
}

// trainingSet builds the internal view used by the builder.
func trainingSet(t *testing.T, frame *Frame, y mat.Vector) (*dataset, []string) {
	t.Helper()
	d, names, err := newTrainingSet("test", frame, y)
	require.NoError(t, err)
	return d, names
}

// zeroRows is a matrix with columns but no rows, which mat.Dense cannot
// represent.
type zeroRows int

func (z zeroRows) Dims() (int, int) { return 0, int(z) }

func (z zeroRows) At(_, _ int) float64 { panic("zeroRows has no elements") }

func (z zeroRows) T() mat.Matrix { return mat.Transpose{Matrix: z} }

// recorder collects builder events.
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) leaves() []Event {
	var out []Event
	for _, e := range r.events {
		if e.Kind == EventLeaf {
			out = append(out, e)
		}
	}
	return out
}
