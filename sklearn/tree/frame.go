package tree

import (
	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Reserved trailing columns of a training frame.
const (
	GradientColumn = "g"
	HessianColumn  = "h"
)

// Frame is a matrix with named columns. Training frames end with the
// GradientColumn and HessianColumn columns; every column before them is a
// feature. Prediction frames only need the features the tree references.
type Frame struct {
	Data    mat.Matrix
	Columns []string
}

// NewFrame creates a Frame after checking that the names fit the matrix.
func NewFrame(data mat.Matrix, columns []string) (*Frame, error) {
	f := &Frame{Data: data, Columns: columns}
	if _, err := f.columnIndex("NewFrame"); err != nil {
		return nil, err
	}
	return f, nil
}

// Dims returns the number of rows and columns.
func (f *Frame) Dims() (rows, cols int) {
	return f.Data.Dims()
}

// columnIndex validates the frame and maps every column name to its position.
func (f *Frame) columnIndex(op string) (map[string]int, error) {
	if f == nil || f.Data == nil {
		return nil, errors.NewValueError(op, "frame has no data")
	}
	_, cols := f.Data.Dims()
	if len(f.Columns) != cols {
		return nil, errors.NewDimensionError(op, cols, len(f.Columns), 1)
	}

	index := make(map[string]int, cols)
	var dup []string
	for j, name := range f.Columns {
		if _, ok := index[name]; ok {
			dup = append(dup, name)
			continue
		}
		index[name] = j
	}
	if len(dup) > 0 {
		return nil, errors.NewSchemaError(op, "duplicate column names", dup...)
	}
	return index, nil
}

// dataset is a view over the rows of a training frame. Column values are
// extracted once at the root; partitions only narrow the row index list, so
// labels stay aligned with their rows.
type dataset struct {
	values [][]float64 // per feature, indexed by original row
	g, h   []float64
	labels mat.Vector // optional
	rows   []int
}

func newTrainingSet(op string, X *Frame, y mat.Vector) (*dataset, []string, error) {
	if _, err := X.columnIndex(op); err != nil {
		return nil, nil, err
	}

	rows, cols := X.Dims()
	if cols < 2 || X.Columns[cols-2] != GradientColumn || X.Columns[cols-1] != HessianColumn {
		return nil, nil, errors.NewSchemaError(op, "training frame must end with the gradient and hessian columns",
			GradientColumn, HessianColumn)
	}
	if rows == 0 {
		return nil, nil, errors.NewDegenerateDataError(op, rows, "cannot fit a tree on an empty frame")
	}
	if y != nil && y.Len() != rows {
		return nil, nil, errors.NewDimensionError(op, rows, y.Len(), 0)
	}

	names := make([]string, cols-2)
	copy(names, X.Columns[:cols-2])

	d := &dataset{
		values: make([][]float64, len(names)),
		g:      mat.Col(nil, cols-2, X.Data),
		h:      mat.Col(nil, cols-1, X.Data),
		labels: y,
		rows:   make([]int, rows),
	}
	if err := errors.CheckNumericalStability(op+": "+GradientColumn, d.g); err != nil {
		return nil, nil, err
	}
	if err := errors.CheckNumericalStability(op+": "+HessianColumn, d.h); err != nil {
		return nil, nil, err
	}
	for j := range names {
		d.values[j] = mat.Col(nil, j, X.Data)
		// Thresholds are feature values and must survive JSON encoding.
		if err := errors.CheckNumericalStability(op+": "+names[j], d.values[j]); err != nil {
			return nil, nil, err
		}
	}
	for i := range d.rows {
		d.rows[i] = i
	}
	return d, names, nil
}

func (d *dataset) len() int {
	return len(d.rows)
}

// sums returns G and H over the rows of the view, accumulated in row order.
func (d *dataset) sums() (g, h float64) {
	for _, r := range d.rows {
		g += d.g[r]
		h += d.h[r]
	}
	return g, h
}

func (d *dataset) subset(rows []int) *dataset {
	return &dataset{values: d.values, g: d.g, h: d.h, labels: d.labels, rows: rows}
}

// labelValues returns the labels of the rows in the view, or nil when the
// frame was fitted without labels.
func (d *dataset) labelValues() []float64 {
	if d.labels == nil {
		return nil
	}
	out := make([]float64, len(d.rows))
	for i, r := range d.rows {
		out[i] = d.labels.AtVec(r)
	}
	return out
}
