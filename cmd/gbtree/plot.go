package main

import (
	"math"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// plotPredictions saves a scatter plot of pred against y with the identity
// line for reference. The image format follows the file extension.
func plotPredictions(path string, y, pred mat.Vector) error {
	if y.Len() != pred.Len() {
		return errors.NewDimensionError("plot", y.Len(), pred.Len(), 0)
	}

	pts := make(plotter.XYs, y.Len())
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range pts {
		pts[i].X = y.AtVec(i)
		pts[i].Y = pred.AtVec(i)
		lo = math.Min(lo, math.Min(pts[i].X, pts[i].Y))
		hi = math.Max(hi, math.Max(pts[i].X, pts[i].Y))
	}

	p := plot.New()
	p.Title.Text = "Predicted vs actual"
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "failed to build scatter plot")
	}
	identity := plotter.NewFunction(func(x float64) float64 { return x })
	identity.XMin, identity.XMax = lo, hi
	identity.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(scatter, identity)
	p.Legend.Add("rows", scatter)
	p.Legend.Add("y = x", identity)

	if err := p.Save(5*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save plot to %s", path)
	}
	return nil
}
