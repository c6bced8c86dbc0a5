// Package gbtree provides the regression tree that serves as the weak learner
// of a second-order (xgboost-style) gradient boosting procedure.
//
// A tree is trained on a feature table augmented with each row's first and
// second order loss derivatives, the "g" and "h" columns. Every distinct
// value of every feature is evaluated exactly, so the fitted tree does not
// depend on binning or sampling.
//
// # Installation
//
//	go get github.com/YuminosukeSato/gbtree
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gbtree/sklearn/tree"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(6, 1, []float64{1, 2, 3, 4, 5, 6})
//	    y := mat.NewVecDense(6, []float64{1, 1, 1, -1, -1, -1})
//	    pred := mat.NewVecDense(6, nil)
//
//	    frame, err := tree.WithGradients(X, []string{"x"}, y, pred, tree.LeastSquaresLoss())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    reg := tree.NewGBTree(tree.WithMinSamplesSplit(2), tree.WithSplitThreshold(0))
//	    if err := reg.Fit(frame, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    step, err := reg.Predict(frame)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(step.T()))
//	}
//
// # Packages
//
//   - sklearn/tree: GBTree, split search, partitioning, prediction and persistence
//   - metrics: regression metrics (MSE, RMSE, MAE, R²)
//   - core/model: fitted-state tracking and JSON persistence
//   - core/parallel: worker pool and chunked fan-out
//   - pkg/errors: structured errors backed by cockroachdb/errors
//   - pkg/log: structured logging backed by zerolog
//   - cmd/gbtree: command line tool working on .npy files
//
// # Parallelism
//
// With n_jobs > 1 the two subtrees of a split are built concurrently and
// batches of more than 1000 rows are predicted across workers. Results are
// identical to the sequential ones.
//
// # License
//
// gbtree is released under the MIT License.
package gbtree
