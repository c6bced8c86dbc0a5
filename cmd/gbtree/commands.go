package main

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/gbtree/metrics"
	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"github.com/YuminosukeSato/gbtree/pkg/log"
	"github.com/YuminosukeSato/gbtree/sklearn/tree"
	"gonum.org/v1/gonum/mat"
)

type command struct {
	name    string
	summary string
	run     func(args []string, stdout io.Writer) error
}

var commands = []command{
	{"train", "fit a tree and save it as JSON", runTrain},
	{"predict", "write predictions for a feature matrix", runPredict},
	{"score", "print MSE, RMSE, MAE and R2 for labelled data", runScore},
	{"plot", "draw predicted against actual values", runPlot},
}

// setup parses args, resolves the config and configures logging.
func setup(o *options, args []string) (Config, log.Logger, error) {
	if err := o.fs.Parse(args); err != nil {
		return Config{}, nil, err
	}
	cfg, err := o.resolve()
	if err != nil {
		return cfg, nil, err
	}
	if err := log.SetupLogger(cfg.LogLevel); err != nil {
		return cfg, nil, err
	}
	return cfg, log.GetLoggerWithName("cli." + o.fs.Name()), nil
}

func runTrain(args []string, stdout io.Writer) error {
	o := newOptions("train")
	var pred, graph string
	o.fs.StringVar(&o.y, "y", "", "labels (.npy); without it the last two columns of -x are g and h")
	o.fs.StringVar(&pred, "pred", "", "current ensemble predictions (.npy, default zeros)")
	o.fs.StringVar(&graph, "graph", "", "also render the tree to this file (.svg, .png, .jpg or .dot)")

	cfg, logger, err := setup(o, args)
	if err != nil {
		return err
	}
	if err := o.require("x", "model"); err != nil {
		return err
	}

	X, err := readMatrix(o.x)
	if err != nil {
		return err
	}
	rows, cols := X.Dims()
	if rows == 0 {
		return errors.NewDegenerateDataError("train", rows, o.x+" has no rows")
	}
	logger.Info("Loaded training data", log.PathKey, o.x, log.SamplesKey, rows)

	reg := tree.NewGBTree(tree.WithParams(cfg.Params))

	var (
		frame *tree.Frame
		y     *mat.VecDense
	)
	if o.y == "" {
		if cols < 2 {
			return errors.NewSchemaError("train", "without -y the matrix must end with g and h columns",
				tree.GradientColumn, tree.HessianColumn)
		}
		names, err := featureNames(cfg, cols-2)
		if err != nil {
			return err
		}
		columns := make([]string, 0, cols)
		columns = append(columns, names...)
		columns = append(columns, tree.GradientColumn, tree.HessianColumn)
		frame, err = tree.NewFrame(X, columns)
		if err != nil {
			return err
		}
	} else {
		if y, err = readVector(o.y); err != nil {
			return err
		}
		base := mat.NewVecDense(rows, nil)
		if pred != "" {
			if base, err = readVector(pred); err != nil {
				return err
			}
		}
		names, err := featureNames(cfg, cols)
		if err != nil {
			return err
		}
		if frame, err = reg.Gradients(X, names, y, base); err != nil {
			return err
		}
	}

	var labels mat.Vector
	if y != nil {
		labels = y
	}
	if err := reg.Fit(frame, labels); err != nil {
		return err
	}
	if err := reg.Save(o.model); err != nil {
		return err
	}
	logger.Info("Model saved", log.PathKey, o.model)

	root := reg.Root()
	fmt.Fprintf(stdout, "nodes=%d leaves=%d height=%d\n", root.NumNodes(), root.NumLeaves(), root.Height())

	if graph != "" {
		if err := reg.RenderFile(graph); err != nil {
			return err
		}
		logger.Info("Tree rendered", log.PathKey, graph)
	}
	return nil
}

// loadForPrediction loads the model and the feature frame named by o.
func loadForPrediction(o *options, cfg Config) (*tree.GBTree, *tree.Frame, error) {
	reg := tree.NewGBTree()
	if err := reg.Load(o.model); err != nil {
		return nil, nil, err
	}

	X, err := readMatrix(o.x)
	if err != nil {
		return nil, nil, err
	}
	_, cols := X.Dims()

	names := cfg.Columns
	if len(names) == 0 && cols == len(reg.FeatureNames()) {
		names = reg.FeatureNames()
	}
	if names, err = featureNames(Config{Columns: names}, cols); err != nil {
		return nil, nil, err
	}
	frame, err := tree.NewFrame(X, names)
	if err != nil {
		return nil, nil, err
	}
	return reg, frame, nil
}

func runPredict(args []string, stdout io.Writer) error {
	o := newOptions("predict")
	o.fs.StringVar(&o.out, "out", "predictions.npy", "output file (.npy)")

	cfg, logger, err := setup(o, args)
	if err != nil {
		return err
	}
	if err := o.require("x", "model", "out"); err != nil {
		return err
	}

	reg, frame, err := loadForPrediction(o, cfg)
	if err != nil {
		return err
	}
	pred, err := reg.Predict(frame)
	if err != nil {
		return err
	}
	if err := writeVector(o.out, pred); err != nil {
		return err
	}

	logger.Info("Predictions written",
		log.OperationKey, log.OperationPredict,
		log.PredsKey, pred.Len(),
		log.PathKey, o.out,
	)
	fmt.Fprintf(stdout, "predictions=%d\n", pred.Len())
	return nil
}

// Scores are the regression metrics printed by the score subcommand.
type Scores struct {
	MSE  float64
	RMSE float64
	MAE  float64
	R2   float64
}

func score(y, pred mat.Vector) (Scores, error) {
	var s Scores
	var err error
	if s.MSE, err = metrics.MSE(y, pred); err != nil {
		return s, err
	}
	if s.RMSE, err = metrics.RMSE(y, pred); err != nil {
		return s, err
	}
	if s.MAE, err = metrics.MAE(y, pred); err != nil {
		return s, err
	}
	if s.R2, err = metrics.R2Score(y, pred); err != nil {
		return s, err
	}
	return s, nil
}

func runScore(args []string, stdout io.Writer) error {
	o := newOptions("score")
	o.fs.StringVar(&o.y, "y", "", "labels (.npy)")

	cfg, logger, err := setup(o, args)
	if err != nil {
		return err
	}
	if err := o.require("x", "y", "model"); err != nil {
		return err
	}

	reg, frame, err := loadForPrediction(o, cfg)
	if err != nil {
		return err
	}
	y, err := readVector(o.y)
	if err != nil {
		return err
	}
	pred, err := reg.Predict(frame)
	if err != nil {
		return err
	}
	s, err := score(y, pred)
	if err != nil {
		return err
	}

	logger.Info("Model scored",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, y.Len(),
		log.LossKey, s.MSE,
		log.R2ScoreKey, s.R2,
	)
	fmt.Fprintf(stdout, "mse=%.6g rmse=%.6g mae=%.6g r2=%.6g\n", s.MSE, s.RMSE, s.MAE, s.R2)
	return nil
}

func runPlot(args []string, stdout io.Writer) error {
	o := newOptions("plot")
	o.fs.StringVar(&o.y, "y", "", "labels (.npy)")
	o.fs.StringVar(&o.out, "out", "predictions.png", "output image (.png, .svg or .pdf)")

	cfg, logger, err := setup(o, args)
	if err != nil {
		return err
	}
	if err := o.require("x", "y", "model", "out"); err != nil {
		return err
	}

	reg, frame, err := loadForPrediction(o, cfg)
	if err != nil {
		return err
	}
	y, err := readVector(o.y)
	if err != nil {
		return err
	}
	pred, err := reg.Predict(frame)
	if err != nil {
		return err
	}
	if err := plotPredictions(o.out, y, pred); err != nil {
		return err
	}

	logger.Info("Plot written", log.PathKey, o.out)
	fmt.Fprintf(stdout, "plot=%s\n", o.out)
	return nil
}
