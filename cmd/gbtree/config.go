package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"github.com/YuminosukeSato/gbtree/sklearn/tree"
)

// Config is the JSON file accepted by -config. Keys that are absent keep
// their defaults; flags given on the command line win over the file.
type Config struct {
	tree.Params

	Columns  []string `json:"columns"`
	LogLevel string   `json:"log_level"`
}

func defaultConfig() Config {
	return Config{Params: tree.DefaultParams(), LogLevel: "info"}
}

func decodeConfig(path string, out *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open config %s", path)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode config %s", path)
	}
	return nil
}

// options holds the flags shared by every subcommand.
type options struct {
	fs *flag.FlagSet

	config   string
	x        string
	y        string
	model    string
	out      string
	columns  string
	logLevel string

	maxDepth        int
	minSamplesSplit int
	splitThreshold  float64
	gamma           float64
	lambda          float64
	nJobs           int
}

func newOptions(name string) *options {
	o := &options{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	d := tree.DefaultParams()

	o.fs.StringVar(&o.config, "config", "", "JSON config file")
	o.fs.StringVar(&o.x, "x", "", "feature matrix (.npy, float64, rows x features)")
	o.fs.StringVar(&o.model, "model", "model.json", "model file")
	o.fs.StringVar(&o.columns, "columns", "", "comma separated feature names (default f0, f1, ...)")
	o.fs.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	o.fs.IntVar(&o.maxDepth, "max-depth", d.MaxDepth, "maximum depth of a split node, the root is depth 1")
	o.fs.IntVar(&o.minSamplesSplit, "min-samples-split", d.MinSamplesSplit, "minimum rows needed to split a node")
	o.fs.Float64Var(&o.splitThreshold, "split-threshold", d.SplitThreshold, "minimum gain needed to split a node")
	o.fs.Float64Var(&o.gamma, "gamma", d.Gamma, "gamma in the reported loss reduction")
	o.fs.Float64Var(&o.lambda, "lambda", d.Lambda, "L2 regularisation")
	o.fs.IntVar(&o.nJobs, "n-jobs", d.NJobs, "parallel workers, -1 for one per CPU")
	return o
}

// resolve loads the config file and applies every flag the user set.
func (o *options) resolve() (Config, error) {
	cfg := defaultConfig()
	if o.config != "" {
		if err := decodeConfig(o.config, &cfg); err != nil {
			return cfg, err
		}
	}

	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-depth":
			cfg.MaxDepth = o.maxDepth
		case "min-samples-split":
			cfg.MinSamplesSplit = o.minSamplesSplit
		case "split-threshold":
			cfg.SplitThreshold = o.splitThreshold
		case "gamma":
			cfg.Gamma = o.gamma
		case "lambda":
			cfg.Lambda = o.lambda
		case "n-jobs":
			cfg.NJobs = o.nJobs
		case "columns":
			cfg.Columns = splitColumns(o.columns)
		case "log-level":
			cfg.LogLevel = o.logLevel
		}
	})

	if cfg.Loss == nil {
		cfg.Loss = tree.LeastSquaresLoss()
	}
	return cfg, cfg.Validate()
}

func (o *options) require(names ...string) error {
	values := map[string]string{"x": o.x, "y": o.y, "model": o.model, "out": o.out}
	var missing []string
	for _, name := range names {
		if values[name] == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		return errors.Newf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return nil
}

func splitColumns(s string) []string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// featureNames returns cfg.Columns, or f0..f{n-1} when none were given.
func featureNames(cfg Config, n int) ([]string, error) {
	if len(cfg.Columns) == 0 {
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("f%d", i)
		}
		return names, nil
	}
	if len(cfg.Columns) != n {
		return nil, errors.NewDimensionError("columns", n, len(cfg.Columns), 1)
	}
	return cfg.Columns, nil
}
