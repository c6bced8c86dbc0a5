package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"github.com/YuminosukeSato/gbtree/sklearn/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolve_Defaults(t *testing.T) {
	o := newOptions("train")
	require.NoError(t, o.fs.Parse(nil))

	cfg, err := o.resolve()
	require.NoError(t, err)
	d := tree.DefaultParams()
	assert.Equal(t, d.MaxDepth, cfg.MaxDepth)
	assert.Equal(t, d.SplitThreshold, cfg.SplitThreshold)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotNil(t, cfg.Loss)
}

func TestResolve_ConfigThenFlags(t *testing.T) {
	path := writeFile(t, "cfg.json", `{
		"max_depth": 3,
		"lambda": 0.5,
		"split_threshold": 2,
		"columns": ["a", "b"],
		"log_level": "debug"
	}`)

	o := newOptions("train")
	require.NoError(t, o.fs.Parse([]string{"-config", path, "-max-depth", "7", "-columns", "x, y ,z"}))

	cfg, err := o.resolve()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxDepth)
	assert.Equal(t, 0.5, cfg.Lambda)
	assert.Equal(t, 2.0, cfg.SplitThreshold)
	assert.Equal(t, tree.DefaultParams().MinSamplesSplit, cfg.MinSamplesSplit)
	assert.Equal(t, []string{"x", "y", "z"}, cfg.Columns)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  string
		args []string
	}{
		{name: "unknown key", cfg: `{"learning_rate": 0.1}`},
		{name: "malformed", cfg: `{"max_depth": `},
		{name: "invalid value", cfg: `{"n_jobs": 0}`},
		{name: "invalid flag value", cfg: `{}`, args: []string{"-max-depth", "-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOptions("train")
			args := append([]string{"-config", writeFile(t, "cfg.json", tt.cfg)}, tt.args...)
			require.NoError(t, o.fs.Parse(args))
			_, err := o.resolve()
			assert.Error(t, err)
		})
	}

	o := newOptions("train")
	require.NoError(t, o.fs.Parse([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}))
	_, err := o.resolve()
	assert.Error(t, err)
}

func TestFeatureNames(t *testing.T) {
	names, err := featureNames(Config{}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"f0", "f1", "f2"}, names)

	names, err = featureNames(Config{Columns: []string{"a", "b"}}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	_, err = featureNames(Config{Columns: []string{"a"}}, 2)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestRequire(t *testing.T) {
	o := newOptions("score")
	o.model = ""
	err := o.require("x", "y", "model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-x, -y, -model")

	o.x, o.y, o.model = "a", "b", "c"
	assert.NoError(t, o.require("x", "y", "model"))
}
