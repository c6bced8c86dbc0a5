package tree

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"github.com/goccy/go-graphviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    graphviz.Format
		wantErr bool
	}{
		{in: "svg", want: graphviz.SVG},
		{in: ".png", want: graphviz.PNG},
		{in: "JPG", want: graphviz.JPG},
		{in: "dot", want: graphviz.XDOT},
		{in: ".gif", wantErr: true},
	}
	for _, tt := range tests {
		got, err := GraphFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNodeLabel(t *testing.T) {
	reg := fittedStepTree(t)
	root := reg.Root()
	assert.Contains(t, nodeLabel(root), "f <= 5")
	assert.Contains(t, nodeLabel(root), "samples = 10")
	assert.Contains(t, nodeLabel(root.Left), "value = 0.833333")
}

func TestRender(t *testing.T) {
	reg := fittedStepTree(t)

	var buf bytes.Buffer
	require.NoError(t, reg.Render(&buf, graphviz.XDOT))
	assert.Contains(t, buf.String(), "digraph")

	path := filepath.Join(t.TempDir(), "tree.svg")
	require.NoError(t, reg.RenderFile(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_Errors(t *testing.T) {
	var buf bytes.Buffer
	err := NewGBTree().Render(&buf, graphviz.SVG)
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	reg := fittedStepTree(t)
	assert.Error(t, reg.RenderFile(filepath.Join(t.TempDir(), "tree.bmp")))
}
