package tree

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// graphFormats maps file extensions onto graphviz output formats.
var graphFormats = map[string]graphviz.Format{
	"dot": graphviz.XDOT,
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
}

// GraphFormat returns the graphviz format for a name such as "svg" or a file
// extension such as ".png".
func GraphFormat(name string) (graphviz.Format, error) {
	format, ok := graphFormats[strings.ToLower(strings.TrimPrefix(name, "."))]
	if !ok {
		return "", errors.NewValueError("GraphFormat", fmt.Sprintf("unsupported graph format %q", name))
	}
	return format, nil
}

func nodeLabel(n *Node) string {
	if n.IsLeaf() {
		return fmt.Sprintf("value = %.6g\nsamples = %d", n.Value, n.Samples)
	}
	return fmt.Sprintf("%s <= %.6g\ngain = %.6g\nsamples = %d", n.Feature, n.Threshold, n.Gain, n.Samples)
}

func drawNode(g *cgraph.Graph, n *Node, id *int, parent *cgraph.Node) error {
	current, err := g.CreateNode(fmt.Sprint(*id))
	if err != nil {
		return errors.Wrap(err, "failed to create graph node")
	}
	*id++

	if parent != nil {
		if _, err := g.CreateEdge("", parent, current); err != nil {
			return errors.Wrap(err, "failed to create graph edge")
		}
	}

	current.Set("label", nodeLabel(n))
	if n.IsLeaf() {
		current.Set("shape", "box")
		return nil
	}
	if err := drawNode(g, n.Left, id, current); err != nil {
		return err
	}
	return drawNode(g, n.Right, id, current)
}

// DrawGraph builds a graphviz graph of the fitted tree. The caller must Close
// both returned values.
func (t *GBTree) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph, error) {
	if err := t.state.RequireFitted(modelName, "DrawGraph"); err != nil {
		return nil, nil, err
	}
	root := t.Root()

	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		gv.Close()
		return nil, nil, errors.Wrap(err, "failed to create graph")
	}

	id := 0
	if err := drawNode(graph, root, &id, nil); err != nil {
		graph.Close()
		gv.Close()
		return nil, nil, err
	}
	return gv, graph, nil
}

// Render writes the fitted tree to w in the given graphviz format.
func (t *GBTree) Render(w io.Writer, format graphviz.Format) error {
	gv, graph, err := t.DrawGraph()
	if err != nil {
		return err
	}
	defer gv.Close()
	defer graph.Close()

	if err := gv.Render(graph, format, w); err != nil {
		return errors.Wrap(err, "failed to render tree")
	}
	return nil
}

// RenderFile writes the fitted tree to path, choosing the format from the
// file extension.
func (t *GBTree) RenderFile(path string) error {
	format, err := GraphFormat(filepath.Ext(path))
	if err != nil {
		return err
	}

	gv, graph, err := t.DrawGraph()
	if err != nil {
		return err
	}
	defer gv.Close()
	defer graph.Close()

	if err := gv.RenderFilename(graph, format, path); err != nil {
		return errors.Wrapf(err, "failed to render tree to %s", path)
	}
	return nil
}
