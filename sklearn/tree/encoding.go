package tree

import (
	"encoding/json"
	"fmt"

	"github.com/YuminosukeSato/gbtree/core/model"
	"github.com/YuminosukeSato/gbtree/pkg/errors"
)

// FlatNode is the persisted form of a Node. Children are referenced by their
// index in the node list.
type FlatNode struct {
	ID        int     `json:"id"`
	Kind      string  `json:"kind"`
	Value     float64 `json:"value,omitempty"`
	Feature   string  `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Gain      float64 `json:"gain,omitempty"`
	Samples   int     `json:"samples"`
	Depth     int     `json:"depth"`
}

// Flatten lays the tree out in pre-order; the root is at index 0.
func Flatten(root *Node) []FlatNode {
	var nodes []FlatNode
	var visit func(n *Node) int
	visit = func(n *Node) int {
		id := len(nodes)
		nodes = append(nodes, FlatNode{
			ID:      id,
			Kind:    n.Kind.String(),
			Gain:    n.Gain,
			Samples: n.Samples,
			Depth:   n.Depth,
		})
		if n.IsLeaf() {
			nodes[id].Value = n.Value
			return id
		}
		nodes[id].Feature = n.Feature
		nodes[id].Threshold = n.Threshold
		left := visit(n.Left)
		right := visit(n.Right)
		nodes[id].Left, nodes[id].Right = left, right
		return id
	}
	visit(root)
	return nodes
}

// Unflatten rebuilds the tree rooted at nodes[root]. Every node must be
// reachable exactly once from the root and every split feature must be one of
// names. Violations wrap ErrCorruptModel.
func Unflatten(nodes []FlatNode, root int, names []string) (*Node, error) {
	corrupt := func(format string, args ...interface{}) error {
		return errors.NewModelError("Unflatten", fmt.Sprintf(format, args...), errors.ErrCorruptModel)
	}

	if len(nodes) == 0 {
		return nil, corrupt("no nodes")
	}
	position := make(map[string]int, len(names))
	for i, name := range names {
		position[name] = i
	}

	visited := make([]bool, len(nodes))
	var build func(id int) (*Node, error)
	build = func(id int) (*Node, error) {
		if id < 0 || id >= len(nodes) {
			return nil, corrupt("node index %d out of range", id)
		}
		if visited[id] {
			return nil, corrupt("node %d referenced more than once", id)
		}
		visited[id] = true

		fn := nodes[id]
		if fn.ID != id {
			return nil, corrupt("node at index %d has id %d", id, fn.ID)
		}
		n := &Node{Gain: fn.Gain, Samples: fn.Samples, Depth: fn.Depth}
		switch fn.Kind {
		case LeafNode.String():
			n.Kind = LeafNode
			n.Value = fn.Value
			return n, nil
		case SplitNode.String():
		default:
			return nil, corrupt("node %d has unknown kind %q", id, fn.Kind)
		}

		f, ok := position[fn.Feature]
		if !ok {
			return nil, corrupt("node %d splits on unknown feature %q", id, fn.Feature)
		}
		n.Kind = SplitNode
		n.Feature = fn.Feature
		n.Threshold = fn.Threshold
		n.feature = f

		var err error
		if n.Left, err = build(fn.Left); err != nil {
			return nil, err
		}
		if n.Right, err = build(fn.Right); err != nil {
			return nil, err
		}
		return n, nil
	}

	tree, err := build(root)
	if err != nil {
		return nil, err
	}
	for id, ok := range visited {
		if !ok {
			return nil, corrupt("node %d is unreachable from the root", id)
		}
	}
	return tree, nil
}

type treeJSON struct {
	Params       Params           `json:"params"`
	Loss         string           `json:"loss,omitempty"`
	State        model.ModelState `json:"state"`
	FeatureNames []string         `json:"feature_names"`
	Root         int              `json:"root"`
	Nodes        []FlatNode       `json:"nodes"`
}

// MarshalJSON encodes the hyperparameters and the fitted tree.
func (t *GBTree) MarshalJSON() ([]byte, error) {
	if err := t.state.RequireFitted(modelName, "MarshalJSON"); err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	doc := treeJSON{
		Params:       t.params,
		State:        t.state.State(),
		FeatureNames: t.featureNames,
		Root:         0,
		Nodes:        Flatten(t.root),
	}
	if t.params.Loss != nil {
		doc.Loss = t.params.Loss.Name()
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores a tree encoded by MarshalJSON. The configured loss
// and observer are kept.
func (t *GBTree) UnmarshalJSON(data []byte) error {
	var doc treeJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "failed to decode GBTree")
	}
	if err := doc.Params.Validate(); err != nil {
		return err
	}
	root, err := Unflatten(doc.Nodes, doc.Root, doc.FeatureNames)
	if err != nil {
		return err
	}

	if t.state == nil {
		t.state = model.NewStateManager()
	}

	t.mu.Lock()
	loss := t.params.Loss
	if loss == nil {
		loss = LeastSquaresLoss()
	}
	t.params = doc.Params
	t.params.Loss = loss
	t.root = root
	t.featureNames = doc.FeatureNames
	t.mu.Unlock()

	t.state.SetState(model.ModelState{
		Fitted:    true,
		NFeatures: len(doc.FeatureNames),
		NSamples:  doc.State.NSamples,
	})
	return nil
}
