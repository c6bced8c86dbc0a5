package tree

// NodeKind tags a Node as a leaf or a split.
type NodeKind int

const (
	// LeafNode holds a fitted value.
	LeafNode NodeKind = iota
	// SplitNode routes rows on Feature <= Threshold.
	SplitNode
)

func (k NodeKind) String() string {
	switch k {
	case LeafNode:
		return "leaf"
	case SplitNode:
		return "split"
	default:
		return "unknown"
	}
}

// Node is one node of a fitted tree. A split node exclusively owns two
// non-nil children: Left for rows with Feature <= Threshold, Right for the
// rest. A fitted tree is never mutated, so nodes can be read concurrently.
type Node struct {
	Kind NodeKind

	// Value is the fitted output of a leaf.
	Value float64

	Feature   string
	Threshold float64
	Left      *Node
	Right     *Node

	// Gain of the split, Samples that reached the node and its Depth (root = 1)
	// are kept for reporting.
	Gain    float64
	Samples int
	Depth   int

	feature int // position of Feature in the tree's feature names
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Kind == LeafNode
}

// Walk visits n and its descendants in pre-order, left before right.
func (n *Node) Walk(fn func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		if cur.Kind == SplitNode {
			stack = append(stack, cur.Right, cur.Left)
		}
	}
}

// NumNodes returns the number of nodes in the subtree rooted at n.
func (n *Node) NumNodes() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}

// NumLeaves returns the number of leaves in the subtree rooted at n.
func (n *Node) NumLeaves() int {
	count := 0
	n.Walk(func(node *Node) {
		if node.IsLeaf() {
			count++
		}
	})
	return count
}

// Height returns the number of levels in the subtree rooted at n.
func (n *Node) Height() int {
	if n.IsLeaf() {
		return 1
	}
	return 1 + max(n.Left.Height(), n.Right.Height())
}

// Equal reports whether two trees have the same shape, features, thresholds
// and leaf values.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind {
		return false
	}
	if n.IsLeaf() {
		return n.Value == other.Value
	}
	return n.Feature == other.Feature &&
		n.Threshold == other.Threshold &&
		n.Left.Equal(other.Left) &&
		n.Right.Equal(other.Right)
}

// referencedFeatures returns the feature names used by split nodes, in
// pre-order of first use.
func (n *Node) referencedFeatures() []string {
	seen := make(map[string]bool)
	var out []string
	n.Walk(func(node *Node) {
		if node.Kind == SplitNode && !seen[node.Feature] {
			seen[node.Feature] = true
			out = append(out, node.Feature)
		}
	})
	return out
}
