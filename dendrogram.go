package i4tb

// DendrogramNode is one node of the binary merge tree produced by
// agglomerative clustering. A node is either a leaf wrapping one original
// sample index, or an internal node owning exactly two children plus the
// height at which they were merged. A tree over n samples has exactly n
// leaves and n−1 internal nodes.
type DendrogramNode struct {
	// Left and Right are the merged children. Both nil for leaves.
	Left, Right *DendrogramNode

	// Height is the inter-cluster distance at which the children were
	// merged. 0 for leaves.
	Height float64

	// Leaf is the original sample index for leaves, -1 for internal nodes.
	Leaf int

	// Size is the number of leaves under this node (1 for leaves).
	Size int

	// ID numbers nodes in scipy linkage convention: leaves are 0..n-1,
	// internal nodes n..2n-2 in merge order.
	ID int
}

// IsLeaf reports whether the node wraps a single original sample.
func (n *DendrogramNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Leaves returns the original sample indices under this node, in tree order.
func (n *DendrogramNode) Leaves() []int {
	leaves := make([]int, 0, n.Size)
	return n.appendLeaves(leaves)
}

func (n *DendrogramNode) appendLeaves(leaves []int) []int {
	if n.IsLeaf() {
		return append(leaves, n.Leaf)
	}
	leaves = n.Left.appendLeaves(leaves)
	return n.Right.appendLeaves(leaves)
}
