/*
Package leafpath enumerates the root-to-leaf paths of decision trees.
*/
package leafpath

import (
	"github.com/pbanos/arbor/forest"
)

// Path is a sequence of node indexes starting at the root of a tree and
// ending at one of its leaves.
type Path []int

// Leaf returns the index of the leaf the path ends at.
func (p Path) Leaf() int {
	return p[len(p)-1]
}

/*
Step is the decision taken at one internal node of a path: the node and
whether the path continues through its right child.
*/
type Step struct {
	Node  int
	Right bool
}

// Steps returns the decisions the path takes at every internal node in it.
func (p Path) Steps(t *forest.Tree) []Step {
	steps := make([]Step, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		steps = append(steps, Step{Node: p[i-1], Right: t.ChildrenRight[p[i-1]] == p[i]})
	}
	return steps
}

/*
Iterator yields the root-to-leaf paths of a tree one at a time. It keeps
a frontier of partial paths: a partial path ending at an internal node is
replaced by its extensions through the left and right children, and a
path ending at a leaf is removed from the frontier and yielded. Paths
come out in pre-order, left subtrees first.

The tree must have passed structural validation; the iterator does not
guard against cycles.
*/
type Iterator struct {
	tree     *forest.Tree
	frontier []Path
}

// New returns an Iterator over the paths of the given tree.
func New(t *forest.Tree) *Iterator {
	it := &Iterator{tree: t}
	it.Reset()
	return it
}

// Reset makes the iterator start over from the root of the tree.
func (it *Iterator) Reset() {
	it.frontier = it.frontier[:0]
	if it.tree.NodeCount() > 0 {
		it.frontier = append(it.frontier, Path{0})
	}
}

// Next returns the next path and true, or nil and false once every leaf
// has been reached.
func (it *Iterator) Next() (Path, bool) {
	for len(it.frontier) > 0 {
		last := len(it.frontier) - 1
		p := it.frontier[last]
		it.frontier = it.frontier[:last]
		n := p.Leaf()
		if it.tree.IsLeaf(n) {
			return p, true
		}
		it.frontier = append(it.frontier, extend(p, it.tree.ChildrenRight[n]), extend(p, it.tree.ChildrenLeft[n]))
	}
	return nil, false
}

// All returns every remaining path of the iterator.
func (it *Iterator) All() []Path {
	var result []Path
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		result = append(result, p)
	}
	return result
}

func extend(p Path, node int) Path {
	np := make(Path, len(p), len(p)+1)
	copy(np, p)
	return append(np, node)
}
