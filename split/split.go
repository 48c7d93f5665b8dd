/*
Package split extracts the splits of decision trees and defines the
canonical order in which they are laid out as bits of table keys.
*/
package split

import (
	"fmt"
	"math"
	"sort"

	"github.com/pbanos/arbor/forest"
)

// Split is the test an internal node of a tree applies to samples.
type Split struct {
	Tree      int
	Node      int
	Feature   int
	Threshold float64
	Left      int
	Right     int
}

// Bound returns the threshold of the split truncated towards zero, the
// largest integer value the split still sends to its left child.
func (s Split) Bound() int64 {
	return int64(math.Trunc(s.Threshold))
}

func (s Split) String() string {
	return fmt.Sprintf("{tree %d node %d: feature %d <= %v}", s.Tree, s.Node, s.Feature, s.Threshold)
}

/*
Extract takes the index of a tree in its forest and the tree, and returns
the splits of its internal nodes in node index order. Leaf nodes are
skipped. It returns a *forest.StructuralError if the node arrays of the
tree are inconsistent.
*/
func Extract(tree int, t *forest.Tree) ([]Split, error) {
	n := t.NodeCount()
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n {
		return nil, &forest.StructuralError{Tree: tree, Node: -1, Reason: "inconsistent node arrays"}
	}
	var splits []Split
	for i := 0; i < n; i++ {
		if t.Threshold[i] == forest.UndefinedThreshold {
			if !t.IsLeaf(i) {
				return nil, &forest.StructuralError{Tree: tree, Node: i, Reason: "internal node carries the undefined threshold sentinel"}
			}
			continue
		}
		if t.IsLeaf(i) {
			return nil, &forest.StructuralError{Tree: tree, Node: i, Reason: "leaf carries a split threshold"}
		}
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l < 0 || l >= n || r < 0 || r >= n {
			return nil, &forest.StructuralError{Tree: tree, Node: i, Reason: fmt.Sprintf("child indexes (%d, %d) out of range", l, r)}
		}
		splits = append(splits, Split{
			Tree:      tree,
			Node:      i,
			Feature:   t.Feature[i],
			Threshold: t.Threshold[i],
			Left:      l,
			Right:     r,
		})
	}
	return splits, nil
}

/*
OnFeature returns the splits in the given slice that test the given
feature, sorted in canonical order: by ascending threshold, then by
tree and node index.
*/
func OnFeature(splits []Split, feature int) []Split {
	var result []Split
	for _, s := range splits {
		if s.Feature == feature {
			result = append(result, s)
		}
	}
	Sort(result)
	return result
}

// Sort sorts splits by ascending threshold, then by tree and node index.
func Sort(splits []Split) {
	sort.SliceStable(splits, func(i, j int) bool {
		a, b := splits[i], splits[j]
		if a.Threshold != b.Threshold {
			return a.Threshold < b.Threshold
		}
		if a.Tree != b.Tree {
			return a.Tree < b.Tree
		}
		return a.Node < b.Node
	})
}
