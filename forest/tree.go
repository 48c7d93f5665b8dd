package forest

import (
	"fmt"
)

const (
	// Leaf is the child index both children of a leaf node point to.
	Leaf = -1
	// UndefinedThreshold is the threshold carried by leaf nodes. Internal
	// nodes always carry a real split threshold instead.
	UndefinedThreshold = -2.0
	// UndefinedFeature is the feature index carried by leaf nodes.
	UndefinedFeature = -2
)

/*
Tree represents a fitted binary decision tree in array form: node i is
described by the i-th element of every slice, and node 0 is the root.

Internal nodes send samples whose value for Feature[i] is lower or equal
to Threshold[i] to ChildrenLeft[i], and the rest to ChildrenRight[i].
Leaf nodes have both children set to Leaf, their threshold set to
UndefinedThreshold and a Value vector with one weight per class.
*/
type Tree struct {
	ChildrenLeft  []int       `json:"childrenLeft" yaml:"childrenLeft"`
	ChildrenRight []int       `json:"childrenRight" yaml:"childrenRight"`
	Feature       []int       `json:"feature" yaml:"feature"`
	Threshold     []float64   `json:"threshold" yaml:"threshold"`
	Value         [][]float64 `json:"value" yaml:"value"`
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int {
	return len(t.ChildrenLeft)
}

// IsLeaf returns whether the node with the given index is a leaf.
func (t *Tree) IsLeaf(node int) bool {
	return t.ChildrenLeft[node] == Leaf && t.ChildrenRight[node] == Leaf
}

// LeafCount returns the number of leaf nodes in the tree.
func (t *Tree) LeafCount() int {
	var count int
	for i := range t.ChildrenLeft {
		if t.IsLeaf(i) {
			count++
		}
	}
	return count
}

// InternalCount returns the number of internal (split) nodes in the tree.
func (t *Tree) InternalCount() int {
	return t.NodeCount() - t.LeafCount()
}

/*
Predict takes a slice with a value per feature and returns the leaf
the values reach when traversing the tree from its root, along with
the prediction for that leaf. It returns an error if the values
cannot be routed through the tree.
*/
func (t *Tree) Predict(values []float64) (LeafPrediction, error) {
	n := 0
	for steps := 0; !t.IsLeaf(n); steps++ {
		if steps >= t.NodeCount() {
			return LeafPrediction{}, fmt.Errorf("predicting sample: loop detected at node %d", n)
		}
		f := t.Feature[n]
		if f < 0 || f >= len(values) {
			return LeafPrediction{}, fmt.Errorf("predicting sample: node %d splits on feature %d, sample has %d values", n, f, len(values))
		}
		if values[f] <= t.Threshold[n] {
			n = t.ChildrenLeft[n]
		} else {
			n = t.ChildrenRight[n]
		}
	}
	return NewLeafPrediction(n, t.Value[n])
}

/*
validate checks the structure of the tree against the number of features
and classes of its forest and returns a StructuralError for every problem
found, or nil if there are none.
*/
func (t *Tree) validate(tree, numFeatures, numClasses int) []error {
	var errs []error
	fail := func(node int, format string, a ...interface{}) {
		errs = append(errs, &StructuralError{Tree: tree, Node: node, Reason: fmt.Sprintf(format, a...)})
	}
	n := t.NodeCount()
	if n == 0 {
		fail(-1, "tree has no nodes")
		return errs
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		fail(-1, "inconsistent node arrays: %d left children, %d right children, %d features, %d thresholds, %d values",
			n, len(t.ChildrenRight), len(t.Feature), len(t.Threshold), len(t.Value))
		return errs
	}
	parents := make([]int, n)
	for i := range parents {
		parents[i] = -1
	}
	for i := 0; i < n; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == Leaf || r == Leaf {
			if l != r {
				fail(i, "only one child set (left %d, right %d)", l, r)
				continue
			}
			if t.Threshold[i] != UndefinedThreshold {
				fail(i, "leaf carries threshold %v instead of the undefined sentinel", t.Threshold[i])
			}
			if err := validateValue(t.Value[i], numClasses); err != nil {
				fail(i, "%v", err)
			}
			continue
		}
		if t.Threshold[i] == UndefinedThreshold {
			fail(i, "internal node carries the undefined threshold sentinel")
		}
		if f := t.Feature[i]; f < 0 || f >= numFeatures {
			fail(i, "split feature index %d out of range [0, %d)", f, numFeatures)
		}
		for _, c := range []int{l, r} {
			switch {
			case c <= 0 || c >= n:
				fail(i, "child index %d out of range (0, %d)", c, n)
			case parents[c] != -1:
				fail(i, "child %d already has parent %d", c, parents[c])
			default:
				parents[c] = i
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	visited := make([]bool, n)
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visited[i] = true
		if !t.IsLeaf(i) {
			stack = append(stack, t.ChildrenLeft[i], t.ChildrenRight[i])
		}
	}
	for i, v := range visited {
		if !v {
			fail(i, "node not reachable from the root")
		}
	}
	return errs
}

func validateValue(value []float64, numClasses int) error {
	if len(value) == 0 {
		return fmt.Errorf("leaf has no probability vector")
	}
	if len(value) != numClasses {
		return fmt.Errorf("leaf probability vector has %d values, forest has %d classes", len(value), numClasses)
	}
	var sum float64
	for _, v := range value {
		if v < 0 {
			return fmt.Errorf("leaf probability vector has negative value %v", v)
		}
		sum += v
	}
	if sum <= 0 {
		return fmt.Errorf("leaf probability vector adds up to %v", sum)
	}
	return nil
}
