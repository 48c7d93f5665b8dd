/*
Package forest provides the representation of a fitted decision forest
classifier: an ordered set of decision trees over the same numeric
features that predict the same set of classes.
*/
package forest

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

/*
Forest is an ensemble of decision trees. Features holds the feature names
in the canonical order used throughout compilation, and Classes the class
labels, which must form a contiguous integer range. The position of a label
in Classes is the index of its weight in every leaf value vector.

A Forest is not modified once validated: compiling a changed model
requires a new Forest.
*/
type Forest struct {
	Features []string `json:"features" yaml:"features"`
	Classes  []int    `json:"classes" yaml:"classes"`
	Trees    []*Tree  `json:"trees" yaml:"trees"`
}

// NumClasses returns the number of classes the forest predicts.
func (f *Forest) NumClasses() int {
	return len(f.Classes)
}

// NumTrees returns the number of trees in the forest.
func (f *Forest) NumTrees() int {
	return len(f.Trees)
}

// FeatureIndex returns the index of the feature with the given name, or -1.
func (f *Forest) FeatureIndex(name string) int {
	for i, fn := range f.Features {
		if fn == name {
			return i
		}
	}
	return -1
}

/*
Validate checks the forest is structurally sound: it has features, a
contiguous set of class labels and at least one tree, and every tree
passes structural validation. All problems found are returned combined
into one error, each of them a *StructuralError.
*/
func (f *Forest) Validate() error {
	var errs []error
	fail := func(format string, a ...interface{}) {
		errs = append(errs, &StructuralError{Tree: -1, Node: -1, Reason: fmt.Sprintf(format, a...)})
	}
	if len(f.Features) == 0 {
		fail("forest has no features")
	}
	seen := make(map[string]bool, len(f.Features))
	for _, fn := range f.Features {
		if seen[fn] {
			fail("duplicate feature name %q", fn)
		}
		seen[fn] = true
	}
	if len(f.Classes) == 0 {
		fail("forest has no classes")
	} else {
		classes := append([]int(nil), f.Classes...)
		sort.Ints(classes)
		for i := 1; i < len(classes); i++ {
			if classes[i] != classes[i-1]+1 {
				fail("class labels %v are not a contiguous integer range", f.Classes)
				break
			}
		}
	}
	if len(f.Trees) == 0 {
		fail("forest has no trees")
	}
	for i, t := range f.Trees {
		if t == nil {
			errs = append(errs, &StructuralError{Tree: i, Node: -1, Reason: "missing tree"})
			continue
		}
		errs = append(errs, t.validate(i, len(f.Features), len(f.Classes))...)
	}
	return multierr.Combine(errs...)
}

/*
Predict takes a slice with a value per feature and returns the prediction
of every tree in the forest for it, in tree order, or an error.
*/
func (f *Forest) Predict(values []float64) ([]LeafPrediction, error) {
	if len(values) != len(f.Features) {
		return nil, fmt.Errorf("predicting sample: got %d values for %d features", len(values), len(f.Features))
	}
	result := make([]LeafPrediction, 0, len(f.Trees))
	for i, t := range f.Trees {
		p, err := t.Predict(values)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %v", i, err)
		}
		result = append(result, p)
	}
	return result, nil
}

/*
StructuralError is the error returned when a forest or one of its trees
is malformed. Tree and Node are -1 when the problem is not specific to a
tree or a node.
*/
type StructuralError struct {
	Tree   int
	Node   int
	Reason string
}

func (se *StructuralError) Error() string {
	switch {
	case se.Tree < 0:
		return fmt.Sprintf("invalid forest: %s", se.Reason)
	case se.Node < 0:
		return fmt.Sprintf("invalid tree %d: %s", se.Tree, se.Reason)
	default:
		return fmt.Sprintf("invalid tree %d: node %d: %s", se.Tree, se.Node, se.Reason)
	}
}
