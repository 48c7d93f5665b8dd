/*
Package pipeline models in software how the match pipeline classifies a
sample with the tables of a compiled program, so programs can be checked
against the forests they were compiled from.

A sample goes through the range table of every feature, which yields a
code per tree. The codes of a tree, concatenated in feature order, form
the key looked up in the tree's code table; the first entry whose
codeword matches the key under its mask gives the class of the tree. The
classes of all trees are finally looked up in the voting table.
*/
package pipeline

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/bitvec"
	"github.com/pbanos/arbor/codeword"
)

// ClassifyError represents an error classifying a sample
type ClassifyError string

func (ce ClassifyError) Error() string {
	return string(ce)
}

const (
	// ErrOutOfField is the error returned when a sample value cannot be
	// carried by a match field: it is negative, above the program's
	// maximum value or not a number.
	ErrOutOfField = ClassifyError("value outside the match field domain")
	// ErrNoMatch is the error returned when a key matches no entry of a
	// table. It cannot happen with the tables of a valid program.
	ErrNoMatch = ClassifyError("no table entry matches")
)

// Result holds the outcome of classifying a sample: the leaf and class
// each tree matched, and the final class from the voting table. Classes
// are 0-based indexes into the program classes.
type Result struct {
	Keys    []bitvec.Vector
	Leaves  []int
	Classes []int
	Final   int
}

/*
Classify takes a compiled program and a value per feature, in feature
order, and returns the classification the program's tables make of it.
Values are truncated to integers, as the match fields hold them.
*/
func Classify(p *arbor.Program, values []float64) (*Result, error) {
	if len(values) != len(p.Features) {
		return nil, fmt.Errorf("classifying sample: got %d values for %d features", len(values), len(p.Features))
	}
	codes := make([][]bitvec.Vector, p.NumTrees())
	for _, table := range p.FeatureTables {
		v := values[table.Feature]
		if math.IsNaN(v) || v < 0 || v >= float64(p.MaxValue)+1 {
			return nil, errors.Wrapf(ErrOutOfField, "feature %q value %v", p.Features[table.Feature], v)
		}
		i := table.Lookup(uint64(v))
		if i < 0 {
			return nil, errors.Wrapf(ErrNoMatch, "feature %q value %v", p.Features[table.Feature], v)
		}
		for t, c := range table.Ranges[i].Codes {
			codes[t] = append(codes[t], c)
		}
	}
	r := &Result{
		Keys:    make([]bitvec.Vector, p.NumTrees()),
		Leaves:  make([]int, p.NumTrees()),
		Classes: make([]int, p.NumTrees()),
	}
	for t, tp := range p.Trees {
		key := bitvec.Concat(codes[t]...)
		i := codeword.Match(tp.Entries, key)
		if i < 0 {
			return nil, errors.Wrapf(ErrNoMatch, "tree %d key %s", t, key)
		}
		r.Keys[t] = key
		r.Leaves[t] = tp.Entries[i].Path.Leaf()
		r.Classes[t] = tp.Entries[i].Prediction.Class
	}
	e, ok := p.Voting.Lookup(r.Classes)
	if !ok {
		return nil, errors.Wrapf(ErrNoMatch, "voting classes %v", r.Classes)
	}
	r.Final = e.Result
	return r, nil
}
