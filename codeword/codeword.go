/*
Package codeword encodes the leaves of a decision tree as ternary
(codeword, mask) pairs over the tree's split order.

A sample reaches a leaf when, at every split on the leaf's path, it goes
the way the path goes. Placing the outcome of every split of the tree at
its position in the split order gives a key per sample; the leaf's
codeword holds the outcomes its path requires and its mask selects just
those positions, leaving every other split as don't-care.
*/
package codeword

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/pbanos/arbor/bitvec"
	"github.com/pbanos/arbor/forest"
	"github.com/pbanos/arbor/leafpath"
	"github.com/pbanos/arbor/split"
)

// Entry is the ternary encoding of one leaf of a tree.
type Entry struct {
	Path       leafpath.Path
	Code       bitvec.Vector
	Mask       bitvec.Vector
	Prediction forest.LeafPrediction
}

// UnorderedSplitError is returned when a path goes through a node that
// has no position in the split order of its tree.
type UnorderedSplitError struct {
	Node int
}

func (e *UnorderedSplitError) Error() string {
	return fmt.Sprintf("node %d has no position in the split order", e.Node)
}

/*
Build takes a tree, its split order and an iterator over its paths and
returns an entry per path, in the order the iterator yields them. It
returns an *UnorderedSplitError if a path goes through a split missing
from the order and forest.ErrEmptyValue if a leaf has no weight.
*/
func Build(t *forest.Tree, order split.Order, paths *leafpath.Iterator) ([]Entry, error) {
	var entries []Entry
	for p, ok := paths.Next(); ok; p, ok = paths.Next() {
		e, err := build(t, order, p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func build(t *forest.Tree, order split.Order, p leafpath.Path) (Entry, error) {
	e := Entry{
		Path: p,
		Code: bitvec.New(order.Len()),
		Mask: bitvec.New(order.Len()),
	}
	for _, step := range p.Steps(t) {
		pos, ok := order.Position(step.Node)
		if !ok {
			return Entry{}, &UnorderedSplitError{Node: step.Node}
		}
		e.Mask[pos] = true
		e.Code[pos] = step.Right
	}
	pred, err := forest.NewLeafPrediction(p.Leaf(), t.Value[p.Leaf()])
	if err != nil {
		return Entry{}, errors.Wrapf(err, "leaf %d", p.Leaf())
	}
	e.Prediction = pred
	return e, nil
}

/*
Match returns the index of the first entry whose codeword matches the
given key under its mask, or -1 if none does.
*/
func Match(entries []Entry, key bitvec.Vector) int {
	for i, e := range entries {
		if bitvec.Match(key, e.Code, e.Mask) {
			return i
		}
	}
	return -1
}
