/*
Package featurerange builds the range tables that map the value domain
of each feature to per-tree bit codes.

For a feature, the integer-truncated thresholds of all splits on it,
across every tree, cut the domain [0, maxValue] into contiguous ranges.
Every sample value in a range falls on the same side of every split on
the feature, so a range can be labelled, for each tree, with one bit per
split of that tree on the feature: 0 when the range lies at or below the
split threshold, 1 when it lies above.
*/
package featurerange

import (
	"fmt"
	"sort"

	"github.com/pbanos/arbor/bitvec"
	"github.com/pbanos/arbor/forest"
	"github.com/pbanos/arbor/split"
)

// DefaultMaxValue is the largest value of a 16-bit match field.
const DefaultMaxValue = 65535

// Range is a contiguous interval [Start, End] of a feature's domain
// along with the feature code every tree assigns to it.
type Range struct {
	Start uint64
	End   uint64
	Codes []bitvec.Vector
}

// Table is the range table of one feature: its ranges in ascending order.
type Table struct {
	Feature int
	Ranges  []Range
	// Widths holds the number of splits on the feature for every tree,
	// which is also the width of that tree's codes.
	Widths []int
}

/*
Encode takes a feature index, the splits of every tree in the forest
(splits on other features are ignored), the number of trees and the
largest value the match field for the feature can hold, and returns the
range table for the feature.

A feature without splits gets a single range covering the whole domain
with empty codes. Thresholds whose truncation lies outside [0, maxValue)
cannot be represented in the field and are reported as a
*forest.StructuralError.
*/
func Encode(feature int, splits []split.Split, numTrees int, maxValue uint64) (*Table, error) {
	fSplits := split.OnFeature(splits, feature)
	perTree := make([][]split.Split, numTrees)
	for _, s := range fSplits {
		if s.Tree < 0 || s.Tree >= numTrees {
			return nil, fmt.Errorf("encoding feature %d: split %v belongs to tree out of range [0, %d)", feature, s, numTrees)
		}
		b := s.Bound()
		if b < 0 || uint64(b) >= maxValue {
			return nil, &forest.StructuralError{
				Tree:   s.Tree,
				Node:   s.Node,
				Reason: fmt.Sprintf("threshold %v on feature %d outside the field domain [0, %d]", s.Threshold, feature, maxValue),
			}
		}
		perTree[s.Tree] = append(perTree[s.Tree], s)
	}
	table := &Table{Feature: feature, Widths: make([]int, numTrees)}
	for i, ts := range perTree {
		table.Widths[i] = len(ts)
	}
	var start uint64
	for _, b := range bounds(fSplits) {
		table.Ranges = append(table.Ranges, newRange(start, b, perTree))
		start = b + 1
	}
	table.Ranges = append(table.Ranges, newRange(start, maxValue, perTree))
	return table, nil
}

// bounds returns the distinct truncated thresholds of the splits in
// ascending order.
func bounds(splits []split.Split) []uint64 {
	seen := make(map[uint64]bool)
	var result []uint64
	for _, s := range splits {
		b := uint64(s.Bound())
		if !seen[b] {
			seen[b] = true
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func newRange(start, end uint64, perTree [][]split.Split) Range {
	r := Range{Start: start, End: end, Codes: make([]bitvec.Vector, len(perTree))}
	for i, ts := range perTree {
		code := bitvec.New(len(ts))
		for j, s := range ts {
			code[j] = end > uint64(s.Bound())
		}
		r.Codes[i] = code
	}
	return r
}

/*
Lookup returns the index of the range containing the given value, or -1
if the value lies above the last range.
*/
func (t *Table) Lookup(value uint64) int {
	i := sort.Search(len(t.Ranges), func(i int) bool { return t.Ranges[i].End >= value })
	if i == len(t.Ranges) {
		return -1
	}
	return i
}
