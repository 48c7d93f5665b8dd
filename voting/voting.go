/*
Package voting generates the ensemble voting table: the mapping from
every possible tuple of per-tree predicted classes to one final class.
*/
package voting

import (
	"fmt"
	"math"
)

// DefaultMaxEntries bounds the size of generated voting tables.
const DefaultMaxEntries = 1 << 20

// Entry maps the classes predicted by each tree, in tree order, to the
// final class. Classes are 0-based.
type Entry struct {
	Classes []int
	Result  int
}

// Table is a complete voting table for a number of trees and classes.
type Table struct {
	NumTrees   int
	NumClasses int
	Entries    []Entry
}

// TooManyEntriesError is returned when the voting table would exceed the
// configured number of entries.
type TooManyEntriesError struct {
	NumTrees   int
	NumClasses int
	Max        int
}

func (e *TooManyEntriesError) Error() string {
	return fmt.Sprintf("voting table for %d trees and %d classes exceeds %d entries", e.NumTrees, e.NumClasses, e.Max)
}

/*
Generate takes the number of trees and classes, a tie-break policy and
the maximum number of entries allowed, and returns the voting table with
one entry for each of the numClasses^numTrees tuples, in lexicographic
order (the class of tree 0 varies slowest).

The result for a tuple is the class with the most votes. When several
classes share the most votes (with three trees, when all three disagree)
the policy picks one of them.
*/
func Generate(numTrees, numClasses int, p Policy, maxEntries int) (*Table, error) {
	if numTrees <= 0 || numClasses <= 0 {
		return nil, fmt.Errorf("cannot generate voting table for %d trees and %d classes", numTrees, numClasses)
	}
	size := math.Pow(float64(numClasses), float64(numTrees))
	if size > float64(maxEntries) {
		return nil, &TooManyEntriesError{numTrees, numClasses, maxEntries}
	}
	t := &Table{NumTrees: numTrees, NumClasses: numClasses, Entries: make([]Entry, 0, int(size))}
	tuple := make([]int, numTrees)
	counts := make([]int, numClasses)
	for {
		classes := append([]int(nil), tuple...)
		t.Entries = append(t.Entries, Entry{Classes: classes, Result: resolve(classes, counts, p)})
		i := numTrees - 1
		for ; i >= 0; i-- {
			tuple[i]++
			if tuple[i] < numClasses {
				break
			}
			tuple[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return t, nil
}

// Resolve returns the final class for a tuple of per-tree classes.
func Resolve(tuple []int, numClasses int, p Policy) int {
	return resolve(tuple, make([]int, numClasses), p)
}

// Tied returns, in ascending order, the classes sharing the most votes in
// the tuple. Any policy resolves the tuple to one of them.
func Tied(tuple []int, numClasses int) []int {
	return tied(tuple, make([]int, numClasses))
}

// tied uses counts as scratch space, one slot per class, and leaves it
// zeroed.
func tied(tuple []int, counts []int) []int {
	best := 0
	for _, c := range tuple {
		counts[c]++
		if counts[c] > best {
			best = counts[c]
		}
	}
	var result []int
	for c, n := range counts {
		if n == best {
			result = append(result, c)
		}
		counts[c] = 0
	}
	return result
}

func resolve(tuple []int, counts []int, p Policy) int {
	t := tied(tuple, counts)
	if len(t) == 1 {
		return t[0]
	}
	return p.Resolve(tuple, t)
}

/*
Lookup returns the entry for the given tuple of per-tree classes or false
if the tuple does not belong to the table.
*/
func (t *Table) Lookup(classes []int) (Entry, bool) {
	if len(classes) != t.NumTrees {
		return Entry{}, false
	}
	var i int
	for _, c := range classes {
		if c < 0 || c >= t.NumClasses {
			return Entry{}, false
		}
		i = i*t.NumClasses + c
	}
	return t.Entries[i], true
}
