package split

import "fmt"

/*
Order is the fixed total order over the splits of one tree that assigns
each split a bit position in the tree's codeword. Splits are grouped by
feature in feature index order and sorted by ascending threshold within
a feature, so the bits for one feature are contiguous and line up with
the feature code the range tables produce for that tree.
*/
type Order struct {
	splits    []Split
	positions map[int]int
	starts    []int
}

/*
NewOrder takes the splits of one tree and the number of features in the
forest and returns their Order. It returns an error if the splits belong
to different trees or test a feature out of range.
*/
func NewOrder(splits []Split, numFeatures int) (Order, error) {
	o := Order{
		positions: make(map[int]int, len(splits)),
		starts:    make([]int, numFeatures+1),
	}
	for i, s := range splits {
		if s.Feature < 0 || s.Feature >= numFeatures {
			return Order{}, fmt.Errorf("split %v tests feature %d out of range [0, %d)", s, s.Feature, numFeatures)
		}
		if s.Tree != splits[0].Tree {
			return Order{}, fmt.Errorf("split %v does not belong to tree %d", s, splits[0].Tree)
		}
		if _, ok := o.positions[s.Node]; ok {
			return Order{}, fmt.Errorf("split %v appears twice", splits[i])
		}
		o.positions[s.Node] = -1
	}
	for f := 0; f < numFeatures; f++ {
		o.starts[f] = len(o.splits)
		o.splits = append(o.splits, OnFeature(splits, f)...)
	}
	o.starts[numFeatures] = len(o.splits)
	for p, s := range o.splits {
		o.positions[s.Node] = p
	}
	return o, nil
}

// Len returns the number of splits in the order, the codeword width.
func (o Order) Len() int {
	return len(o.splits)
}

// Position returns the bit position of the split at the given node and
// whether the node holds a split of the tree.
func (o Order) Position(node int) (int, bool) {
	p, ok := o.positions[node]
	return p, ok
}

// Span returns the position of the first split on the given feature and
// the number of splits of the tree on it.
func (o Order) Span(feature int) (start, width int) {
	return o.starts[feature], o.starts[feature+1] - o.starts[feature]
}

// Splits returns the splits in order.
func (o Order) Splits() []Split {
	return o.splits
}
