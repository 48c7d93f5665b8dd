/*
Package foresttest provides forests to use in tests of packages
working with decision forests.
*/
package foresttest

import (
	"math/rand"

	"github.com/pbanos/arbor/forest"
)

/*
ThreeTrees returns a forest of three trees over features f0 and f1
predicting classes 0, 1 and 2:

	tree 0: f0 <= 10.5 ? class 0 : (f1 <= 25.2 ? class 1 : class 2)
	tree 1: f1 <= 25.9 ? (f0 <= 10.1 ? class 0 : class 1) : class 2
	tree 2: a single leaf predicting class 2
*/
func ThreeTrees() *forest.Forest {
	return &forest.Forest{
		Features: []string{"f0", "f1"},
		Classes:  []int{0, 1, 2},
		Trees: []*forest.Tree{
			{
				ChildrenLeft:  []int{1, -1, 3, -1, -1},
				ChildrenRight: []int{2, -1, 4, -1, -1},
				Feature:       []int{0, -2, 1, -2, -2},
				Threshold:     []float64{10.5, -2, 25.2, -2, -2},
				Value:         [][]float64{{5, 5, 7}, {5, 0, 0}, {0, 5, 7}, {0, 4, 1}, {0, 1, 6}},
			},
			{
				ChildrenLeft:  []int{1, 2, -1, -1, -1},
				ChildrenRight: []int{4, 3, -1, -1, -1},
				Feature:       []int{1, 0, -2, -2, -2},
				Threshold:     []float64{25.9, 10.1, -2, -2, -2},
				Value:         [][]float64{{4, 4, 2}, {4, 4, 0}, {3, 1, 0}, {1, 3, 0}, {0, 0, 2}},
			},
			SingleLeaf([]float64{1, 2, 3}),
		},
	}
}

// SingleLeaf returns a tree made of one leaf with the given value vector.
func SingleLeaf(value []float64) *forest.Tree {
	return &forest.Tree{
		ChildrenLeft:  []int{-1},
		ChildrenRight: []int{-1},
		Feature:       []int{-2},
		Threshold:     []float64{-2},
		Value:         [][]float64{value},
	}
}

/*
Random returns a valid forest with the given number of trees, features and
classes whose trees are grown at random from the given seed up to the given
depth. Thresholds lie in [0, 1000) and nodes are numbered in pre-order, like
the trees exported by common training libraries.
*/
func Random(seed int64, trees, features, classes, depth int) *forest.Forest {
	r := rand.New(rand.NewSource(seed))
	f := &forest.Forest{Classes: make([]int, classes)}
	for i := 0; i < features; i++ {
		f.Features = append(f.Features, string(rune('a'+i%26))+string(rune('0'+i/26)))
	}
	for i := range f.Classes {
		f.Classes[i] = i
	}
	for i := 0; i < trees; i++ {
		t := &forest.Tree{}
		grow(r, t, features, classes, depth)
		f.Trees = append(f.Trees, t)
	}
	return f
}

func grow(r *rand.Rand, t *forest.Tree, features, classes, depth int) int {
	n := len(t.ChildrenLeft)
	t.ChildrenLeft = append(t.ChildrenLeft, forest.Leaf)
	t.ChildrenRight = append(t.ChildrenRight, forest.Leaf)
	t.Feature = append(t.Feature, forest.UndefinedFeature)
	t.Threshold = append(t.Threshold, forest.UndefinedThreshold)
	value := make([]float64, classes)
	for i := range value {
		value[i] = float64(r.Intn(20))
	}
	value[r.Intn(classes)] += 1
	t.Value = append(t.Value, value)
	if depth == 0 || (n > 0 && r.Intn(4) == 0) {
		return n
	}
	t.Feature[n] = r.Intn(features)
	t.Threshold[n] = float64(r.Intn(100000)) / 100
	t.ChildrenLeft[n] = grow(r, t, features, classes, depth-1)
	t.ChildrenRight[n] = grow(r, t, features, classes, depth-1)
	return n
}
