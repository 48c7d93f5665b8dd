package split

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor/forest"
	"github.com/pbanos/arbor/forest/foresttest"
)

func TestExtract(t *testing.T) {
	f := foresttest.ThreeTrees()
	splits, err := Extract(0, f.Trees[0])
	require.NoError(t, err)
	assert.Equal(t, []Split{
		{Tree: 0, Node: 0, Feature: 0, Threshold: 10.5, Left: 1, Right: 2},
		{Tree: 0, Node: 2, Feature: 1, Threshold: 25.2, Left: 3, Right: 4},
	}, splits)

	splits, err = Extract(2, f.Trees[2])
	require.NoError(t, err)
	assert.Empty(t, splits)
}

func TestExtractOneSplitPerInternalNode(t *testing.T) {
	f := foresttest.Random(11, 6, 4, 3, 7)
	for i, tr := range f.Trees {
		splits, err := Extract(i, tr)
		require.NoError(t, err)
		assert.Len(t, splits, tr.InternalCount())
		for j := 1; j < len(splits); j++ {
			assert.Less(t, splits[j-1].Node, splits[j].Node)
		}
	}
}

func TestExtractStructuralErrors(t *testing.T) {
	f := foresttest.ThreeTrees()
	tr := f.Trees[0]
	tr.Threshold = tr.Threshold[:3]
	_, err := Extract(0, tr)
	var se *forest.StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Tree)

	f = foresttest.ThreeTrees()
	f.Trees[1].Threshold[2] = 4
	_, err = Extract(1, f.Trees[1])
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Node)

	f = foresttest.ThreeTrees()
	f.Trees[1].ChildrenLeft[1] = 12
	_, err = Extract(1, f.Trees[1])
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Node)
}

func TestBoundTruncates(t *testing.T) {
	assert.Equal(t, int64(10), Split{Threshold: 10.99}.Bound())
	assert.Equal(t, int64(10), Split{Threshold: 10}.Bound())
	assert.Equal(t, int64(0), Split{Threshold: 0.5}.Bound())
}

func TestOnFeature(t *testing.T) {
	splits := []Split{
		{Tree: 1, Node: 3, Feature: 0, Threshold: 20},
		{Tree: 0, Node: 5, Feature: 1, Threshold: 1},
		{Tree: 0, Node: 9, Feature: 0, Threshold: 20},
		{Tree: 0, Node: 2, Feature: 0, Threshold: 5.5},
	}
	got := OnFeature(splits, 0)
	require.Len(t, got, 3)
	assert.Equal(t, 2, got[0].Node)
	assert.Equal(t, 9, got[1].Node)
	assert.Equal(t, 3, got[2].Node)
	assert.Empty(t, OnFeature(splits, 4))
}

func TestOrder(t *testing.T) {
	tr := &forest.Tree{
		ChildrenLeft:  []int{1, 2, -1, -1, 5, -1, 7, -1, -1},
		ChildrenRight: []int{4, 3, -1, -1, 6, -1, 8, -1, -1},
		Feature:       []int{1, 0, -2, -2, 1, -2, 0, -2, -2},
		Threshold:     []float64{50, 7, -2, -2, 80, -2, 3, -2, -2},
		Value:         make([][]float64, 9),
	}
	splits, err := Extract(4, tr)
	require.NoError(t, err)
	o, err := NewOrder(splits, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, o.Len())
	// feature 0: node 6 (3) then node 1 (7); feature 1: node 0 (50) then node 4 (80)
	for node, pos := range map[int]int{6: 0, 1: 1, 0: 2, 4: 3} {
		p, ok := o.Position(node)
		assert.True(t, ok)
		assert.Equal(t, pos, p, "node %d", node)
	}
	_, ok := o.Position(2)
	assert.False(t, ok)

	start, width := o.Span(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, width)
	start, width = o.Span(1)
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, width)
	start, width = o.Span(2)
	assert.Equal(t, 4, start)
	assert.Equal(t, 0, width)
}

func TestOrderErrors(t *testing.T) {
	_, err := NewOrder([]Split{{Tree: 0, Node: 0, Feature: 3}}, 2)
	assert.Error(t, err)
	_, err = NewOrder([]Split{{Tree: 0, Node: 0}, {Tree: 1, Node: 2}}, 2)
	assert.Error(t, err)
	_, err = NewOrder([]Split{{Tree: 0, Node: 0}, {Tree: 0, Node: 0}}, 2)
	assert.Error(t, err)
}

func TestEmptyOrder(t *testing.T) {
	o, err := NewOrder(nil, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, o.Len())
	_, width := o.Span(1)
	assert.Equal(t, 0, width)
}
