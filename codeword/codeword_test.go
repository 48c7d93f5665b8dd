package codeword

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor/bitvec"
	"github.com/pbanos/arbor/forest"
	"github.com/pbanos/arbor/forest/foresttest"
	"github.com/pbanos/arbor/leafpath"
	"github.com/pbanos/arbor/split"
)

func buildTree(t *testing.T, f *forest.Forest, i int) []Entry {
	splits, err := split.Extract(i, f.Trees[i])
	require.NoError(t, err)
	order, err := split.NewOrder(splits, len(f.Features))
	require.NoError(t, err)
	entries, err := Build(f.Trees[i], order, leafpath.New(f.Trees[i]))
	require.NoError(t, err)
	return entries
}

func TestBuild(t *testing.T) {
	f := foresttest.ThreeTrees()
	entries := buildTree(t, f, 0)
	require.Len(t, entries, 3)
	expected := []struct {
		code, mask string
		class      int
	}{
		{"00", "10", 0},
		{"10", "11", 1},
		{"11", "11", 2},
	}
	for i, e := range expected {
		assert.Equal(t, e.code, entries[i].Code.String(), "entry %d", i)
		assert.Equal(t, e.mask, entries[i].Mask.String(), "entry %d", i)
		assert.Equal(t, e.class, entries[i].Prediction.Class, "entry %d", i)
	}

	// tree 1 splits on f1 at its root, but f0 comes first in the order
	entries = buildTree(t, f, 1)
	require.Len(t, entries, 3)
	assert.Equal(t, "00", entries[0].Code.String())
	assert.Equal(t, "11", entries[0].Mask.String())
	assert.Equal(t, "10", entries[1].Code.String())
	assert.Equal(t, "11", entries[1].Mask.String())
	assert.Equal(t, "01", entries[2].Code.String())
	assert.Equal(t, "01", entries[2].Mask.String())
	assert.Equal(t, 100, entries[2].Prediction.Confidence)
}

func TestBuildSingleLeaf(t *testing.T) {
	f := foresttest.ThreeTrees()
	entries := buildTree(t, f, 2)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Code.Len())
	assert.Equal(t, 0, entries[0].Mask.Len())
	assert.Equal(t, leafpath.Path{0}, entries[0].Path)
	assert.Equal(t, 2, entries[0].Prediction.Class)
	assert.Equal(t, 50, entries[0].Prediction.Confidence)
	assert.Equal(t, 0, Match(entries, bitvec.New(0)))
}

func TestLeavesAreNotAmbiguous(t *testing.T) {
	f := foresttest.Random(9, 6, 4, 3, 8)
	for i := range f.Trees {
		entries := buildTree(t, f, i)
		assert.Len(t, entries, f.Trees[i].LeafCount())
		for a := range entries {
			for b := a + 1; b < len(entries); b++ {
				assert.True(t, distinguishable(entries[a], entries[b]),
					"tree %d: leaves %d and %d overlap", i, entries[a].Path.Leaf(), entries[b].Path.Leaf())
			}
		}
	}
}

func distinguishable(a, b Entry) bool {
	for i := range a.Code {
		if a.Mask[i] && b.Mask[i] && a.Code[i] != b.Code[i] {
			return true
		}
	}
	return false
}

func TestMatchAgreesWithTraversal(t *testing.T) {
	f := foresttest.ThreeTrees()
	entries := buildTree(t, f, 0)
	// key bits: f0 > 10.5, f1 > 25.2
	for key, leaf := range map[string]int{"00": 1, "01": 1, "10": 3, "11": 4} {
		k, _ := bitvec.Parse(key)
		i := Match(entries, k)
		require.NotEqual(t, -1, i, key)
		assert.Equal(t, leaf, entries[i].Path.Leaf(), key)
	}
	assert.Equal(t, -1, Match(entries, bitvec.New(3)))
}

func TestBuildErrors(t *testing.T) {
	f := foresttest.ThreeTrees()
	_, err := Build(f.Trees[0], split.Order{}, leafpath.New(f.Trees[0]))
	var ue *UnorderedSplitError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 0, ue.Node)

	f.Trees[2].Value[0] = []float64{0, 0, 0}
	order, err := split.NewOrder(nil, 2)
	require.NoError(t, err)
	_, err = Build(f.Trees[2], order, leafpath.New(f.Trees[2]))
	assert.Equal(t, forest.ErrEmptyValue, errors.Cause(err))
}
