package voting

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCompleteness(t *testing.T) {
	for _, c := range []struct{ trees, classes, size int }{
		{1, 4, 4},
		{2, 3, 9},
		{3, 3, 27},
		{3, 16, 4096},
		{4, 2, 16},
	} {
		table, err := Generate(c.trees, c.classes, Lowest(), DefaultMaxEntries)
		require.NoError(t, err)
		require.Len(t, table.Entries, c.size)
		seen := make(map[[8]int]bool)
		for _, e := range table.Entries {
			var key [8]int
			copy(key[:], e.Classes)
			assert.False(t, seen[key], "tuple %v repeated", e.Classes)
			seen[key] = true
		}
	}
}

func TestGenerateMajorities(t *testing.T) {
	table, err := Generate(3, 3, Lowest(), DefaultMaxEntries)
	require.NoError(t, err)
	for _, e := range table.Entries {
		counts := make(map[int]int)
		for _, c := range e.Classes {
			counts[c]++
		}
		majority := -1
		for c, n := range counts {
			if n*2 > len(e.Classes) {
				majority = c
			}
		}
		if majority >= 0 {
			assert.Equal(t, majority, e.Result, "%v", e.Classes)
		} else {
			assert.Contains(t, e.Classes, e.Result)
		}
	}
	// 0-based counterparts of (1,1,2) and (1,2,3)
	e, ok := table.Lookup([]int{0, 0, 1})
	require.True(t, ok)
	assert.Equal(t, 0, e.Result)
	e, ok = table.Lookup([]int{0, 1, 2})
	require.True(t, ok)
	assert.Equal(t, 0, e.Result)
}

func TestGenerateOrder(t *testing.T) {
	table, err := Generate(2, 3, Lowest(), DefaultMaxEntries)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, table.Entries[0].Classes)
	assert.Equal(t, []int{0, 1}, table.Entries[1].Classes)
	assert.Equal(t, []int{1, 0}, table.Entries[3].Classes)
	assert.Equal(t, []int{2, 2}, table.Entries[8].Classes)
	for i, e := range table.Entries {
		got, ok := table.Lookup(e.Classes)
		require.True(t, ok)
		assert.Equal(t, table.Entries[i], got)
	}
	_, ok := table.Lookup([]int{0, 3})
	assert.False(t, ok)
	_, ok = table.Lookup([]int{0})
	assert.False(t, ok)
}

func TestTieBreakPolicies(t *testing.T) {
	tuple := []int{4, 1, 2}
	assert.Equal(t, 1, Resolve(tuple, 5, Lowest()))
	assert.Equal(t, 4, Resolve(tuple, 5, First()))
	for i := 0; i < 20; i++ {
		assert.Contains(t, tuple, Resolve(tuple, 5, Seeded(int64(i))))
	}
	// partial ties among four trees only consider the most voted classes
	assert.Equal(t, 3, Resolve([]int{3, 1, 3, 1}, 4, First()))
	assert.Equal(t, 1, Resolve([]int{3, 1, 3, 1}, 4, Lowest()))
	assert.Equal(t, 3, Resolve([]int{3, 1, 3, 2}, 4, Lowest()))
}

func TestSeededIsReproducible(t *testing.T) {
	a, err := Generate(3, 6, Seeded(42), DefaultMaxEntries)
	require.NoError(t, err)
	b, err := Generate(3, 6, Seeded(42), DefaultMaxEntries)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSeededPolicyCanBeShared(t *testing.T) {
	p := Seeded(42)
	a, err := Generate(3, 6, p, DefaultMaxEntries)
	require.NoError(t, err)
	b, err := Generate(3, 6, p, DefaultMaxEntries)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	for _, e := range a.Entries {
		assert.Equal(t, e.Result, Resolve(e.Classes, 6, p))
	}

	tables := make([]*Table, 4)
	var wg sync.WaitGroup
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i], _ = Generate(3, 6, p, DefaultMaxEntries)
		}(i)
	}
	wg.Wait()
	for _, table := range tables {
		assert.Equal(t, a, table)
	}
}

func TestSeedsDiffer(t *testing.T) {
	a, err := Generate(3, 6, Seeded(1), DefaultMaxEntries)
	require.NoError(t, err)
	b, err := Generate(3, 6, Seeded(2), DefaultMaxEntries)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateLimits(t *testing.T) {
	_, err := Generate(5, 16, Lowest(), DefaultMaxEntries)
	var tme *TooManyEntriesError
	require.True(t, errors.As(err, &tme))
	assert.Equal(t, 5, tme.NumTrees)
	_, err = Generate(0, 3, Lowest(), DefaultMaxEntries)
	assert.Error(t, err)
}

func TestParsePolicy(t *testing.T) {
	for name, expected := range map[string]string{
		"":       "lowest",
		"lowest": "lowest",
		"First":  "first",
		"seeded": "seeded:7",
		"random": "seeded:7",
	} {
		p, err := ParsePolicy(name, 7)
		require.NoError(t, err)
		assert.Equal(t, expected, p.String())
	}
	_, err := ParsePolicy("confidence", 0)
	assert.Error(t, err)
}

func TestTied(t *testing.T) {
	assert.Equal(t, []int{1}, Tied([]int{1, 1, 2}, 3))
	assert.Equal(t, []int{0, 1, 2}, Tied([]int{2, 0, 1}, 3))
	assert.Equal(t, []int{1, 3}, Tied([]int{3, 1, 3, 1}, 4))
	for _, e := range mustGenerate(t, 3, 4).Entries {
		assert.Contains(t, Tied(e.Classes, 4), e.Result)
	}
}

func mustGenerate(t *testing.T, trees, classes int) *Table {
	table, err := Generate(trees, classes, Seeded(3), DefaultMaxEntries)
	require.NoError(t, err)
	return table
}
