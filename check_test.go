package arbor

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor/bitvec"
	"github.com/pbanos/arbor/forest/foresttest"
)

func compiled(t *testing.T) *Program {
	logger, _ := test.NewNullLogger()
	p, err := Compile(context.Background(), foresttest.ThreeTrees(), Options{Logger: logger})
	require.NoError(t, err)
	return p
}

func TestCheckAcceptsCompiledPrograms(t *testing.T) {
	assert.NoError(t, check(compiled(t)))
}

func TestCheckDetectsWidthMismatches(t *testing.T) {
	p := compiled(t)
	p.FeatureTables[1].Widths[0] = 2
	err := check(p)
	require.Error(t, err)
	ee, ok := err.(*EncodingError)
	require.True(t, ok)
	assert.Equal(t, 0, ee.Tree)
	assert.Equal(t, 1, ee.Feature)

	p = compiled(t)
	p.FeatureTables[0].Ranges[1].Codes[1] = bitvec.New(3)
	err = check(p)
	require.Error(t, err)
	ee, ok = err.(*EncodingError)
	require.True(t, ok)
	assert.Equal(t, 1, ee.Tree)
	assert.Equal(t, 0, ee.Feature)
	assert.Contains(t, ee.Error(), "range [11, 65535]")

	p = compiled(t)
	p.Trees[0].Entries[2].Mask = bitvec.New(1)
	err = check(p)
	require.Error(t, err)
	ee, ok = err.(*EncodingError)
	require.True(t, ok)
	assert.Equal(t, -1, ee.Feature)
	assert.Equal(t, "inconsistent encoding of tree 0: leaf 4 has a 2/1 bit codeword/mask, expected 2", ee.Error())
}
