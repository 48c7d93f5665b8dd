package bitvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral(t *testing.T) {
	v, err := Parse("0b0110")
	require.NoError(t, err)
	assert.Equal(t, "0b0110", v.Literal())
	assert.Equal(t, "0110", v.String())
	assert.Equal(t, "0b0", New(0).Literal())
	assert.Equal(t, "0b000", New(3).Literal())
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("0102")
	assert.Error(t, err)
}

func TestConcat(t *testing.T) {
	a, _ := Parse("10")
	b, _ := Parse("")
	c, _ := Parse("011")
	assert.Equal(t, "10011", Concat(a, b, c).String())
	assert.Len(t, Concat(), 0)
}

func TestMatch(t *testing.T) {
	value, _ := Parse("1010")
	mask, _ := Parse("1100")
	for key, expected := range map[string]bool{
		"1000": true,
		"1011": true,
		"0010": false,
		"1110": false,
	} {
		k, _ := Parse(key)
		assert.Equal(t, expected, Match(k, value, mask), key)
	}
	short, _ := Parse("10")
	assert.False(t, Match(short, value, mask))
	assert.True(t, Match(New(0), New(0), New(0)))
}

func TestEqual(t *testing.T) {
	a, _ := Parse("101")
	b, _ := Parse("101")
	c, _ := Parse("1010")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
