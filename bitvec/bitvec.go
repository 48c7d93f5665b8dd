/*
Package bitvec provides fixed-width bit vectors as used for the keys,
values and masks of match table entries.
*/
package bitvec

import (
	"fmt"
	"strings"
)

// Vector is a fixed-width sequence of bits, most significant bit first.
type Vector []bool

// New returns a vector of n bits, all of them 0.
func New(n int) Vector {
	return make(Vector, n)
}

/*
Parse takes a string of '0' and '1' characters, optionally prefixed
by "0b", and returns the vector it represents or an error.
*/
func Parse(s string) (Vector, error) {
	s = strings.TrimPrefix(s, "0b")
	v := make(Vector, len(s))
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			v[i] = true
		default:
			return nil, fmt.Errorf("parsing bit vector %q: invalid character %q", s, c)
		}
	}
	return v, nil
}

// Len returns the width of the vector.
func (v Vector) Len() int {
	return len(v)
}

// Concat returns a new vector with the bits of all the given vectors in order.
func Concat(vs ...Vector) Vector {
	var n int
	for _, v := range vs {
		n += len(v)
	}
	result := make(Vector, 0, n)
	for _, v := range vs {
		result = append(result, v...)
	}
	return result
}

// Equal returns whether both vectors have the same width and bits.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

/*
Match returns whether the key matches the ternary (value, mask) pair: for
every position set in the mask, key and value hold the same bit. Vectors of
different widths never match.
*/
func Match(key, value, mask Vector) bool {
	if len(key) != len(value) || len(key) != len(mask) {
		return false
	}
	for i := range key {
		if mask[i] && key[i] != value[i] {
			return false
		}
	}
	return true
}

// String returns the bits of the vector as a string of '0' and '1'.
func (v Vector) String() string {
	var sb strings.Builder
	sb.Grow(len(v))
	for _, b := range v {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

/*
Literal returns the vector as a radix-2 literal ("0b" followed by its bits).
A zero-width vector has no digits to print, so it is written as 0b0.
*/
func (v Vector) Literal() string {
	if len(v) == 0 {
		return "0b0"
	}
	return "0b" + v.String()
}
