package voting

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

/*
Policy decides the final class of a tuple of per-tree classes in which
several classes share the highest number of votes. Resolve receives the
tuple and the tied classes in ascending order and must return one of the
tied classes.
*/
type Policy interface {
	Resolve(tuple []int, tied []int) int
	String() string
}

type lowest struct{}

// Lowest returns the Policy that picks the lowest tied class.
func Lowest() Policy {
	return lowest{}
}

func (lowest) Resolve(tuple []int, tied []int) int {
	return tied[0]
}

func (lowest) String() string {
	return "lowest"
}

type first struct{}

// First returns the Policy that picks the tied class voted by the tree
// with the lowest index.
func First() Policy {
	return first{}
}

func (first) Resolve(tuple []int, tied []int) int {
	for _, c := range tuple {
		for _, tc := range tied {
			if c == tc {
				return c
			}
		}
	}
	return tied[0]
}

func (first) String() string {
	return "first"
}

type seeded struct {
	seed int64
}

/*
Seeded returns a Policy that picks one of the tied classes from a hash of
the seed and the tuple. The choice depends only on the seed and the
tuple, so the same tuple resolves to the same class in every voting
table generated with that seed, whatever the order in which ties are
resolved. The Policy keeps no state and may be shared.
*/
func Seeded(seed int64) Policy {
	return seeded{seed: seed}
}

func (s seeded) Resolve(tuple []int, tied []int) int {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(s.seed))
	h.Write(buf[:])
	for _, c := range tuple {
		binary.LittleEndian.PutUint64(buf[:], uint64(c))
		h.Write(buf[:])
	}
	return tied[h.Sum64()%uint64(len(tied))]
}

func (s seeded) String() string {
	return fmt.Sprintf("seeded:%d", s.seed)
}

/*
ParsePolicy takes the name of a policy ("lowest", "first" or "seeded")
and a seed, used only by the seeded policy, and returns the Policy or an
error if the name is unknown.
*/
func ParsePolicy(name string, seed int64) (Policy, error) {
	switch strings.ToLower(name) {
	case "", "lowest":
		return Lowest(), nil
	case "first":
		return First(), nil
	case "seeded", "random":
		return Seeded(seed), nil
	}
	return nil, fmt.Errorf("unknown tie-break policy %q, valid ones are lowest, first and seeded", name)
}
