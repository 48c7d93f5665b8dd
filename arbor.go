/*
Package arbor compiles decision forests into the table entries of a
fixed-function matching pipeline: a range table per feature mapping
values to per-tree bit codes, a ternary table per tree mapping codewords
to classes and a voting table combining the per-tree classes into the
final one.
*/
package arbor

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pbanos/arbor/codeword"
	"github.com/pbanos/arbor/featurerange"
	"github.com/pbanos/arbor/split"
	"github.com/pbanos/arbor/voting"
)

/*
Options holds the settings of a compilation. The zero value compiles
for 16-bit match fields with the lowest-class tie-break, one worker and
the standard logrus logger.
*/
type Options struct {
	// MaxValue is the largest value a feature match field can hold.
	MaxValue uint64
	// Policy resolves voting ties.
	Policy voting.Policy
	// Workers is the number of goroutines compiling trees.
	Workers int
	// MaxVotingEntries bounds the size of the voting table.
	MaxVotingEntries int
	// EmptyQueueSleep is how long an idle worker waits before polling
	// the task queue again.
	EmptyQueueSleep time.Duration
	Logger          logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.MaxValue == 0 {
		o.MaxValue = featurerange.DefaultMaxValue
	}
	if o.Policy == nil {
		o.Policy = voting.Lowest()
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.MaxVotingEntries <= 0 {
		o.MaxVotingEntries = voting.DefaultMaxEntries
	}
	if o.EmptyQueueSleep <= 0 {
		o.EmptyQueueSleep = 10 * time.Millisecond
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// TreeProgram holds the compiled form of one tree of the forest.
type TreeProgram struct {
	Index   int
	Splits  []split.Split
	Order   split.Order
	Entries []codeword.Entry
}

/*
Program is a compiled forest: everything needed to program the tables of
the matching pipeline. Classes are 0-based indexes into Classes
throughout; emitters are responsible for any offset the target expects.
*/
type Program struct {
	Features      []string
	Classes       []int
	MaxValue      uint64
	Policy        string
	FeatureTables []*featurerange.Table
	Trees         []*TreeProgram
	Voting        *voting.Table
	Warnings      []Warning
}

// NumTrees returns the number of trees in the program.
func (p *Program) NumTrees() int {
	return len(p.Trees)
}

// NumClasses returns the number of classes the program predicts.
func (p *Program) NumClasses() int {
	return len(p.Classes)
}

// CodewordWidth returns the width of the codeword of the given tree.
func (p *Program) CodewordWidth(tree int) int {
	return p.Trees[tree].Order.Len()
}
