package arbor

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pbanos/arbor/codeword"
	"github.com/pbanos/arbor/featurerange"
	"github.com/pbanos/arbor/forest"
	"github.com/pbanos/arbor/leafpath"
	"github.com/pbanos/arbor/split"
	"github.com/pbanos/arbor/voting"
)

/*
Compile takes a context, a forest and compilation options and returns the
compiled Program or an error.

The forest is validated first: a malformed forest yields the combination
of every *forest.StructuralError found (see go.uber.org/multierr). Trees
are then compiled independently by opts.Workers workers, and the results
kept in tree order so the Program does not depend on the number of
workers. Range tables are built per feature and checked against the
split order of every tree; any mismatch is an *EncodingError. Features
without splits and single leaf trees are logged and reported as
Warnings on the Program.
*/
func Compile(ctx context.Context, f *forest.Forest, opts Options) (*Program, error) {
	opts = opts.withDefaults()
	log := opts.Logger.WithField("component", "compiler")
	if err := f.Validate(); err != nil {
		return nil, err
	}
	trees, err := compileTrees(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	p := &Program{
		Features: f.Features,
		Classes:  f.Classes,
		MaxValue: opts.MaxValue,
		Policy:   opts.Policy.String(),
		Trees:    trees,
	}
	var splits []split.Split
	for _, tp := range trees {
		splits = append(splits, tp.Splits...)
	}
	for i := range f.Features {
		table, err := featurerange.Encode(i, splits, len(trees), opts.MaxValue)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding feature %q", f.Features[i])
		}
		p.FeatureTables = append(p.FeatureTables, table)
	}
	if err = check(p); err != nil {
		return nil, err
	}
	p.Voting, err = voting.Generate(len(trees), f.NumClasses(), opts.Policy, opts.MaxVotingEntries)
	if err != nil {
		return nil, errors.Wrap(err, "generating voting table")
	}
	p.Warnings = warnings(p)
	for _, w := range p.Warnings {
		fields := logrus.Fields{"warning": w.Kind.String()}
		if w.Feature >= 0 {
			fields["feature"] = f.Features[w.Feature]
		}
		if w.Tree >= 0 {
			fields["tree"] = w.Tree
		}
		log.WithFields(fields).Warn(w.String())
	}
	log.WithFields(logrus.Fields{
		"features":      len(p.Features),
		"trees":         len(p.Trees),
		"votingEntries": len(p.Voting.Entries),
	}).Debug("forest compiled")
	return p, nil
}

/*
CompileTree takes the index of a tree, the tree and the number of
features of its forest and returns the tree's splits, their order and
the codeword entries for its leaves. The tree must have passed
structural validation.
*/
func CompileTree(index int, t *forest.Tree, numFeatures int) (*TreeProgram, error) {
	splits, err := split.Extract(index, t)
	if err != nil {
		return nil, err
	}
	order, err := split.NewOrder(splits, numFeatures)
	if err != nil {
		return nil, &EncodingError{Tree: index, Feature: -1, Reason: err.Error()}
	}
	entries, err := codeword.Build(t, order, leafpath.New(t))
	if err != nil {
		if use, ok := err.(*codeword.UnorderedSplitError); ok {
			return nil, &EncodingError{Tree: index, Feature: -1, Reason: use.Error()}
		}
		return nil, errors.Wrapf(err, "tree %d", index)
	}
	if len(entries) != t.LeafCount() {
		return nil, &EncodingError{
			Tree:    index,
			Feature: -1,
			Reason:  fmt.Sprintf("%d leaf paths for %d leaves", len(entries), t.LeafCount()),
		}
	}
	return &TreeProgram{Index: index, Splits: splits, Order: order, Entries: entries}, nil
}

// check verifies the feature codes of every range table line up with
// the split order and codewords of every tree.
func check(p *Program) error {
	for i, tp := range p.Trees {
		var total int
		for _, table := range p.FeatureTables {
			start, width := tp.Order.Span(table.Feature)
			if start != total {
				return &EncodingError{Tree: i, Feature: table.Feature, Reason: fmt.Sprintf("codeword bits start at %d, expected %d", start, total)}
			}
			if table.Widths[i] != width {
				return &EncodingError{Tree: i, Feature: table.Feature, Reason: fmt.Sprintf("feature code has %d bits, split order has %d", table.Widths[i], width)}
			}
			for _, r := range table.Ranges {
				if r.Codes[i].Len() != width {
					return &EncodingError{Tree: i, Feature: table.Feature, Reason: fmt.Sprintf("range [%d, %d] has a %d bit code, expected %d", r.Start, r.End, r.Codes[i].Len(), width)}
				}
			}
			total += width
		}
		if total != tp.Order.Len() {
			return &EncodingError{Tree: i, Feature: -1, Reason: fmt.Sprintf("feature codes add up to %d bits, codeword has %d", total, tp.Order.Len())}
		}
		for _, e := range tp.Entries {
			if e.Code.Len() != total || e.Mask.Len() != total {
				return &EncodingError{Tree: i, Feature: -1, Reason: fmt.Sprintf("leaf %d has a %d/%d bit codeword/mask, expected %d", e.Path.Leaf(), e.Code.Len(), e.Mask.Len(), total)}
			}
		}
	}
	return nil
}

func warnings(p *Program) []Warning {
	var result []Warning
	for _, table := range p.FeatureTables {
		empty := true
		for _, w := range table.Widths {
			if w > 0 {
				empty = false
				break
			}
		}
		if empty {
			result = append(result, Warning{Kind: EmptyFeature, Feature: table.Feature, Tree: -1})
		}
	}
	for i, tp := range p.Trees {
		if tp.Order.Len() == 0 {
			result = append(result, Warning{Kind: SingleLeafTree, Feature: -1, Tree: i})
		}
	}
	return result
}
