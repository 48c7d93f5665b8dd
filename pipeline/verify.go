package pipeline

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/forest"
	"github.com/pbanos/arbor/samples"
	"github.com/pbanos/arbor/voting"
)

/*
Report summarizes the verification of a compiled program against its
forest over a set of samples.
*/
type Report struct {
	// Samples is the number of samples read.
	Samples int
	// OutOfField counts samples with values the match fields cannot hold.
	OutOfField int
	// LeafMismatches counts samples for which some tree reached a
	// different leaf through the tables than by traversal.
	LeafMismatches int
	// VoteMismatches counts samples whose final class is not one of the
	// most voted classes of the traversal.
	VoteMismatches int
	// Labelled counts classified samples carrying a label, and Correct
	// those among them whose final class through the tables has that
	// label.
	Labelled int
	Correct  int
}

// Mismatches returns the number of samples the tables got wrong.
func (r *Report) Mismatches() int {
	return r.LeafMismatches + r.VoteMismatches
}

// Accuracy returns the share of labelled samples classified correctly,
// or 0 if no sample was labelled.
func (r *Report) Accuracy() float64 {
	if r.Labelled == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Labelled)
}

func (r *Report) String() string {
	return fmt.Sprintf("{samples: %d, out of field: %d, leaf mismatches: %d, vote mismatches: %d, accuracy: %d/%d}",
		r.Samples, r.OutOfField, r.LeafMismatches, r.VoteMismatches, r.Correct, r.Labelled)
}

/*
Verify takes a context, a compiled program, the forest it was compiled
from, a source of samples and a logger, classifies every sample both
with the program's tables and by traversing the forest, and returns a
Report comparing them, or an error if the source fails or a sample
cannot be classified by traversal.

Samples with values outside the match fields are counted and skipped.
Mismatches are logged at the warning level.
*/
func Verify(ctx context.Context, p *arbor.Program, f *forest.Forest, src samples.Source, log logrus.FieldLogger) (*Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	report := &Report{}
	ch, errs := src.Read(ctx)
	for s := range ch {
		report.Samples++
		if err := verify(p, f, s, report, log); err != nil {
			cancel()
			for range ch {
			}
			return nil, errors.Wrapf(err, "sample %d", report.Samples)
		}
	}
	if err := <-errs; err != nil {
		return nil, errors.Wrap(err, "reading samples")
	}
	return report, nil
}

func verify(p *arbor.Program, f *forest.Forest, s samples.Sample, report *Report, log logrus.FieldLogger) error {
	r, err := Classify(p, s.Values)
	if errors.Cause(err) == ErrOutOfField {
		report.OutOfField++
		log.WithField("sample", report.Samples).Debug(err)
		return nil
	}
	if err != nil {
		return err
	}
	preds, err := f.Predict(s.Values)
	if err != nil {
		return err
	}
	if s.HasLabel {
		report.Labelled++
		if p.Classes[r.Final] == s.Label {
			report.Correct++
		}
	}
	classes := make([]int, len(preds))
	for i, pred := range preds {
		classes[i] = pred.Class
		if pred.Node != r.Leaves[i] {
			report.LeafMismatches++
			log.WithFields(logrus.Fields{
				"sample": report.Samples,
				"tree":   i,
				"leaf":   pred.Node,
				"match":  r.Leaves[i],
			}).Warn("tables and traversal reach different leaves")
			return nil
		}
	}
	var agreed bool
	for _, c := range voting.Tied(classes, p.NumClasses()) {
		agreed = agreed || c == r.Final
	}
	if !agreed {
		report.VoteMismatches++
		log.WithFields(logrus.Fields{
			"sample":  report.Samples,
			"classes": classes,
			"final":   r.Final,
		}).Warn("voting table disagrees with the tree votes")
	}
	return nil
}
