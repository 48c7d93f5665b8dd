/*
Package samples defines the samples used to check compiled forests and
the interface of the sources they are read from.
*/
package samples

import (
	"context"
	"fmt"
)

/*
Sample holds a value per feature of a forest, in the forest's feature
order, and optionally the label of the class the sample belongs to.
*/
type Sample struct {
	Values   []float64
	Label    int
	HasLabel bool
}

func (s Sample) String() string {
	if s.HasLabel {
		return fmt.Sprintf("[%v -> %d]", s.Values, s.Label)
	}
	return fmt.Sprintf("%v", s.Values)
}

/*
Columns describes where sample data is found in a source: the column (or
document field) holding each feature, in feature order, and the one
holding the label, which may be empty if samples carry no label.
*/
type Columns struct {
	Features []string
	Label    string
}

/*
Source is a source of samples that can be read sequentially.

Read returns a channel on which samples are sent and a channel on which
at most one error is sent. Both channels are closed once the source is
exhausted, an error occurs or the context is cancelled.
*/
type Source interface {
	Read(context.Context) (<-chan Sample, <-chan error)
	Close() error
}

/*
Stream takes a context and a next function returning the next sample,
whether there is one, or an error, and returns the channels for a
Source's Read method. next is called from a new goroutine until it
returns false or an error, or the context is done, in which case the
context error is sent.
*/
func Stream(ctx context.Context, next func() (Sample, bool, error)) (<-chan Sample, <-chan error) {
	samples := make(chan Sample)
	errs := make(chan error, 1)
	go func() {
		defer close(samples)
		defer close(errs)
		for {
			if err := ctx.Err(); err != nil {
				errs <- err
				return
			}
			s, ok, err := next()
			if err != nil {
				errs <- err
				return
			}
			if !ok {
				return
			}
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case samples <- s:
			}
		}
	}()
	return samples, errs
}

/*
Collect reads every sample from the source and returns them or the error
reading them.
*/
func Collect(ctx context.Context, src Source) ([]Sample, error) {
	var result []Sample
	ch, errs := src.Read(ctx)
	for s := range ch {
		result = append(result, s)
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	return result, nil
}
