/*
Package csv provides a samples.Source reading samples from CSV streams.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/arbor/samples"
)

type source struct {
	r       *csv.Reader
	closer  io.Closer
	indexes []int
	label   int
	line    int
}

/*
New takes an io.Reader for a CSV stream and the columns to read and
returns a samples.Source over it, or an error if the header cannot be
read or lacks any of the columns.

The first row of the stream must hold the column names. Every other row
must hold a numeric value for every feature column and an integer label
in the label column, if any. Columns not named in cols are ignored.
*/
func New(r io.Reader, cols samples.Columns) (samples.Source, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[strings.TrimSpace(h)] = i
	}
	s := &source{r: cr, label: -1, line: 1}
	for _, f := range cols.Features {
		i, ok := positions[f]
		if !ok {
			return nil, fmt.Errorf("header has no column for feature %q", f)
		}
		s.indexes = append(s.indexes, i)
	}
	if cols.Label != "" {
		i, ok := positions[cols.Label]
		if !ok {
			return nil, fmt.Errorf("header has no label column %q", cols.Label)
		}
		s.label = i
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

/*
Open takes the path to a CSV file and the columns to read and returns a
samples.Source over the file. An empty path reads from STDIN.
*/
func Open(path string, cols samples.Columns) (samples.Source, error) {
	f := os.Stdin
	if path != "" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
	}
	s, err := New(f, cols)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("parsing CSV file %s: %v", path, err)
	}
	return s, nil
}

func (s *source) Read(ctx context.Context) (<-chan samples.Sample, <-chan error) {
	return samples.Stream(ctx, s.next)
}

func (s *source) next() (samples.Sample, bool, error) {
	row, err := s.r.Read()
	if err == io.EOF {
		return samples.Sample{}, false, nil
	}
	s.line++
	if err != nil {
		return samples.Sample{}, false, fmt.Errorf("reading line %d: %v", s.line, err)
	}
	sample, err := s.parse(row)
	if err != nil {
		return samples.Sample{}, false, fmt.Errorf("parsing line %d: %v", s.line, err)
	}
	return sample, true, nil
}

func (s *source) parse(row []string) (samples.Sample, error) {
	sample := samples.Sample{Values: make([]float64, len(s.indexes))}
	for i, c := range s.indexes {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
		if err != nil {
			return samples.Sample{}, fmt.Errorf("column %d: %v", c+1, err)
		}
		sample.Values[i] = v
	}
	if s.label >= 0 {
		l, err := strconv.Atoi(strings.TrimSpace(row[s.label]))
		if err != nil {
			return samples.Sample{}, fmt.Errorf("label column %d: %v", s.label+1, err)
		}
		sample.Label = l
		sample.HasLabel = true
	}
	return sample, nil
}

func (s *source) Close() error {
	if s.closer == nil || s.closer == os.Stdin {
		return nil
	}
	return s.closer.Close()
}
