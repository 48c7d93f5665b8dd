package samples

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	samples []Sample
	fail    error
}

func (ss *sliceSource) Read(ctx context.Context) (<-chan Sample, <-chan error) {
	i := 0
	return Stream(ctx, func() (Sample, bool, error) {
		if i == len(ss.samples) {
			return Sample{}, false, ss.fail
		}
		i++
		return ss.samples[i-1], true, nil
	})
}

func (ss *sliceSource) Close() error {
	return nil
}

func TestCollect(t *testing.T) {
	src := &sliceSource{samples: []Sample{{Values: []float64{1}}, {Values: []float64{2}, Label: 1, HasLabel: true}}}
	got, err := Collect(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, src.samples, got)

	src.fail = fmt.Errorf("broken source")
	_, err = Collect(context.Background(), src)
	assert.EqualError(t, err, "broken source")
}

func TestStreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &sliceSource{samples: []Sample{{Values: []float64{1}}}}
	_, err := Collect(ctx, src)
	assert.Equal(t, context.Canceled, err)
}

func TestSampleString(t *testing.T) {
	assert.Equal(t, "[1 2]", Sample{Values: []float64{1, 2}}.String())
	assert.Equal(t, "[[1 2] -> 3]", Sample{Values: []float64{1, 2}, Label: 3, HasLabel: true}.String())
}
