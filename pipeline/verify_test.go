package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor/forest/foresttest"
	"github.com/pbanos/arbor/samples"
	"github.com/pbanos/arbor/samples/csv"
	"github.com/pbanos/arbor/voting"
)

const labelled = `f0,f1,class
5,30,2
10,25,0
11,26,1
-1,3,0
`

func source(t *testing.T, data string) samples.Source {
	src, err := csv.New(strings.NewReader(data), samples.Columns{Features: []string{"f0", "f1"}, Label: "class"})
	require.NoError(t, err)
	return src
}

func TestVerify(t *testing.T) {
	f := foresttest.ThreeTrees()
	p := compile(t, f, voting.Seeded(11))
	logger, hook := test.NewNullLogger()
	report, err := Verify(context.Background(), p, f, source(t, labelled), logger)
	require.NoError(t, err)
	assert.Equal(t, &Report{Samples: 4, OutOfField: 1, Labelled: 3, Correct: 2}, report)
	assert.Equal(t, 0, report.Mismatches())
	assert.InDelta(t, 2.0/3, report.Accuracy(), 1e-9)
	assert.Empty(t, hook.AllEntries())
}

func TestVerifyDetectsMismatches(t *testing.T) {
	f := foresttest.ThreeTrees()
	p := compile(t, f, voting.Lowest())
	p.Trees[0].Entries[0].Path = append(p.Trees[0].Entries[0].Path[:1:1], 2)
	e, ok := p.Voting.Lookup([]int{0, 0, 2})
	require.True(t, ok)
	p.Voting.Entries[2].Result = 1
	assert.Equal(t, e.Classes, p.Voting.Entries[2].Classes)

	logger, hook := test.NewNullLogger()
	report, err := Verify(context.Background(), p, f, source(t, labelled), logger)
	require.NoError(t, err)
	assert.Equal(t, 2, report.LeafMismatches)
	assert.Equal(t, 0, report.VoteMismatches)
	assert.Len(t, hook.AllEntries(), 2)

	p = compile(t, f, voting.Lowest())
	p.Voting.Entries[2].Result = 1
	report, err = Verify(context.Background(), p, f, source(t, labelled), logger)
	require.NoError(t, err)
	assert.Equal(t, 0, report.LeafMismatches)
	assert.Equal(t, 1, report.VoteMismatches)
}

func TestVerifySourceErrors(t *testing.T) {
	f := foresttest.ThreeTrees()
	p := compile(t, f, voting.Lowest())
	logger, _ := test.NewNullLogger()
	_, err := Verify(context.Background(), p, f, source(t, "f0,f1,class\n1,2,x\n"), logger)
	assert.Error(t, err)
}

func TestReportString(t *testing.T) {
	r := &Report{Samples: 3, OutOfField: 1, Labelled: 2, Correct: 1}
	assert.Equal(t, "{samples: 3, out of field: 1, leaf mismatches: 0, vote mismatches: 0, accuracy: 1/2}", r.String())
	assert.Equal(t, 0.0, (&Report{}).Accuracy())
}
