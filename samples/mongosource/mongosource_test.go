package mongosource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mgo.v2/bson"

	"github.com/pbanos/arbor/samples"
)

func TestParse(t *testing.T) {
	cols := samples.Columns{Features: []string{"f0", "f1"}, Label: "class"}
	s, err := parse(bson.M{"f0": 5, "f1": 25.9, "class": int64(2)}, cols)
	require.NoError(t, err)
	assert.Equal(t, samples.Sample{Values: []float64{5, 25.9}, Label: 2, HasLabel: true}, s)

	for _, doc := range []bson.M{
		{"f0": 5, "class": 1},
		{"f0": 5, "f1": "6", "class": 1},
		{"f0": 5, "f1": 6},
		{"f0": 5, "f1": 6, "class": 1.5},
	} {
		_, err = parse(doc, cols)
		assert.Error(t, err, "%v", doc)
	}
}

func TestCheckFields(t *testing.T) {
	assert.NoError(t, checkFields(samples.Columns{Features: []string{"f0"}, Label: "class"}))
	assert.Error(t, checkFields(samples.Columns{Features: []string{"_id"}}))
	assert.Error(t, checkFields(samples.Columns{Features: []string{"a.b"}}))
	assert.Error(t, checkFields(samples.Columns{Features: []string{"f0"}, Label: "$class"}))
}

func TestProjection(t *testing.T) {
	s := &source{cols: samples.Columns{Features: []string{"f0", "f1"}, Label: "class"}}
	assert.Equal(t, bson.M{"_id": 0, "f0": 1, "f1": 1, "class": 1}, s.projection())
}
