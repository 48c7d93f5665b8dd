package forest

import (
	"fmt"
	"math"
)

/*
LeafPrediction represents the prediction a tree makes for the samples
reaching one of its leaves.

Class is the 0-based index of the most weighted class in the leaf value
vector (the first one on ties), and Confidence its share of the total
weight as a rounded percentage.
*/
type LeafPrediction struct {
	Node       int
	Class      int
	Confidence int
}

// PredictionError represents an error related with leaf predictions
type PredictionError string

/*
ErrEmptyValue is the error returned when building a prediction from a
value vector with no weight.
*/
const ErrEmptyValue = PredictionError("cannot make prediction for a leaf without weight")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
NewLeafPrediction takes the index of a leaf node and its value vector and
returns the prediction for that leaf or ErrEmptyValue if the vector adds
up to zero.
*/
func NewLeafPrediction(node int, value []float64) (LeafPrediction, error) {
	var sum, max float64
	class := -1
	for i, v := range value {
		sum += v
		if class < 0 || v > max {
			class = i
			max = v
		}
	}
	if class < 0 || sum <= 0 {
		return LeafPrediction{}, ErrEmptyValue
	}
	return LeafPrediction{
		Node:       node,
		Class:      class,
		Confidence: int(math.Round(max / sum * 100)),
	}, nil
}

func (lp LeafPrediction) String() string {
	return fmt.Sprintf("{leaf %d: class %d (%d%%)}", lp.Node, lp.Class, lp.Confidence)
}
