/*
Package json provides methods to read and write forest.Forest values
as JSON documents.

A forest is serialized as a JSON object with the following fields:
  - "features": an array with the names of the features, in order
  - "classes": an array with the integer class labels
  - "trees": an array of trees, each an object with the node arrays
    "childrenLeft", "childrenRight", "feature", "threshold" and "value"
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/arbor/forest"
)

/*
EncodeDecoder is an interface for objects that allow encoding forests
into slices of bytes and decoding them back to forests.
*/
type EncodeDecoder interface {
	// Encode receives a *forest.Forest and returns a slice of bytes
	// with the forest encoded or an error if the encoding could not
	// be performed for some reason.
	Encode(*forest.Forest) ([]byte, error)

	// Decode receives a slice of bytes and returns a *forest.Forest
	// decoded from the slice of bytes or an error if the decoding
	// could not be performed for some reason.
	Decode([]byte) (*forest.Forest, error)
}

type encodeDecoder struct{}

// NewEncodeDecoder returns an EncodeDecoder that uses JSON
func NewEncodeDecoder() EncodeDecoder {
	return encodeDecoder{}
}

func (encodeDecoder) Encode(f *forest.Forest) ([]byte, error) {
	return json.Marshal(f)
}

func (encodeDecoder) Decode(data []byte) (*forest.Forest, error) {
	f := &forest.Forest{}
	err := json.Unmarshal(data, f)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON forest: %v", err)
	}
	return f, nil
}

/*
ReadForest takes an io.Reader and attempts to JSON-decode a forest
from it. It returns the read forest or an error. The forest is not
validated.
*/
func ReadForest(r io.Reader) (*forest.Forest, error) {
	dec := json.NewDecoder(r)
	f := &forest.Forest{}
	err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON forest: %v", err)
	}
	return f, nil
}

/*
WriteForest takes an io.Writer and a forest and prints a JSON
representation of the forest onto the writer. It returns an error if
serialization or printing fails, nil otherwise.
*/
func WriteForest(w io.Writer, f *forest.Forest) error {
	enc := json.NewEncoder(w)
	err := enc.Encode(f)
	if err != nil {
		return fmt.Errorf("encoding JSON forest: %v", err)
	}
	return nil
}
