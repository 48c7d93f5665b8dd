/*
Package yaml provides methods to parse forest.Forest values
from YAML documents.
*/
package yaml

import (
	"fmt"
	"io"

	"github.com/pbanos/arbor/forest"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadForest takes a slice of bytes with a forest in YML and returns the
forest parsed from it or an error. The YML is expected to follow the same
schema as the JSON documents: an object with features, classes and trees
properties. The forest is not validated.
*/
func ReadForest(data []byte) (*forest.Forest, error) {
	f := &forest.Forest{}
	err := yaml.UnmarshalStrict(data, f)
	if err != nil {
		return nil, fmt.Errorf("parsing yml forest: %v", err)
	}
	if len(f.Trees) == 0 && len(f.Features) == 0 {
		return nil, fmt.Errorf("yml document has no forest information")
	}
	return f, nil
}

/*
DecodeForest takes an io.Reader, reads all its contents and uses
ReadForest to parse them.
*/
func DecodeForest(r io.Reader) (*forest.Forest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading yml forest: %v", err)
	}
	return ReadForest(data)
}
