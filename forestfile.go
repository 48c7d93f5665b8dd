package arbor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pbanos/arbor/forest"
	"github.com/pbanos/arbor/forest/json"
	"github.com/pbanos/arbor/forest/yaml"
)

/*
ReadForestFile takes the path to a serialized forest and returns the
forest read from it. Files ending in .yml or .yaml are parsed as YAML,
anything else as JSON. Failures opening or parsing the file are returned
as a *ResourceError. The forest is not validated.
*/
func ReadForestFile(path string) (*forest.Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Op: "opening forest", Path: path, Err: err}
	}
	defer file.Close()
	var f *forest.Forest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		f, err = yaml.DecodeForest(file)
	default:
		f, err = json.ReadForest(file)
	}
	if err != nil {
		return nil, &ResourceError{Op: "reading forest", Path: path, Err: err}
	}
	return f, nil
}

/*
WriteForestFile takes a path and a forest and writes the forest as JSON
to the file at the path, creating or truncating it. Failures are
returned as a *ResourceError.
*/
func WriteForestFile(path string, f *forest.Forest) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return &ResourceError{Op: "creating forest", Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &ResourceError{Op: "closing forest", Path: path, Err: cerr}
		}
	}()
	if err = json.WriteForest(file, f); err != nil {
		return &ResourceError{Op: "writing forest", Path: path, Err: err}
	}
	return nil
}
