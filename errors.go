package arbor

import "fmt"

/*
EncodingError is the error returned when the bits a tree is encoded with
do not line up: the feature codes of the range tables disagree in width
with the split order of the tree, or a leaf path goes through a split
the order does not know about. Feature is -1 when the problem is not
specific to one feature.
*/
type EncodingError struct {
	Tree    int
	Feature int
	Reason  string
}

func (ee *EncodingError) Error() string {
	if ee.Feature < 0 {
		return fmt.Sprintf("inconsistent encoding of tree %d: %s", ee.Tree, ee.Reason)
	}
	return fmt.Sprintf("inconsistent encoding of tree %d on feature %d: %s", ee.Tree, ee.Feature, ee.Reason)
}

/*
ResourceError is the error returned when a forest, a sample source or
the generated script cannot be read or written. Op describes the
operation and Path the file, URL or key involved.
*/
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (re *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", re.Op, re.Path, re.Err)
}

// Cause returns the underlying error, for github.com/pkg/errors.Cause.
func (re *ResourceError) Cause() error {
	return re.Err
}

func (re *ResourceError) Unwrap() error {
	return re.Err
}
