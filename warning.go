package arbor

import "fmt"

// WarningKind identifies a recoverable condition found while compiling.
type WarningKind int

const (
	// EmptyFeature is reported for a feature no tree splits on. Its range
	// table holds a single range over the whole domain with empty codes.
	EmptyFeature WarningKind = iota
	// SingleLeafTree is reported for a tree made of a single leaf. Its
	// code table holds one entry with an empty codeword and mask.
	SingleLeafTree
)

func (k WarningKind) String() string {
	switch k {
	case EmptyFeature:
		return "empty feature"
	case SingleLeafTree:
		return "single leaf tree"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning is a recoverable condition found while compiling a forest.
// Feature and Tree are -1 when they do not apply.
type Warning struct {
	Kind    WarningKind
	Feature int
	Tree    int
}

func (w Warning) String() string {
	switch w.Kind {
	case EmptyFeature:
		return fmt.Sprintf("feature %d has no splits in any tree", w.Feature)
	case SingleLeafTree:
		return fmt.Sprintf("tree %d is a single leaf", w.Tree)
	}
	return w.Kind.String()
}
