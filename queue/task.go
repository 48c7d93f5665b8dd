package queue

import (
	"fmt"
	"strconv"
)

// Task represents a tree of the forest being compiled
// whose splits, split order and leaf codewords are
// still to be computed.
type Task struct {
	// The index of the tree in the forest
	Tree int
}

// ID returns a string that identifies the
// task, the index of its tree.
func (t *Task) ID() string {
	return strconv.Itoa(t.Tree)
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task tree %d}", t.Tree)
}
