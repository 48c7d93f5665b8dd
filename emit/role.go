package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pbanos/arbor/codeword"
	"github.com/pbanos/arbor/featurerange"
	"github.com/pbanos/arbor/voting"
)

// Role is the kind of a match table of the pipeline.
type Role int

const (
	// FeatureTable is the range table of one feature.
	FeatureTable Role = iota
	// CodeTable is the ternary codeword table of one tree.
	CodeTable
	// VotingTable is the exact match table combining per-tree classes.
	VotingTable
)

type tableNaming struct {
	table  func(index int) string
	action func(index int) string
	role   string
}

func indexed(prefix string) func(int) string {
	return func(i int) string { return prefix + strconv.Itoa(i) }
}

func fixed(name string) func(int) string {
	return func(int) string { return name }
}

var namings = [...]tableNaming{
	FeatureTable: {indexed("table_feature"), indexed("add_with_SetCode"), "feature table"},
	CodeTable:    {indexed("code_table"), indexed("add_with_SetClass"), "code table"},
	VotingTable:  {fixed("voting_table"), fixed("add_with_set_final_class"), "voting table"},
}

func (r Role) naming() tableNaming {
	if r < 0 || int(r) >= len(namings) {
		panic(fmt.Sprintf("emit: unknown table role %d", int(r)))
	}
	return namings[r]
}

// Table returns the name of the table with the role and index, which is
// also the name of the script variable bound to it.
func (r Role) Table(index int) string {
	return r.naming().table(index)
}

// Action returns the name of the method adding entries to the table with
// the role and index.
func (r Role) Action(index int) string {
	return r.naming().action(index)
}

func (r Role) String() string {
	return r.naming().role
}

// Param is a named argument of an entry statement.
type Param struct {
	Name  string
	Value string
}

// FeatureParams returns the key and action data of the entry for a range
// of the given feature: its bounds and the code of every tree.
func FeatureParams(feature int, r featurerange.Range) []Param {
	f := strconv.Itoa(feature)
	params := []Param{
		{"feature" + f + "_start", strconv.FormatUint(r.Start, 10)},
		{"feature" + f + "_end", strconv.FormatUint(r.End, 10)},
	}
	for t, c := range r.Codes {
		params = append(params, Param{"code" + strconv.Itoa(t), c.Literal()})
	}
	return params
}

// CodeParams returns the key and action data of the entry for a leaf of
// the given tree: codeword, mask and the emitted class.
func CodeParams(tree int, e codeword.Entry) []Param {
	t := strconv.Itoa(tree)
	return []Param{
		{"codeword" + t, e.Code.Literal()},
		{"codeword" + t + "_mask", e.Mask.Literal()},
		{"classe", classLiteral(e.Prediction.Class)},
	}
}

// VotingParams returns the key and action data of a voting table entry.
func VotingParams(e voting.Entry) []Param {
	params := make([]Param, 0, len(e.Classes)+1)
	for t, c := range e.Classes {
		params = append(params, Param{"class" + strconv.Itoa(t), classLiteral(c)})
	}
	return append(params, Param{"class_result", classLiteral(e.Result)})
}

// classLiteral turns a 0-based class index into the 1-based class the
// tables carry.
func classLiteral(class int) string {
	return strconv.Itoa(class + 1)
}

// Statement returns the statement adding an entry with the given params
// to the table with the role and index.
func Statement(r Role, index int, params []Param) string {
	args := make([]string, len(params))
	for i, p := range params {
		args[i] = p.Name + "=" + p.Value
	}
	return fmt.Sprintf("%s.%s(%s)", r.Table(index), r.Action(index), strings.Join(args, ", "))
}
