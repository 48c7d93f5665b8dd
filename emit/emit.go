/*
Package emit renders compiled forests as BfRt Python scripts that program
the match tables of a Tofino pipeline.

A script clears every table, brings up the configured ports, binds a
variable per table, adds the range entries of every feature table, the
ternary entries of every code table and the exact entries of the voting
table, waits for the operations to complete and dumps two tables as a
sample of the result. Classes are emitted 1-based.
*/
package emit

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pbanos/arbor"
)

const clearAll = `def clear_all(verbose=True, batching=True):
    global p4
    global bfrt
    for table_types in (['MATCH_DIRECT', 'MATCH_INDIRECT_SELECTOR'],
                        ['SELECTOR'],
                        ['ACTION_PROFILE']):
        for table in p4.info(return_info=True, print_info=False):
            if table['type'] in table_types:
                if verbose:
                    print("Clearing table {:<40} ... ".
                          format(table['full_name']), end='', flush=True)
                table['node'].clear(batch=batching)
                if verbose:
                    print('Done')
`

type script struct {
	bytes.Buffer
}

func (s *script) line(format string, a ...interface{}) {
	fmt.Fprintf(s, format, a...)
	s.WriteByte('\n')
}

func (s *script) blank() {
	s.WriteByte('\n')
}

/*
Render takes a compiled program and a configuration and returns the
script programming the program's tables, or an error if the
configuration is invalid.
*/
func Render(p *arbor.Program, c Config) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if p.NumTrees() == 0 || len(p.FeatureTables) == 0 {
		return nil, fmt.Errorf("cannot render a program without trees or features")
	}
	s := &script{}
	s.line("p4 = bfrt.%s.pipe", c.Program)
	s.blank()
	s.WriteString(clearAll)
	s.blank()
	s.line("clear_all(verbose=True)")
	s.blank()
	for _, port := range c.Ports {
		s.line("for lane in range(0, %d):", port.Lanes)
		s.line("    dp = bfrt.port.port_hdl_info.get(CONN_ID=%d, CHNL_ID=lane, print_ents=False).data[b'$DEV_PORT']", port.Cage)
		s.line("    bfrt.port.port.add(DEV_PORT=dp, SPEED=%q, FEC=%q, AUTO_NEGOTIATION=%q, PORT_ENABLE=True)", port.Speed, port.FEC, port.AutoNeg)
	}
	if len(c.Ports) > 0 {
		s.blank()
	}

	bind := func(r Role, i int) {
		s.line("%s = p4.%s.%s", r.Table(i), c.Control, r.Table(i))
	}
	bind(VotingTable, 0)
	for _, table := range p.FeatureTables {
		bind(FeatureTable, table.Feature)
	}
	s.blank()
	for _, tp := range p.Trees {
		bind(CodeTable, tp.Index)
	}
	s.blank()

	for _, table := range p.FeatureTables {
		for _, r := range table.Ranges {
			s.line("%s", Statement(FeatureTable, table.Feature, FeatureParams(table.Feature, r)))
		}
		s.blank()
	}
	s.line(`print("******************* ENTERED FEATURE TABLE RULES *****************")`)
	s.blank()
	for _, tp := range p.Trees {
		for _, e := range tp.Entries {
			s.line("%s", Statement(CodeTable, tp.Index, CodeParams(tp.Index, e)))
		}
		s.blank()
	}
	for _, e := range p.Voting.Entries {
		s.line("%s", Statement(VotingTable, 0, VotingParams(e)))
	}
	s.line("bfrt.complete_operations()")
	s.blank()

	s.line(`print("******************* SAMPLE PROGAMMING RESULTS *****************")`)
	tree, feature := p.Trees[0].Index, p.FeatureTables[0].Feature
	s.line(`print("Table code%d:")`, tree)
	s.line("%s.dump(table=True)", CodeTable.Table(tree))
	s.line(`print("Table feature%d:")`, feature)
	s.line("%s.dump(table=True)", FeatureTable.Table(feature))
	return s.Bytes(), nil
}

/*
Write renders the script for the program and configuration and writes it
to w. Nothing is written if the script cannot be rendered.
*/
func Write(w io.Writer, p *arbor.Program, c Config) error {
	data, err := Render(p, c)
	if err != nil {
		return err
	}
	if _, err = w.Write(data); err != nil {
		return &arbor.ResourceError{Op: "writing script", Path: "output", Err: err}
	}
	return nil
}

/*
WriteFile renders the script for the program and configuration and
writes it to the file at path. The script is written to a temporary file
in the same directory that is then renamed, so path is left untouched if
rendering or writing fails. I/O failures are returned as
*arbor.ResourceError.
*/
func WriteFile(path string, p *arbor.Program, c Config) (err error) {
	data, err := Render(p, c)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &arbor.ResourceError{Op: "creating script", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return &arbor.ResourceError{Op: "writing script", Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &arbor.ResourceError{Op: "writing script", Path: path, Err: err}
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return &arbor.ResourceError{Op: "writing script", Path: path, Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return &arbor.ResourceError{Op: "writing script", Path: path, Err: err}
	}
	return nil
}
