package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/pipeline"
	"github.com/pbanos/arbor/samples"
	"github.com/pbanos/arbor/samples/csv"
	"github.com/pbanos/arbor/samples/mongosource"
	"github.com/pbanos/arbor/samples/sqlsource"
)

func verifyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the compiled tables of a forest against a sample set",
		Long: `Compile a forest, classify a set of samples both through the compiled
tables and by traversing the forest, and report any disagreement along
with the accuracy of the tables on labelled samples`,
		Run: func(cmd *cobra.Command, args []string) {
			config := rootConfig
			if err := config.forestSource(); err != nil {
				config.fail(1, err)
			}
			opts, err := config.compileOptions()
			if err != nil {
				config.fail(1, err)
			}
			f, err := config.loadForest(config.Context())
			if err != nil {
				config.fail(2, err)
			}
			p, err := arbor.Compile(config.Context(), f, opts)
			if err != nil {
				config.fail(3, err)
			}
			src, err := config.sampleSource(f.Features)
			if err != nil {
				config.fail(4, err)
			}
			defer src.Close()
			report, err := pipeline.Verify(config.Context(), p, f, src, config.log)
			if err != nil {
				src.Close()
				config.fail(5, err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d samples, %d outside the match fields, %d leaf mismatches, %d vote mismatches\n",
				report.Samples, report.OutOfField, report.LeafMismatches, report.VoteMismatches)
			if report.Labelled > 0 {
				fmt.Fprintf(w, "%f success rate over %d labelled samples\n", report.Accuracy(), report.Labelled)
			}
			if report.Mismatches() > 0 {
				src.Close()
				config.fail(6, fmt.Errorf("compiled tables disagree with the forest on %d samples", report.Mismatches()))
			}
		},
	}
	addCompileFlags(cmd)
	cmd.Flags().StringP("samples", "s", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the samples (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().String("samples-table", sqlsource.DefaultTable, "table or collection holding the samples in a database")
	cmd.Flags().StringP("label", "l", "", "column holding the class label of the samples, if any")
	return cmd
}

func (rc *rootCmdConfig) sampleSource(features []string) (samples.Source, error) {
	location := rc.v.GetString("samples")
	table := rc.v.GetString("samples-table")
	cols := samples.Columns{Features: features, Label: rc.v.GetString("label")}
	log := rc.log.WithField("samples", location)
	switch {
	case strings.HasPrefix(location, "postgresql://"), strings.HasPrefix(location, "postgres://"):
		log.Debug("opening PostgreSQL sample source")
		return sqlsource.OpenPostgreSQL(location, table, cols)
	case strings.HasPrefix(location, "mongodb://"):
		log.Debug("opening MongoDB sample source")
		return mongosource.Dial(location, table, cols)
	case strings.HasSuffix(location, ".db"):
		log.Debug("opening SQLite3 sample source")
		return sqlsource.OpenSQLite3(location, table, cols)
	}
	log.Debug("opening CSV sample source")
	return csv.Open(location, cols)
}
