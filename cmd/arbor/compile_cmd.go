package main

import (
	"github.com/spf13/cobra"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/emit"
)

func compileCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a forest into a table programming script",
		Long: `Compile a decision forest into range, codeword and voting table entries
and write them as a BfRt Python script (defaults to STDOUT)`,
		Run: func(cmd *cobra.Command, args []string) {
			config := rootConfig
			if err := config.forestSource(); err != nil {
				config.fail(1, err)
			}
			opts, err := config.compileOptions()
			if err != nil {
				config.fail(1, err)
			}
			ec, err := config.emitConfig()
			if err != nil {
				config.fail(1, err)
			}
			f, err := config.loadForest(config.Context())
			if err != nil {
				config.fail(2, err)
			}
			config.log.WithField("trees", f.NumTrees()).Debug("compiling forest")
			p, err := arbor.Compile(config.Context(), f, opts)
			if err != nil {
				config.fail(3, err)
			}
			output := config.v.GetString("output")
			if output == "" {
				err = emit.Write(cmd.OutOrStdout(), p, ec)
			} else {
				err = emit.WriteFile(output, p, ec)
			}
			if err != nil {
				config.fail(4, err)
			}
			config.log.WithField("output", output).Debug("script written")
		},
	}
	addCompileFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "path to the file the script is written to (defaults to STDOUT)")
	cmd.Flags().String("program", "", "name of the P4 program whose tables are programmed (required)")
	cmd.Flags().String("control", "Ingress", "control block holding the tables")
	cmd.Flags().Bool("no-ports", false, "skip port bring-up")
	return cmd
}
