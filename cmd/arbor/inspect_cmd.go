package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pbanos/arbor"
)

func inspectCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the tables a forest compiles into",
		Long:  `Compile a forest and show the size of its tables, its feature ranges and any warning found`,
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
			w := cmd.OutOrStdout()
			writeSummary(w, p)
			if config.v.GetBool("ranges") {
				writeRanges(w, p)
			}
		},
	}
	addCompileFlags(cmd)
	cmd.Flags().Bool("ranges", false, "also show the ranges and codes of every feature table")
	return cmd
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	return table
}

func writeSummary(w io.Writer, p *arbor.Program) {
	header := []string{"FEATURE", "RANGES"}
	for i := range p.Trees {
		header = append(header, fmt.Sprintf("TREE %d BITS", i))
	}
	table := newTable(w, header...)
	for _, ft := range p.FeatureTables {
		row := []string{p.Features[ft.Feature], strconv.Itoa(len(ft.Ranges))}
		for _, width := range ft.Widths {
			row = append(row, strconv.Itoa(width))
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(w)

	table = newTable(w, "TREE", "SPLITS", "LEAVES", "CODEWORD BITS")
	for _, tp := range p.Trees {
		table.Append([]string{
			strconv.Itoa(tp.Index),
			strconv.Itoa(len(tp.Splits)),
			strconv.Itoa(len(tp.Entries)),
			strconv.Itoa(tp.Order.Len()),
		})
	}
	table.Render()
	fmt.Fprintln(w)

	fmt.Fprintf(w, "voting table: %d entries for %d trees and %d classes (tie-break %s)\n",
		len(p.Voting.Entries), p.NumTrees(), p.NumClasses(), p.Policy)
	for _, warning := range p.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

func writeRanges(w io.Writer, p *arbor.Program) {
	for _, ft := range p.FeatureTables {
		fmt.Fprintf(w, "\n%s:\n", p.Features[ft.Feature])
		header := []string{"START", "END"}
		for i := range p.Trees {
			header = append(header, fmt.Sprintf("CODE %d", i))
		}
		table := newTable(w, header...)
		for _, r := range ft.Ranges {
			row := []string{strconv.FormatUint(r.Start, 10), strconv.FormatUint(r.End, 10)}
			for _, c := range r.Codes {
				row = append(row, c.Literal())
			}
			table.Append(row)
		}
		table.Render()
	}
}
