package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/angas/solara-go/dataset"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <file.xlsx>",
		Short: "Show the detected columns and the statistics of a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.ParseFile(args[0])
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), ds)
		},
	}
}

func printSummary(w io.Writer, ds *dataset.Dataset) error {
	fmt.Fprintf(w, "%s: %s registros, %s\n", ds.Name, humanize.Comma(int64(ds.Len())), humanize.Bytes(uint64(max(ds.Size, 0))))
	if first := ds.FirstDate(); !first.IsZero() {
		fmt.Fprintf(w, "Periodo: %s a %s\n", first.Format("2006-01-02"), ds.LastDate().Format("2006-01-02"))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Variable\tColumna\tMínimo\tMáximo\tPromedio\tSin dato")
	sum := dataset.Summarize(ds)
	for _, v := range dataset.Variables {
		st := sum.Of(v)
		fmt.Fprintf(tw, "%s (%s)\t%s\t%.1f\t%.1f\t%.2f\t%d\n",
			v.Label(), v.Unit(), ds.Header[ds.Columns.Index(v)], st.Min, st.Max, st.Mean, st.Missing)
	}
	return tw.Flush()
}
