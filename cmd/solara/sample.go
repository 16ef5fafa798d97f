package main

import (
	"fmt"
	"io"
	"time"

	"github.com/angas/solara-go/dataset"
	"github.com/angas/solara-go/hours"
	"github.com/angas/solara-go/predict"
	"github.com/angas/solara-go/report"
	"github.com/spf13/cobra"
)

func newSampleCmd() *cobra.Command {
	var (
		out   string
		days  int
		start string
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a synthetic dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse(hours.DateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}

			var s *uint64
			if cmd.Flags().Changed("seed") {
				s = &seed
			}
			ds := dataset.Sample(predict.NewRand(s), from, days)

			if out == "" {
				return printSummary(cmd.OutOrStdout(), ds)
			}

			if err := writeFile(out, func(w io.Writer) error { return report.WriteDatasetXLSX(w, ds) }); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d registros escritos en %s\n", ds.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the dataset to this .xlsx file")
	cmd.Flags().IntVar(&days, "days", dataset.SampleDays, "number of days")
	cmd.Flags().StringVar(&start, "start", dataset.SampleStart.Format(hours.DateLayout), "first day, YYYY-MM-DD")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible output")
	return cmd
}
