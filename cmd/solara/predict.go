package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/angas/solara-go/dataset"
	"github.com/angas/solara-go/hours"
	"github.com/angas/solara-go/predict"
	"github.com/angas/solara-go/report"
	"github.com/spf13/cobra"
)

func newPredictCmd() *cobra.Command {
	var (
		date      string
		seed      uint64
		xlsxOut   string
		pngOut    string
		allowPast bool
	)

	cmd := &cobra.Command{
		Use:   "predict <file.xlsx>",
		Short: "Predict the hourly profile of a day from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.ParseFile(args[0])
			if err != nil {
				return err
			}

			var s *uint64
			if cmd.Flags().Changed("seed") {
				s = &seed
			}
			if date == "" {
				date = hours.Today()
			}

			p, err := predict.New(predict.NewRand(s), allowPast).Predict(ds, date)
			if err != nil {
				return err
			}
			slog.Debug("prediction generated", slog.String("id", p.ID), slog.Float64("uvMax", p.UVMax))

			if err := printPrediction(cmd.OutOrStdout(), p); err != nil {
				return err
			}

			if xlsxOut != "" {
				if err := writeFile(xlsxOut, func(w io.Writer) error { return report.WriteXLSX(w, p) }); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Excel: %s\n", xlsxOut)
			}
			if pngOut != "" {
				if err := writeFile(pngOut, func(w io.Writer) error { return report.WritePNG(w, p) }); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Gráfico: %s\n", pngOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "day to predict, YYYY-MM-DD, default today")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible output")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "export the prediction to this .xlsx file")
	cmd.Flags().StringVar(&pngOut, "png", "", "export the hourly chart to this .png file")
	cmd.Flags().BoolVar(&allowPast, "allow-past", false, "accept dates before today")
	return cmd
}

func printPrediction(w io.Writer, p *predict.Prediction) error {
	fmt.Fprintf(w, "Predicción para el %s\n", hours.LongDate(p.Day))
	fmt.Fprintf(w, "UV máximo %.1f, ozono %.0f µg/m³, precipitación %.1f mm\n", p.UVMax, p.OzoneDay, p.PrecipitationDay)
	fmt.Fprintf(w, "Riesgo %s, precisión LSTM %d%%\n\n", p.Risk.Level, p.AccuracyPercent())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Hora\tUV\tO₃\tPP\tLSTM\t")
	for _, h := range p.Hours {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.2f\t%.1f\t\n", hours.Label(h.Hour), h.UV, h.Ozone, h.Precipitation, h.LSTMTrend)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, r := range p.Risk.Recommendations {
		fmt.Fprintf(w, "- %s\n", r)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
