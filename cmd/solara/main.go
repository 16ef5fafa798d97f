// Command solara runs the prediction pipeline on a spreadsheet without
// starting the web server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/angas/solara-go/hours"
	"github.com/angas/solara-go/logging"
	"github.com/spf13/cobra"
)

var Version = "?.?.?"

var (
	logLevel string
	timezone string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "solara",
		Short:         "Hourly UV, ozone and precipitation profiles from historical readings",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(slog.New(logging.NewConsoleHandler(cmd.ErrOrStderr(), logging.LevelFromString(&logLevel))))
			return hours.SetGuiTimezone(timezone)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "console log level")
	root.PersistentFlags().StringVar(&timezone, "timezone", "America/Lima", "timezone used for dates")

	root.AddCommand(newSummaryCmd(), newSampleCmd(), newPredictCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
