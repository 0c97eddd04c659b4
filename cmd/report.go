package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"asympt.dev/pkg/asympt/internal/domain"
	m "asympt.dev/pkg/asympt/internal/model"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Display a previously correlated dataset",
		Long: `Display the dataset of a previous run from the reports directory.
Falls back to correlating the raw harness reports when no persisted
dataset is found.`,
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			reportsPath := m.Path(viper.GetString(outputFlagName))

			return buildWorkflow().Report(context.Background(), domain.ReportArgs{Reports: reportsPath})
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
