package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"asympt.dev/pkg/asympt/internal/domain"
	m "asympt.dev/pkg/asympt/internal/model"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <declarations.go>",
		Short: "Benchmark every valid suite and correlate the reports",
		Long: `Classify and validate as check does, then benchmark each valid suite
with the harness, correlate the raw reports into per-program runtime
series and persist the dataset under the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			return buildWorkflow().Run(context.Background(), domain.RunArgs{
				CheckArgs: checkArgsFromConfig(args),
				Reports:   m.Path(viper.GetString(outputFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
