package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <declarations.go>",
		Short: "Classify declarations and validate benchmark suites",
		Long: `Classify the declarations of a Go source file by arity and capability,
validate every suite in the suites file against them, and print the
result without running any benchmarks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			_, err := buildWorkflow().Check(context.Background(), checkArgsFromConfig(args))

			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
