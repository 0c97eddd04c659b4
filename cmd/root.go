// Package cmd provides the root command and CLI setup for asympt.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"asympt.dev/pkg/asympt/internal/adapter"
	"asympt.dev/pkg/asympt/internal/controller"
	"asympt.dev/pkg/asympt/internal/domain"
	m "asympt.dev/pkg/asympt/internal/model"
)

var declSource adapter.DeclSource
var suiteSource adapter.SuiteSource
var workspaceFS adapter.WorkspaceFS
var reportStore adapter.ReportStore
var toolRunner adapter.ToolRunner
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// suitesFileFlag names the YAML file holding suites, test data and capability tables.
var suitesFileFlag string

// oracleModeFlag selects how capability queries are answered.
var oracleModeFlag string

// parallelFlag bounds the suite-validation worker count.
var parallelFlag int

// verboseFlag enables debug logging.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	declSource = adapter.NewGoDeclSource()
	suiteSource = adapter.NewYAMLSuiteSource()
	workspaceFS = adapter.NewLocalWorkspaceFS()
	reportStore = adapter.NewLocalReportStore(workspaceFS)
	toolRunner = adapter.NewLocalToolRunner(viper.GetString(benchCommandKey))
}

// buildWorkflow assembles the workflow with the oracle the current
// configuration selects. Flags are only parsed at execute time, so this
// cannot happen in init.
func buildWorkflow() domain.Workflow {
	var oracle adapter.CapabilityOracle
	if viper.GetString(oracleConfigKey) == oracleProbe {
		oracle = adapter.NewProbeOracle(toolRunner, workspaceFS)
	}

	return domain.NewWorkflow(
		declSource,
		suiteSource,
		reportStore,
		toolRunner,
		workspaceFS,
		ui,
		oracle,
		nil,
	)
}

const rootLongDescription = `Asympt estimates the empirical time complexity of programs by
benchmarking them over growing input sizes and fitting candidate runtime
models to the measurements.

Declarations are read from a Go source file; benchmark suites, manual
test data and capability tables live in a YAML suites file.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "asympt",
		Short: "Empirical complexity benchmarking tool",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for benchmark reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&suitesFileFlag, suitesFlagName, "s", viper.GetString(suitesFlagName), "YAML file with suites, test data and capability tables")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(suitesFlagName), suitesFlagName)

	cmd.PersistentFlags().StringVar(&oracleModeFlag, oracleFlagName, viper.GetString(oracleConfigKey), "capability oracle mode: static or probe")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(oracleFlagName), oracleConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel workers for suite validation")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func checkArgsFromConfig(args []string) domain.CheckArgs {
	var declarations m.Path
	if len(args) > 0 {
		declarations = m.Path(args[0])
	}

	return domain.CheckArgs{
		Declarations: declarations,
		Suites:       m.Path(viper.GetString(suitesFlagName)),
		Threads:      viper.GetInt(parallelConfigKey),
	}
}
