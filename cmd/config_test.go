package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestParseSlogLevelNames(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseSlogLevel("debug", slog.LevelInfo))
	require.Equal(t, slog.LevelInfo, parseSlogLevel("info", slog.LevelWarn))
	require.Equal(t, slog.LevelWarn, parseSlogLevel("warn", slog.LevelInfo))
	require.Equal(t, slog.LevelWarn, parseSlogLevel("warning", slog.LevelInfo))
	require.Equal(t, slog.LevelError, parseSlogLevel("error", slog.LevelInfo))
}

func TestParseSlogLevelNumeric(t *testing.T) {
	require.Equal(t, slog.Level(-4), parseSlogLevel("-4", slog.LevelInfo))
	require.Equal(t, slog.Level(8), parseSlogLevel("8", slog.LevelInfo))
}

func TestParseSlogLevelFallsBackToDefault(t *testing.T) {
	require.Equal(t, slog.LevelWarn, parseSlogLevel("", slog.LevelWarn))
	require.Equal(t, slog.LevelWarn, parseSlogLevel("loud", slog.LevelWarn))
	require.Equal(t, slog.LevelInfo, parseSlogLevel("  INFO  ", slog.LevelWarn))
}

func TestConfigDefaults(t *testing.T) {
	require.Equal(t, defaultReportsDir, viper.GetString(outputFlagName))
	require.Equal(t, defaultSuitesFile, viper.GetString(suitesFlagName))
	require.Equal(t, oracleStatic, viper.GetString(oracleConfigKey))
	require.Equal(t, defaultParallel, viper.GetInt(parallelConfigKey))
	require.Equal(t, defaultBenchCommand, viper.GetString(benchCommandKey))
	require.Equal(t, defaultLogFilename, viper.GetString(logFilenameKey))
}
