package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "asympt.dev/pkg/asympt/internal/model"
)

func TestBuildBenchmarkReportOrdersProgramsAndSizes(t *testing.T) {
	corr, err := Correlate([]m.RawReport{
		rawReport("Input Size 10/sort", 4),
		rawReport("Input Size 5/sort", 3),
		rawReport("Input Size 10/reverse", 2),
		rawReport("Input Size 5/reverse", 1),
	})
	require.NoError(t, err)

	report := BuildBenchmarkReport(m.DefaultTestSuite(), corr)

	require.Equal(t, []string{"reverse", "sort"}, report.Programs)

	series := report.Results["reverse"]
	require.Len(t, series, 2)
	require.Equal(t, m.UnarySize(5), series[0].Size)
	require.Equal(t, 1.0, series[0].Report.Runtime)
	require.Equal(t, m.UnarySize(10), series[1].Size)
	require.Equal(t, 2.0, series[1].Report.Runtime)
}

func TestBuildBenchmarkReportFirstDuplicateWins(t *testing.T) {
	corr, err := Correlate([]m.RawReport{
		rawReport("Input Size 5/reverse", 1),
		rawReport("Input Size 5/reverse", 9),
		rawReport("Input Size 10/reverse", 2),
	})
	require.NoError(t, err)

	report := BuildBenchmarkReport(m.DefaultTestSuite(), corr)

	series := report.Results["reverse"]
	require.Len(t, series, 2)
	require.Equal(t, 1.0, series[0].Report.Runtime)
}

func TestBuildBenchmarkReportNormalizesBaseline(t *testing.T) {
	corr, err := Correlate([]m.RawReport{
		rawReport("Input Size 5/reverse", 1),
		rawReport("Input Size 10/reverse", 2),
		rawReport("Baseline for Input Size 5", 0.1),
		rawReport("Baseline for Input Size 10", 0.2),
	})
	require.NoError(t, err)

	report := BuildBenchmarkReport(m.DefaultTestSuite(), corr)

	require.Len(t, report.Baseline, 2)
	require.Equal(t, m.BaselineID, report.Baseline[0].Program)
	require.Equal(t, 0.1, report.Baseline[0].Runtime)
	require.Equal(t, m.UnarySize(10), report.Baseline[1].Size)
}

func TestBuildBenchmarkReportCarriesSuiteSettings(t *testing.T) {
	suite := m.DefaultTestSuite()
	suite.EvalNormalForm = true
	suite.HarnessFlags = []string{"-O2"}

	corr, err := Correlate([]m.RawReport{rawReport("Input Size 5/reverse", 1)})
	require.NoError(t, err)

	report := BuildBenchmarkReport(suite, corr)

	require.True(t, report.NormalForm)
	require.Equal(t, []string{"-O2"}, report.HarnessFlags)
	require.Equal(t, suite.Data, report.Data)
}
