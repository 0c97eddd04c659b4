package domain

import (
	"sort"

	m "asympt.dev/pkg/asympt/internal/model"
)

// BuildBenchmarkReport assembles the aggregate dataset of a completed run
// from a validated suite and its correlation. Per-program results are
// ordered by size; when the correlation carries a baseline series it is
// normalized under the sentinel baseline identifier.
//
// Duplicate (program, size) keys in the correlation are resolved
// first-seen: the earliest raw report for a size wins.
func BuildBenchmarkReport(suite m.TestSuite, corr Correlation) m.BenchmarkReport {
	report := m.BenchmarkReport{
		Data:         suite.Data,
		NormalForm:   suite.EvalNormalForm,
		HarnessFlags: suite.HarnessFlags,
		Results:      map[string][]m.SizedReport{},
	}

	for program := range corr.Groups {
		report.Programs = append(report.Programs, program)
	}

	sort.Strings(report.Programs)

	for _, program := range report.Programs {
		report.Results[program] = extractSeries(corr.Groups[program], program, corr.Sizes)
	}

	for _, entry := range firstPerSize(corr.Baseline, corr.Sizes) {
		report.Baseline = append(report.Baseline,
			SimpleReportFrom(entry.Raw, m.BaselineID, entry.Size))
	}

	return report
}

func extractSeries(entries []SizedRaw, program string, sizes []m.DataSize) []m.SizedReport {
	series := make([]m.SizedReport, 0, len(sizes))

	for _, entry := range firstPerSize(entries, sizes) {
		series = append(series, m.SizedReport{
			Size:   entry.Size,
			Report: SimpleReportFrom(entry.Raw, program, entry.Size),
		})
	}

	return series
}

// firstPerSize picks, for each size in order, the first raw report with
// that size.
func firstPerSize(entries []SizedRaw, sizes []m.DataSize) []SizedRaw {
	byDataSize := map[m.DataSize]SizedRaw{}

	for _, entry := range entries {
		if _, ok := byDataSize[entry.Size]; !ok {
			byDataSize[entry.Size] = entry
		}
	}

	var picked []SizedRaw

	for _, size := range sizes {
		if entry, ok := byDataSize[size]; ok {
			picked = append(picked, entry)
		}
	}

	return picked
}
