package domain

import (
	m "asympt.dev/pkg/asympt/internal/model"
)

// timeResponder and itersCoefficient select the preferred runtime
// estimate: the regression of elapsed time against iteration count.
const (
	timeResponder    = "time"
	itersCoefficient = "iters"
)

// SimpleReportFrom normalizes one correlated raw report. The runtime is
// the "iters" coefficient of the "time" responder when present, otherwise
// the overall mean; the fallback is expected, never an error. Stddev and
// outlier data are copied verbatim.
func SimpleReportFrom(raw m.RawReport, program string, size m.DataSize) m.SimpleReport {
	runtime := raw.Mean

	if coefficients, ok := raw.Regressions[timeResponder]; ok {
		if estimate, ok := coefficients[itersCoefficient]; ok {
			runtime = estimate
		}
	}

	return m.SimpleReport{
		Program:         program,
		Size:            size,
		Runtime:         runtime,
		Samples:         len(raw.Measurements),
		StdDev:          raw.StdDev,
		OutlierEffect:   raw.OutlierEffect,
		OutlierFraction: raw.OutlierFraction,
	}
}
