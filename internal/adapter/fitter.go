package adapter

import (
	"context"

	m "asympt.dev/pkg/asympt/internal/model"
)

// RegressionFitter is the external regression collaborator. It consumes a
// correlated dataset plus analysis options and returns the fitted models
// ranked by goodness of fit. The fitting mathematics live outside this
// module; the workflow only hands over data and relays results.
type RegressionFitter interface {
	Fit(ctx context.Context, report m.BenchmarkReport, opts m.AnalysisOptions) ([]m.FittedModel, error)
}
