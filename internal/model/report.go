package model

// RawReport is one measurement record as emitted by the external
// benchmarking harness. Its Name encodes program id, input size and the
// baseline marker; everything else is untrusted point-estimate data.
type RawReport struct {
	Name            string    `json:"name"`
	Measurements    []float64 `json:"measurements"`
	Mean            float64   `json:"mean"`
	StdDev          float64   `json:"stddev"`
	OutlierEffect   string    `json:"outlier_effect"`
	OutlierFraction float64   `json:"outlier_fraction"`

	// Regressions maps responder name to named coefficient estimates,
	// e.g. "time" -> {"iters": 12.3}.
	Regressions map[string]map[string]float64 `json:"regressions,omitempty"`
}

// SimpleReport is the normalized per-measurement summary handed to the
// regression collaborator.
type SimpleReport struct {
	Program         string
	Size            DataSize
	Runtime         float64
	Samples         int
	StdDev          float64
	OutlierEffect   string
	OutlierFraction float64
}

// SizedReport pairs a SimpleReport with its input size for ordered
// per-program result lists.
type SizedReport struct {
	Size   DataSize
	Report SimpleReport
}

// BenchmarkReport is the aggregate dataset of one completed benchmark run.
// Built once from a correlation result and not mutated thereafter.
type BenchmarkReport struct {
	Programs     []string
	Data         DataOptions
	NormalForm   bool
	HarnessFlags []string

	// Results holds, per program, the (size, report) list sorted by size.
	Results map[string][]SizedReport

	// Baseline holds one report per measured size when a baseline series
	// was included; the program id of every entry is BaselineID.
	Baseline []SimpleReport
}
