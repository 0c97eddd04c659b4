package domain

import (
	"sort"
	"strings"

	m "asympt.dev/pkg/asympt/internal/model"
)

// SizedRaw pairs a raw report with its decoded size.
type SizedRaw struct {
	Size m.DataSize
	Raw  m.RawReport
}

// Correlation is the cross-validated grouping of one raw report set.
type Correlation struct {
	// Groups holds, per program, the raw reports sorted by size.
	// Duplicate (program, size) keys are preserved in input order.
	Groups map[string][]SizedRaw

	// Sizes is the sorted distinct size set shared by every group.
	Sizes []m.DataSize

	// Baseline holds the baseline series sorted by size, nil when the
	// report set carries none.
	Baseline []SizedRaw
}

// Correlate partitions, matches and cross-validates raw measurement
// reports by program and size. Any failure is structural and aborts the
// whole pass: a partially correlated dataset must never reach the
// regression stage.
func Correlate(reports []m.RawReport) (Correlation, error) {
	corr := Correlation{Groups: map[string][]SizedRaw{}}

	if len(reports) == 0 {
		return corr, m.Structuralf("no raw reports to correlate")
	}

	for _, report := range reports {
		parsed, err := ParseReportName(report.Name)
		if err != nil {
			return corr, err
		}

		entry := SizedRaw{Size: parsed.Size, Raw: report}

		if parsed.Baseline {
			if parsed.Program != "" {
				return corr, m.Structuralf(
					"baseline report %q must not carry a program identifier", report.Name)
			}

			corr.Baseline = append(corr.Baseline, entry)

			continue
		}

		if parsed.Program == "" {
			return corr, m.Structuralf("report %q lacks a program identifier", report.Name)
		}

		corr.Groups[parsed.Program] = append(corr.Groups[parsed.Program], entry)
	}

	if len(corr.Groups) == 0 {
		return corr, m.Structuralf("report set contains only baseline measurements")
	}

	if err := crossValidateSizes(&corr); err != nil {
		return corr, err
	}

	sortBySize(corr.Baseline)

	for program := range corr.Groups {
		sortBySize(corr.Groups[program])
	}

	return corr, nil
}

// crossValidateSizes enforces the global invariant: every program (and the
// baseline, when present) is measured at exactly the same distinct sizes.
func crossValidateSizes(corr *Correlation) error {
	programs := make([]string, 0, len(corr.Groups))
	for program := range corr.Groups {
		programs = append(programs, program)
	}

	sort.Strings(programs)

	reference := programs[0]
	corr.Sizes = distinctSizes(corr.Groups[reference])

	for _, program := range programs[1:] {
		sizes := distinctSizes(corr.Groups[program])
		if !equalSizes(corr.Sizes, sizes) {
			return m.Structuralf("programs %q and %q are measured at different sizes: %s vs %s",
				reference, program, formatSizes(corr.Sizes), formatSizes(sizes))
		}
	}

	if corr.Baseline != nil {
		sizes := distinctSizes(corr.Baseline)
		if !equalSizes(corr.Sizes, sizes) {
			return m.Structuralf("baseline sizes %s do not match program sizes %s",
				formatSizes(sizes), formatSizes(corr.Sizes))
		}
	}

	return nil
}

func distinctSizes(entries []SizedRaw) []m.DataSize {
	seen := map[m.DataSize]struct{}{}

	var sizes []m.DataSize

	for _, entry := range entries {
		if _, ok := seen[entry.Size]; ok {
			continue
		}

		seen[entry.Size] = struct{}{}
		sizes = append(sizes, entry.Size)
	}

	sort.Slice(sizes, func(i, j int) bool { return sizes[i].Compare(sizes[j]) < 0 })

	return sizes
}

func equalSizes(a, b []m.DataSize) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func formatSizes(sizes []m.DataSize) string {
	parts := make([]string, 0, len(sizes))
	for _, size := range sizes {
		parts = append(parts, size.String())
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func sortBySize(entries []SizedRaw) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Size.Compare(entries[j].Size) < 0
	})
}
