package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	m "asympt.dev/pkg/asympt/internal/model"
)

func TestLocalReportStoreLoadsInFilenameOrder(t *testing.T) {
	dir := t.TempDir()

	writeJSON(t, filepath.Join(dir, "b.json"), `[{"name": "Input Size 10/reverse", "mean": 2}]`)
	writeJSON(t, filepath.Join(dir, "a.json"), `[{"name": "Input Size 5/reverse", "mean": 1}]`)

	store := NewLocalReportStore(NewLocalWorkspaceFS())

	reports, err := store.LoadRawReports(m.Path(dir))
	require.NoError(t, err)

	require.Len(t, reports, 2)
	require.Equal(t, "Input Size 5/reverse", reports[0].Name)
	require.Equal(t, "Input Size 10/reverse", reports[1].Name)
}

func TestLocalReportStoreDecodesMeasurements(t *testing.T) {
	dir := t.TempDir()

	writeJSON(t, filepath.Join(dir, "r.json"), `[{
		"name": "Input Size 5/reverse",
		"measurements": [1.5, 2.5],
		"mean": 2.0,
		"stddev": 0.5,
		"outlier_effect": "slight",
		"outlier_fraction": 0.1,
		"regressions": {"time": {"iters": 1.9}}
	}]`)

	store := NewLocalReportStore(NewLocalWorkspaceFS())

	reports, err := store.LoadRawReports(m.Path(dir))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	require.Equal(t, []float64{1.5, 2.5}, report.Measurements)
	require.Equal(t, 2.0, report.Mean)
	require.Equal(t, 0.5, report.StdDev)
	require.Equal(t, "slight", report.OutlierEffect)
	require.Equal(t, 0.1, report.OutlierFraction)
	require.Equal(t, 1.9, report.Regressions["time"]["iters"])
}

func TestLocalReportStoreIgnoresNonJSONFiles(t *testing.T) {
	dir := t.TempDir()

	writeJSON(t, filepath.Join(dir, "r.json"), `[{"name": "Input Size 5/reverse"}]`)
	writeJSON(t, filepath.Join(dir, "notes.txt"), "not a report")

	store := NewLocalReportStore(NewLocalWorkspaceFS())

	reports, err := store.LoadRawReports(m.Path(dir))
	require.NoError(t, err)
	require.Len(t, reports, 1)
}

func TestLocalReportStoreMalformedJSONIsStructural(t *testing.T) {
	dir := t.TempDir()

	writeJSON(t, filepath.Join(dir, "r.json"), "{broken")

	store := NewLocalReportStore(NewLocalWorkspaceFS())

	_, err := store.LoadRawReports(m.Path(dir))
	require.Error(t, err)

	var structural *m.StructuralError

	require.ErrorAs(t, err, &structural)
}

func TestLocalReportStoreEmptyDir(t *testing.T) {
	store := NewLocalReportStore(NewLocalWorkspaceFS())

	reports, err := store.LoadRawReports(m.Path(t.TempDir()))
	require.NoError(t, err)
	require.Empty(t, reports)
}

func TestLocalReportStoreDatasetRoundTrip(t *testing.T) {
	path := m.Path(filepath.Join(t.TempDir(), "dataset.gob"))

	report := m.BenchmarkReport{
		Programs:   []string{"reverse"},
		NormalForm: true,
		Results: map[string][]m.SizedReport{
			"reverse": {{
				Size:   m.UnarySize(5),
				Report: m.SimpleReport{Program: "reverse", Size: m.UnarySize(5), Runtime: 1.5},
			}},
		},
	}

	store := NewLocalReportStore(NewLocalWorkspaceFS())

	require.NoError(t, store.SaveDataset(path, report))

	loaded, err := store.LoadDataset(path)
	require.NoError(t, err)
	require.Equal(t, report, loaded)
}

func TestLocalReportStoreLoadDatasetMissing(t *testing.T) {
	store := NewLocalReportStore(NewLocalWorkspaceFS())

	_, err := store.LoadDataset(m.Path(filepath.Join(t.TempDir(), "absent.gob")))
	require.Error(t, err)
}

func writeJSON(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
