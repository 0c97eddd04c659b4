package adapter

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	m "asympt.dev/pkg/asympt/internal/model"
)

// ReportStore persists raw harness output and correlated datasets. Raw
// reports are the harness's JSON files; datasets are gob-encoded for the
// 'report' command to reload later.
type ReportStore interface {
	// LoadRawReports reads every *.json file in dir and returns the
	// concatenated raw reports in a stable (filename, position) order.
	LoadRawReports(dir m.Path) ([]m.RawReport, error)

	// SaveDataset writes a correlated benchmark dataset.
	SaveDataset(path m.Path, report m.BenchmarkReport) error

	// LoadDataset reads a previously saved dataset.
	LoadDataset(path m.Path) (m.BenchmarkReport, error)
}

// LocalReportStore backs ReportStore with the local filesystem.
type LocalReportStore struct {
	fs WorkspaceFS
}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore(fs WorkspaceFS) *LocalReportStore {
	return &LocalReportStore{fs: fs}
}

// LoadRawReports implements ReportStore. A missing or unreadable file is a
// structural failure: correlation cannot run on a partial report set.
func (s *LocalReportStore) LoadRawReports(dir m.Path) ([]m.RawReport, error) {
	files, err := s.fs.ListFiles(dir, "*.json")
	if err != nil {
		return nil, m.Structuralf("listing raw reports in %s: %v", dir, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	var reports []m.RawReport

	for _, file := range files {
		content, err := s.fs.ReadFile(file)
		if err != nil {
			return nil, m.Structuralf("reading raw report %s: %v", file, err)
		}

		var batch []m.RawReport
		if err := json.Unmarshal(content, &batch); err != nil {
			return nil, m.Structuralf("decoding raw report %s: %v", file, err)
		}

		reports = append(reports, batch...)
	}

	slog.Debug("loaded raw reports", "dir", dir, "files", len(files), "reports", len(reports))

	return reports, nil
}

// SaveDataset implements ReportStore.
func (s *LocalReportStore) SaveDataset(path m.Path, report m.BenchmarkReport) error {
	file, err := os.Create(string(path))
	if err != nil {
		slog.Error("Failed to create dataset file", "path", path, "error", err)
		return fmt.Errorf("create dataset file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close dataset file", "path", path, "error", err)
		}
	}()

	if err := gob.NewEncoder(file).Encode(report); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	return nil
}

// LoadDataset implements ReportStore.
func (s *LocalReportStore) LoadDataset(path m.Path) (m.BenchmarkReport, error) {
	var report m.BenchmarkReport

	file, err := os.Open(string(path))
	if err != nil {
		return report, fmt.Errorf("open dataset file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close dataset file", "path", path, "error", err)
		}
	}()

	if err := gob.NewDecoder(file).Decode(&report); err != nil {
		return report, fmt.Errorf("decode dataset: %w", err)
	}

	return report, nil
}
