package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "asympt.dev/pkg/asympt/internal/model"
)

// SuiteFile is the decoded suites file: the loosely-typed suite records,
// the manual test datasets, and an optional static capability table for
// offline runs.
type SuiteFile struct {
	Suites   map[string]m.RawSuite `yaml:"suites"`
	TestData []m.TestData          `yaml:"test-data"`

	Capabilities struct {
		Generatable map[string]bool `yaml:"generatable"`
		Evaluable   map[string]bool `yaml:"evaluable"`
	} `yaml:"capabilities"`
}

// SuiteSource loads user suite declarations.
type SuiteSource interface {
	Load(path m.Path) (SuiteFile, error)
}

// YAMLSuiteSource reads a SuiteFile from a YAML document on disk.
type YAMLSuiteSource struct{}

// NewYAMLSuiteSource constructs a YAMLSuiteSource.
func NewYAMLSuiteSource() *YAMLSuiteSource {
	return &YAMLSuiteSource{}
}

// Load decodes the suites file and normalizes the test data entries.
func (a *YAMLSuiteSource) Load(path m.Path) (SuiteFile, error) {
	var file SuiteFile

	content, err := os.ReadFile(string(path))
	if err != nil {
		return file, fmt.Errorf("read suites file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, &file); err != nil {
		return file, fmt.Errorf("decode suites file %s: %w", path, err)
	}

	for i := range file.TestData {
		normalizeTestData(&file.TestData[i])
	}

	return file, nil
}

// normalizeTestData converts the raw YAML fields into the model's typed
// arity and size list. Malformed entries keep ArityUnsupported and are
// rejected during classification.
func normalizeTestData(data *m.TestData) {
	switch data.Kind {
	case "unary":
		data.Arity = m.ArityUnary
	case "binary":
		data.Arity = m.ArityBinary
	default:
		data.Arity = m.ArityUnsupported
		return
	}

	for _, raw := range data.RawSizes {
		switch {
		case data.Arity == m.ArityUnary && len(raw) == 1:
			data.Sizes = append(data.Sizes, m.UnarySize(raw[0]))
		case data.Arity == m.ArityBinary && len(raw) == 2:
			data.Sizes = append(data.Sizes, m.BinarySize(raw[0], raw[1]))
		default:
			// Arity/annotation mismatch; surfaced by the classifier.
			data.Arity = m.ArityUnsupported
			data.Sizes = nil

			return
		}
	}
}
