package domain

import (
	"strconv"
	"strings"

	m "asympt.dev/pkg/asympt/internal/model"
)

// ReportName is the decoded form of a raw measurement report's name.
type ReportName struct {
	Baseline bool
	Size     m.DataSize
	// Program is the verbatim remainder after the size separator. It is
	// empty for baseline reports, which carry no program component.
	Program string
}

const (
	baselineMarker = "Baseline for"
	sizeToken      = "Input Size"
)

// ParseReportName decodes a report name produced by the benchmarking
// harness:
//
//	Input Size 5/reverse
//	Input Sizes (5, 10)/zip
//	Baseline for Input Size 5
//
// The format is bit-exact; any deviation is an error, because a single
// misparsed name corrupts the grouping of the whole report set.
func ParseReportName(name string) (ReportName, error) {
	var parsed ReportName

	idx := strings.Index(name, sizeToken)
	if idx < 0 {
		return parsed, m.Structuralf("report name %q lacks the %q token", name, sizeToken)
	}

	switch prefix := strings.TrimSpace(name[:idx]); prefix {
	case "":
	case baselineMarker:
		parsed.Baseline = true
	default:
		return parsed, m.Structuralf("report name %q has unexpected text before the %q token", name, sizeToken)
	}

	rest := name[idx+len(sizeToken):]

	// Optional plural marker directly after the token.
	rest = strings.TrimPrefix(rest, "s")
	rest = strings.TrimLeft(rest, " ")

	var err error
	if strings.HasPrefix(rest, "(") {
		parsed.Size, rest, err = parsePairSize(name, rest)
	} else {
		parsed.Size, rest, err = parseSingleSize(name, rest)
	}

	if err != nil {
		return ReportName{}, err
	}

	if rest == "" {
		// No separator: legal only when no program component follows.
		return parsed, nil
	}

	if !strings.HasPrefix(rest, "/") {
		return ReportName{}, m.Structuralf("report name %q has trailing text before the separator", name)
	}

	parsed.Program = rest[1:]

	return parsed, nil
}

func parsePairSize(name, rest string) (m.DataSize, string, error) {
	end := strings.Index(rest, ")")
	if end < 0 {
		return m.DataSize{}, "", m.Structuralf("report name %q has an unterminated size pair", name)
	}

	parts := strings.Split(rest[1:end], ",")
	if len(parts) != 2 {
		return m.DataSize{}, "", m.Structuralf("report name %q has a malformed size pair", name)
	}

	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return m.DataSize{}, "", m.Structuralf("report name %q has a non-integer size: %v", name, err)
	}

	second, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return m.DataSize{}, "", m.Structuralf("report name %q has a non-integer size: %v", name, err)
	}

	return m.BinarySize(first, second), rest[end+1:], nil
}

func parseSingleSize(name, rest string) (m.DataSize, string, error) {
	end := strings.IndexByte(rest, '/')
	if end < 0 {
		end = len(rest)
	}

	n, err := strconv.Atoi(strings.TrimSpace(rest[:end]))
	if err != nil {
		return m.DataSize{}, "", m.Structuralf("report name %q has a non-integer size: %v", name, err)
	}

	return m.UnarySize(n), rest[end:], nil
}
