package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdirTemp switches to a fresh temp directory for the duration of the test.
// It stands in for t.Chdir, which requires a newer Go testing package.
func chdirTemp(t *testing.T) {
	t.Helper()

	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
}

const checkDeclsSource = `package sample

func Reverse(xs []int) []int {
	out := append([]int(nil), xs...)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
`

const checkSuitesSource = `suites:
  growth:
    programs: [Reverse]
capabilities:
  generatable:
    "[]int": true
  evaluable:
    "[]int": true
`

func TestCheckCommandEndToEnd(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.WriteFile("decls.go", []byte(checkDeclsSource), 0o600))
	require.NoError(t, os.WriteFile(defaultSuitesFile, []byte(checkSuitesSource), 0o600))

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	require.NoError(t, checkCmd.RunE(checkCmd, []string{"decls.go"}))

	text := strings.ToLower(out.String())
	require.Contains(t, text, "reverse")
	require.Contains(t, text, "growth")
	require.Contains(t, text, "valid")
}

func TestCheckCommandMissingDeclarations(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.WriteFile(defaultSuitesFile, []byte(checkSuitesSource), 0o600))

	err := checkCmd.RunE(checkCmd, []string{"absent.go"})
	require.Error(t, err)
}
