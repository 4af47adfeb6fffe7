package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/jsongate/internal/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenThenRun(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "data")
	valid := filepath.Join(root, "out", "valid")
	invalid := filepath.Join(root, "out", "invalid")
	reportPath := filepath.Join(root, "report.json")
	metricsPath := filepath.Join(root, "jsongate.prom")

	out, err := execute(t, "gen", "-v", "4", "-i", "3", "-d", src, "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 4 valid and 3 invalid")

	out, err = execute(t,
		"--source", src,
		"--valid-dir", valid,
		"--invalid-dir", invalid,
		"--workers", "3",
		"--report", reportPath,
		"--metrics-file", metricsPath,
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "valid:    4")
	assert.Contains(t, out, "invalid:  3")

	validFiles, err := os.ReadDir(valid)
	require.NoError(t, err)
	assert.Len(t, validFiles, 4)

	invalidFiles, err := os.ReadDir(invalid)
	require.NoError(t, err)
	assert.Len(t, invalidFiles, 3)

	format, err := report.FormatFor(reportPath)
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, format)
	assert.FileExists(t, reportPath)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "jsongate_items_processed_total")
}

func TestRun_InvalidConfig(t *testing.T) {
	root := t.TempDir()
	_, err := execute(t,
		"--source", root,
		"--valid-dir", filepath.Join(root, "same"),
		"--invalid-dir", filepath.Join(root, "same"),
	)
	assert.Error(t, err)
}

func TestRun_UnusableOutputDirs(t *testing.T) {
	root := t.TempDir()
	_, err := execute(t,
		"--source", root,
		"--valid-dir", filepath.Join(root, "missing-a"),
		"--invalid-dir", filepath.Join(root, "missing-b"),
		"--create-dirs=false",
		"--log-level", "error",
	)
	assert.Error(t, err)
}

func TestGen_NegativeCount(t *testing.T) {
	_, err := execute(t, "gen", "--valid=-1", "-d", t.TempDir())
	assert.Error(t, err)
}
