package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/jsongate/internal/domain"
)

func sampleSummary() domain.RunSummary {
	s := domain.NewRunSummary("run-42", 4, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s.Add(domain.ProcessingResult{ItemID: "b.json", State: domain.StateInvalid, Destination: "/out/invalid/b.json",
		FieldErrors: domain.FieldErrors{{Path: "email", Code: domain.CodeInvalidFormat, Message: "invalid email address: missing @"}}})
	s.Add(domain.ProcessingResult{ItemID: "a.json", State: domain.StateValid, Destination: "/out/valid/a.json", Elapsed: time.Millisecond})
	s.Add(domain.ProcessingResult{ItemID: "c.json", State: domain.StateIOError, Err: errors.New("read c.json: not found")})
	s.Finish(s.StartedAt.Add(1500 * time.Millisecond))
	return *s
}

func TestFromSummary(t *testing.T) {
	r := FromSummary(sampleSummary())

	assert.Equal(t, "run-42", r.RunID)
	assert.Equal(t, "1.5s", r.Elapsed)
	assert.Equal(t, 3, r.Total)
	require.Len(t, r.Items, 3)
	assert.Equal(t, []string{"a.json", "b.json", "c.json"}, []string{r.Items[0].ID, r.Items[1].ID, r.Items[2].ID})
	assert.Equal(t, "Invalid", r.Items[1].Outcome)
	assert.Equal(t, "email", r.Items[1].FieldErrors[0].Path)
	assert.Equal(t, "read c.json: not found", r.Items[2].Error)
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSummary(), FormatJSON))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.Valid)
	assert.Equal(t, 1, got.Invalid)
	assert.Equal(t, 1, got.IOError)
	assert.Contains(t, buf.String(), `"fieldErrors"`)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSummary(), FormatYAML))

	var got Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-42", got.RunID)
	assert.Len(t, got.Items, 3)
	assert.Contains(t, buf.String(), "runId: run-42")
}

func TestWrite_UnknownFormat(t *testing.T) {
	require.Error(t, Write(&bytes.Buffer{}, sampleSummary(), Format("xml")))
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"report.json", FormatJSON, false},
		{"REPORT.JSON", FormatJSON, false},
		{"out/report.yaml", FormatYAML, false},
		{"report.yml", FormatYAML, false},
		{"report.txt", "", true},
		{"report", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "summary.yaml")
	require.NoError(t, WriteFile(path, sampleSummary()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "total: 3")

	require.Error(t, WriteFile(filepath.Join(dir, "summary.csv"), sampleSummary()))
	require.Error(t, WriteFile(filepath.Join(dir, "missing", "summary.json"), sampleSummary()))
}
