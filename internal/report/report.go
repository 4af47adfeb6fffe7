// Package report renders a run summary as a JSON or YAML document.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/jsongate/internal/domain"
)

// Format selects the report encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Report is the serialized form of a domain.RunSummary.
type Report struct {
	RunID     string       `json:"runId" yaml:"runId"`
	StartedAt time.Time    `json:"startedAt" yaml:"startedAt"`
	Elapsed   string       `json:"elapsed" yaml:"elapsed"`
	Workers   int          `json:"workers" yaml:"workers"`
	Total     int          `json:"total" yaml:"total"`
	Valid     int          `json:"valid" yaml:"valid"`
	Invalid   int          `json:"invalid" yaml:"invalid"`
	IOError   int          `json:"ioError" yaml:"ioError"`
	Skipped   int          `json:"skipped" yaml:"skipped"`
	Canceled  bool         `json:"canceled" yaml:"canceled"`
	Items     []ItemReport `json:"items" yaml:"items"`
}

// ItemReport is one processed item.
type ItemReport struct {
	ID          string              `json:"id" yaml:"id"`
	Outcome     string              `json:"outcome" yaml:"outcome"`
	Destination string              `json:"destination,omitempty" yaml:"destination,omitempty"`
	Elapsed     string              `json:"elapsed" yaml:"elapsed"`
	Error       string              `json:"error,omitempty" yaml:"error,omitempty"`
	FieldErrors []domain.FieldError `json:"fieldErrors,omitempty" yaml:"fieldErrors,omitempty"`
}

// FromSummary converts a summary. Items are sorted by id so reports of
// the same input are stable regardless of completion order.
func FromSummary(s domain.RunSummary) Report {
	r := Report{
		RunID:     s.RunID,
		StartedAt: s.StartedAt.UTC(),
		Elapsed:   s.Elapsed.String(),
		Workers:   s.Workers,
		Total:     s.Total,
		Valid:     s.Valid,
		Invalid:   s.Invalid,
		IOError:   s.IOError,
		Skipped:   s.Skipped,
		Canceled:  s.Canceled,
		Items:     make([]ItemReport, 0, len(s.Results)),
	}
	for _, res := range s.Results {
		r.Items = append(r.Items, ItemReport{
			ID:          res.ItemID,
			Outcome:     res.State.String(),
			Destination: res.Destination,
			Elapsed:     res.Elapsed.String(),
			Error:       res.Error(),
			FieldErrors: res.FieldErrors,
		})
	}
	sort.Slice(r.Items, func(i, j int) bool { return r.Items[i].ID < r.Items[j].ID })
	return r
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("report %s: unsupported extension (want .json, .yaml or .yml)", path)
	}
}

// Write encodes the summary to w.
func Write(w io.Writer, s domain.RunSummary, format Format) error {
	r := FromSummary(s)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteFile writes the summary to path, choosing the format by extension.
func WriteFile(path string, s domain.RunSummary) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := Write(f, s, format); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
