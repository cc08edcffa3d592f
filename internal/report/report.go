// Package report renders validation outcomes for the CLI, as JSON for
// machines or as text for humans.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/spector-project/spector/pkg/validate"
)

// Entry is one defect with its location in the document.
type Entry struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Report is the outcome of validating one document.
type Report struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Document   string  `json:"document,omitempty"`
	Valid      bool    `json:"valid"`
	Violations []Entry `json:"violations,omitempty"`
}

// New returns a passing report for the named document and validation kind.
func New(kind, document string) Report {
	return Report{
		ID:       uuid.NewString(),
		Kind:     kind,
		Document: document,
		Valid:    true,
	}
}

// Failed builds a failing report from err. An *validate.AggregateError
// contributes one entry per violation; any other error contributes a single
// entry.
func Failed(kind, document string, err error) Report {
	r := New(kind, document)
	r.Valid = false
	var agg *validate.AggregateError
	if errors.As(err, &agg) {
		for _, v := range agg.Violations {
			r.Violations = append(r.Violations, Entry{Path: v.Path, Message: v.Message})
		}
		return r
	}
	r.Violations = append(r.Violations, Entry{Message: err.Error()})
	return r
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

// WriteText writes a short human-readable summary.
func (r Report) WriteText(w io.Writer) error {
	var b strings.Builder
	status := "valid"
	if !r.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(&b, "%s: %s (%s)\n", r.Document, status, r.Kind)
	for _, v := range r.Violations {
		if v.Path != "" {
			fmt.Fprintf(&b, "  - %s: %s\n", v.Path, v.Message)
			continue
		}
		fmt.Fprintf(&b, "  - %s\n", v.Message)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
