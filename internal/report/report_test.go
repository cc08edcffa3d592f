package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/spector-project/spector/pkg/validate"
)

func TestNew_PassingReport(t *testing.T) {
	r := New("in-toto-v1", "doc.json")
	if !r.Valid {
		t.Error("new report should be valid")
	}
	if r.ID == "" {
		t.Error("report should carry an ID")
	}
	if r.Kind != "in-toto-v1" || r.Document != "doc.json" {
		t.Errorf("report = %+v", r)
	}
}

func TestFailed_AggregateError(t *testing.T) {
	err := &validate.AggregateError{Violations: []validate.Violation{
		{Path: "name", Message: "name is required"},
		{Path: "age", Message: "Invalid type. Expected: integer, given: string"},
	}}
	r := Failed("schema", "doc.json", err)
	if r.Valid {
		t.Error("failed report should not be valid")
	}
	if len(r.Violations) != 2 {
		t.Fatalf("violations = %d, want 2", len(r.Violations))
	}
	if r.Violations[0].Path != "name" || r.Violations[1].Path != "age" {
		t.Errorf("violations = %+v", r.Violations)
	}
}

func TestFailed_PlainError(t *testing.T) {
	r := Failed("in-toto-v1", "doc.json", errors.New("boom"))
	if len(r.Violations) != 1 || r.Violations[0].Message != "boom" {
		t.Errorf("violations = %+v", r.Violations)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	r := Failed("schema", "doc.json", errors.New("boom"))
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Valid || decoded.Kind != "schema" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	err := &validate.AggregateError{Violations: []validate.Violation{
		{Path: "subject", Message: "subject is required"},
	}}
	r := Failed("schema", "doc.json", err)
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "INVALID") || !strings.Contains(out, "subject is required") {
		t.Errorf("output = %q", out)
	}
}
