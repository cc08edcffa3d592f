//go:build e2e

package e2e

import (
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/spector-project/spector/internal/codegen"
	"github.com/spector-project/spector/pkg/schema"
	"github.com/spector-project/spector/pkg/types"
	"github.com/spector-project/spector/pkg/validate"
)

const provenanceDoc = `{
  "_type": "https://in-toto.io/Statement/v1",
  "subject": [
    {"name": "pkg.tar.gz", "digest": {"sha256": "aabbccdd00112233"}}
  ],
  "predicateType": "https://slsa.dev/provenance/v1",
  "predicate": {
    "buildDefinition": {
      "buildType": "https://example.com/ci/v1",
      "externalParameters": {"workflow": "release.yml"}
    },
    "runDetails": {
      "builder": {"id": "https://example.com/runner"},
      "metadata": {"invocationId": "run-42"}
    }
  }
}`

// TestFullPipeline_SchemaValidateDecodeRegenerate drives a document through
// every stage: reflect the envelope schema, validate exhaustively against it,
// decode into typed form, re-encode, and validate the re-encoded bytes again.
func TestFullPipeline_SchemaValidateDecodeRegenerate(t *testing.T) {
	envelopeSchema, err := schema.ForStatement()
	if err != nil {
		t.Fatalf("schema generation: %v", err)
	}

	v, err := validate.NewSchemaValidator[types.Statement](envelopeSchema)
	if err != nil {
		t.Fatalf("schema compile: %v", err)
	}
	stmt, err := v.Validate([]byte(provenanceDoc))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	prov, ok := stmt.Predicate.(*types.SLSAProvenanceV1)
	if !ok {
		t.Fatalf("expected provenance predicate, got %T", stmt.Predicate)
	}
	if prov.RunDetails.Metadata == nil || prov.RunDetails.Metadata.InvocationID != "run-42" {
		t.Fatalf("metadata lost in decode: %+v", prov.RunDetails)
	}

	reencoded, err := json.Marshal(stmt)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if _, err := v.Validate(reencoded); err != nil {
		t.Fatalf("re-encoded statement no longer validates: %v", err)
	}
}

func TestFullPipeline_DefectsSurviveEveryStage(t *testing.T) {
	defective := `{
  "_type": "https://in-toto.io/Statement/v1",
  "subject": []
}`
	envelopeSchema, err := schema.ForStatement()
	if err != nil {
		t.Fatal(err)
	}
	v, err := validate.NewSchemaValidator[types.Statement](envelopeSchema)
	if err != nil {
		t.Fatal(err)
	}

	_, err = v.Validate([]byte(defective))
	var agg *validate.AggregateError
	if !errors.As(err, &agg) {
		t.Fatalf("expected aggregate error, got %T: %v", err, err)
	}
	if len(agg.Violations) < 2 {
		t.Fatalf("expected missing predicateType and predicate both reported, got %+v", agg.Violations)
	}

	// The fail-fast path rejects the same document with a single defect.
	if _, err := types.DecodeStatement([]byte(defective)); err == nil {
		t.Fatal("direct decode should also reject the document")
	}
}

func TestFullPipeline_GeneratedCodeFromGeneratedSchema(t *testing.T) {
	for _, typeURL := range []string{
		types.PredicateSLSAProvenanceV1,
		types.PredicateSLSAProvenanceV02,
		types.PredicateSCAIReportV02,
	} {
		doc, err := schema.ForPredicate(typeURL)
		if err != nil {
			t.Fatalf("schema for %s: %v", typeURL, err)
		}
		src, err := codegen.Generate(doc, codegen.Options{Package: "generated"})
		if err != nil {
			t.Fatalf("codegen for %s: %v", typeURL, err)
		}
		if !strings.Contains(string(src), "package generated") {
			t.Fatalf("missing package clause for %s", typeURL)
		}
		if !strings.Contains(string(src), "struct {") {
			t.Fatalf("no struct emitted for %s", typeURL)
		}
	}
}
