package schema

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/spector-project/spector/pkg/types"
)

type schemaTree = map[string]any

func decodeSchema(t *testing.T, doc []byte) schemaTree {
	t.Helper()
	var tree schemaTree
	if err := json.Unmarshal(doc, &tree); err != nil {
		t.Fatalf("generated schema is not valid JSON: %v", err)
	}
	return tree
}

func definition(t *testing.T, tree schemaTree, name string) schemaTree {
	t.Helper()
	defs, ok := tree["$defs"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no $defs: %v", tree)
	}
	def, ok := defs[name].(map[string]any)
	if !ok {
		t.Fatalf("schema has no definition %q", name)
	}
	return def
}

func TestForStatement(t *testing.T) {
	doc, err := ForStatement()
	if err != nil {
		t.Fatalf("ForStatement failed: %v", err)
	}
	tree := decodeSchema(t, doc)
	stmt := definition(t, tree, "Statement")

	required, _ := stmt["required"].([]any)
	want := map[string]bool{"_type": false, "subject": false, "predicateType": false, "predicate": false}
	for _, r := range required {
		name, _ := r.(string)
		if _, ok := want[name]; !ok {
			t.Errorf("unexpected required field %q", name)
			continue
		}
		want[name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("field %q not marked required", name)
		}
	}

	props, _ := stmt["properties"].(map[string]any)
	typeProp, _ := props["_type"].(map[string]any)
	if typeProp["format"] != "uri" {
		t.Errorf("_type format = %v, want uri", typeProp["format"])
	}
	predProp, _ := props["predicate"].(map[string]any)
	if predProp["type"] != "object" {
		t.Errorf("predicate type = %v, want object", predProp["type"])
	}
}

func TestForPredicate_ProvenanceV1(t *testing.T) {
	doc, err := ForPredicate(types.PredicateSLSAProvenanceV1)
	if err != nil {
		t.Fatalf("ForPredicate failed: %v", err)
	}
	tree := decodeSchema(t, doc)

	bd := definition(t, tree, "BuildDefinition")
	props, _ := bd["properties"].(map[string]any)
	buildType, _ := props["buildType"].(map[string]any)
	if buildType["format"] != "uri" {
		t.Errorf("buildType format = %v, want uri", buildType["format"])
	}

	rd := definition(t, tree, "ResourceDescriptor")
	rdProps, _ := rd["properties"].(map[string]any)
	content, _ := rdProps["content"].(map[string]any)
	if content["contentEncoding"] != "base64" {
		t.Errorf("content contentEncoding = %v, want base64", content["contentEncoding"])
	}
	if required, ok := rd["required"]; ok {
		t.Errorf("ResourceDescriptor fields should all be optional, got required %v", required)
	}
}

func TestForPredicate_AllKnownKinds(t *testing.T) {
	for _, typeURL := range []string{
		types.PredicateSLSAProvenanceV1,
		types.PredicateSLSAProvenanceV02,
		types.PredicateSCAIReportV02,
	} {
		if _, err := ForPredicate(typeURL); err != nil {
			t.Errorf("ForPredicate(%q) failed: %v", typeURL, err)
		}
	}
}

func TestForPredicate_Unknown(t *testing.T) {
	if _, err := ForPredicate("https://unknown.example.com/v1"); err == nil {
		t.Fatal("expected an error for an unknown predicate type")
	}
}

func TestFor_Deterministic(t *testing.T) {
	a, err := ForStatement()
	if err != nil {
		t.Fatal(err)
	}
	b, err := ForStatement()
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("schema generation is not deterministic")
	}
}
