// Package codegen turns a JSON Schema document into Go type declarations
// with (un)marshaling struct tags. It is a pure function from schema text to
// source text, used by the code-generate command for bootstrapping models;
// nothing at validation time depends on it.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// Options controls generated output.
type Options struct {
	// Package is the package clause of the generated file. Defaults to
	// "models".
	Package string
	// RootName names the type generated for the root schema when the root
	// itself describes an object. Defaults to the schema title, then "Root".
	RootName string
}

type schemaNode struct {
	Ref                  string                 `json:"$ref"`
	Title                string                 `json:"title"`
	Description          string                 `json:"description"`
	Type                 any                    `json:"type"`
	Properties           map[string]*schemaNode `json:"properties"`
	Required             []string               `json:"required"`
	Items                *schemaNode            `json:"items"`
	Format               string                 `json:"format"`
	ContentEncoding      string                 `json:"contentEncoding"`
	AdditionalProperties json.RawMessage        `json:"additionalProperties"`
	Defs                 map[string]*schemaNode `json:"$defs"`
	Definitions          map[string]*schemaNode `json:"definitions"`
}

func (n *schemaNode) typeName() string {
	s, _ := n.Type.(string)
	return s
}

type generator struct {
	opts      Options
	defs      map[string]*schemaNode
	emitted   map[string]bool
	order     []string
	out       map[string]string
	needsTime bool
}

// Generate produces gofmt-formatted Go source declaring the types described
// by schemaDoc. Named definitions come from $defs/definitions; anonymous
// nested objects become derived named types. Constructs the generator does
// not understand degrade to any rather than failing.
func Generate(schemaDoc []byte, opts Options) ([]byte, error) {
	var root schemaNode
	if err := json.Unmarshal(schemaDoc, &root); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if opts.Package == "" {
		opts.Package = "models"
	}
	if opts.RootName == "" {
		if root.Title != "" {
			opts.RootName = exportedName(root.Title)
		} else {
			opts.RootName = "Root"
		}
	}

	g := &generator{
		opts:    opts,
		defs:    map[string]*schemaNode{},
		emitted: map[string]bool{},
		out:     map[string]string{},
	}
	for name, def := range root.Definitions {
		g.defs[exportedName(name)] = def
	}
	for name, def := range root.Defs {
		g.defs[exportedName(name)] = def
	}

	names := make([]string, 0, len(g.defs))
	for name := range g.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		g.emitNamed(name, g.defs[name])
	}
	if len(root.Properties) > 0 {
		g.emitNamed(g.opts.RootName, &root)
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by spector code-generate. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", opts.Package)
	if g.needsTime {
		buf.WriteString("import \"time\"\n\n")
	}
	for _, name := range g.order {
		buf.WriteString(g.out[name])
		buf.WriteString("\n")
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

func (g *generator) emitNamed(name string, node *schemaNode) {
	if g.emitted[name] {
		return
	}
	g.emitted[name] = true

	var b strings.Builder
	if node.Description != "" {
		writeDocComment(&b, name, node.Description)
	}
	if node.typeName() == "object" || len(node.Properties) > 0 {
		fmt.Fprintf(&b, "type %s struct {\n", name)
		required := map[string]bool{}
		for _, r := range node.Required {
			required[r] = true
		}
		props := make([]string, 0, len(node.Properties))
		for p := range node.Properties {
			props = append(props, p)
		}
		sort.Strings(props)
		for _, prop := range props {
			child := node.Properties[prop]
			fieldType := g.goType(child, name+exportedName(prop), required[prop])
			tag := prop
			if !required[prop] {
				tag += ",omitempty"
			}
			fmt.Fprintf(&b, "\t%s %s `json:%q`\n", exportedName(prop), fieldType, tag)
		}
		b.WriteString("}\n")
	} else {
		fmt.Fprintf(&b, "type %s %s\n", name, g.goType(node, name, true))
	}

	g.order = append(g.order, name)
	g.out[name] = b.String()
}

// goType maps a schema node to a Go type expression. derivedName is the
// name used if an anonymous nested object needs its own declaration.
func (g *generator) goType(node *schemaNode, derivedName string, required bool) string {
	if node == nil {
		return "any"
	}
	if node.Ref != "" {
		parts := strings.Split(node.Ref, "/")
		name := exportedName(parts[len(parts)-1])
		if def, ok := g.defs[name]; ok {
			g.emitNamed(name, def)
		}
		if !required && isStructRef(g.defs[name]) {
			return "*" + name
		}
		return name
	}
	switch node.typeName() {
	case "string":
		switch {
		case node.Format == "date-time":
			g.needsTime = true
			if !required {
				return "*time.Time"
			}
			return "time.Time"
		case node.ContentEncoding == "base64":
			return "[]byte"
		default:
			return "string"
		}
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		if !required {
			return "*bool"
		}
		return "bool"
	case "array":
		return "[]" + g.goType(node.Items, derivedName+"Item", true)
	case "object":
		if len(node.Properties) > 0 {
			g.emitNamed(derivedName, node)
			if !required {
				return "*" + derivedName
			}
			return derivedName
		}
		if len(node.AdditionalProperties) > 0 && node.AdditionalProperties[0] == '{' {
			var ap schemaNode
			if err := json.Unmarshal(node.AdditionalProperties, &ap); err == nil {
				return "map[string]" + g.goType(&ap, derivedName+"Value", true)
			}
		}
		return "map[string]any"
	case "null":
		return "any"
	}
	if len(node.Properties) > 0 {
		g.emitNamed(derivedName, node)
		return derivedName
	}
	return "any"
}

func isStructRef(node *schemaNode) bool {
	return node != nil && len(node.Properties) > 0
}

func writeDocComment(b *strings.Builder, name, description string) {
	text := strings.ReplaceAll(description, "\n", " ")
	const limit = 96
	if len(text) > limit {
		cut := limit - 3
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	fmt.Fprintf(b, "// %s: %s\n", name, text)
}

// exportedName converts a schema property or definition name into an
// exported Go identifier, keeping common initialisms upper-case.
func exportedName(name string) string {
	parts := splitWords(name)
	var b strings.Builder
	for _, part := range parts {
		if up := strings.ToUpper(part); commonInitialisms[up] {
			b.WriteString(up)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

var commonInitialisms = map[string]bool{
	"ID": true, "URI": true, "URL": true, "JSON": true, "SHA256": true,
}

func splitWords(name string) []string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	prevLower := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
			prevLower = false
		case r >= 'A' && r <= 'Z':
			if prevLower {
				flush()
			}
			current.WriteRune(r)
			prevLower = false
		default:
			current.WriteRune(r)
			prevLower = r >= 'a' && r <= 'z'
		}
	}
	flush()
	return words
}
