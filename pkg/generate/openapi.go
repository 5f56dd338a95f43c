package generate

import (
	"bytes"
	"fmt"

	"github.com/segmentio/encoding/json"
	"github.com/with-caer/codas/pkg/schema"
)

// OpenAPI emits a single OpenAPI 3.0 document with one component schema per
// data type. Field order matters for spec §8 property 4 (deterministic
// output), so component properties are encoded through orderedProps rather
// than a plain Go map — the same ordered-iteration discipline the teacher
// uses for its embedded metadata (metadata.Keys() in
// generateJavaModuleMetadata, pkg/cmd/generate.go), here implemented as a
// json.Marshaler instead of a sorted key loop.
type OpenAPI struct{}

func (OpenAPI) Extension() string { return "json" }

// document mirrors the subset of the OpenAPI 3.0 object model this package
// populates; everything else a full document needs (paths, servers) is left
// for the caller to merge in, since a coda describes data shapes only.
type document struct {
	OpenAPI    string `json:"openapi"`
	Info       info   `json:"info"`
	Components comp   `json:"components"`
}

type info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type comp struct {
	Schemas orderedSchemas `json:"schemas"`
}

// orderedSchemas preserves data-type declaration order, for the same
// determinism reason as orderedProps below.
type orderedSchemas []schemaEntry

type schemaEntry struct {
	name   string
	schema compSchema
}

func (s orderedSchemas) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, entry := range s {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(entry.name)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(entry.schema)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

type compSchema struct {
	Type       string       `json:"type"`
	Properties orderedProps `json:"properties"`
	Required   []string     `json:"required,omitempty"`
}

// orderedProps preserves field declaration order in the rendered JSON,
// since a Go map would not.
type orderedProps []propEntry

type propEntry struct {
	name string
	prop map[string]any
}

func (p orderedProps) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, entry := range p {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(entry.name)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(entry.prop)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (OpenAPI) Generate(coda *schema.Coda) (string, error) {
	doc := document{
		OpenAPI: "3.0.3",
		Info: info{
			Title:   coda.Name,
			Version: "generated",
		},
		Components: comp{Schemas: make(orderedSchemas, 0, len(coda.Types))},
	}

	for _, dt := range coda.Types {
		doc.Components.Schemas = append(doc.Components.Schemas, schemaEntry{
			name:   toPascalCase(dt.Name),
			schema: compSchemaOf(dt),
		})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("openapi: marshal document: %w", err)
	}

	return string(out) + "\n", nil
}

func compSchemaOf(dt schema.DataType) compSchema {
	props := make(orderedProps, 0, len(dt.Fields))
	required := make([]string, 0, len(dt.Fields))

	for _, f := range dt.Fields {
		props = append(props, propEntry{name: f.Name, prop: openAPIProp(f.Type)})

		if f.Type.Kind != schema.KindOptional {
			required = append(required, f.Name)
		}
	}

	return compSchema{Type: "object", Properties: props, Required: required}
}

func openAPIProp(t schema.TypeRef) map[string]any {
	switch t.Kind {
	case schema.KindUnsigned, schema.KindSigned:
		return map[string]any{"type": "integer"}
	case schema.KindFloat:
		return map[string]any{"type": "number"}
	case schema.KindBool:
		return map[string]any{"type": "boolean"}
	case schema.KindText:
		return map[string]any{"type": "string"}
	case schema.KindDynamic:
		return map[string]any{}
	case schema.KindNested:
		return map[string]any{"$ref": "#/components/schemas/" + toPascalCase(t.Name)}
	case schema.KindList:
		return map[string]any{"type": "array", "items": openAPIProp(*t.Element)}
	case schema.KindMap:
		return map[string]any{"type": "object", "additionalProperties": openAPIProp(*t.Value)}
	case schema.KindOptional:
		return openAPIProp(*t.Inner)
	default:
		return map[string]any{}
	}
}
