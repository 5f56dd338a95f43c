package generate

import (
	"fmt"
	"strings"

	"github.com/with-caer/codas/pkg/schema"
)

// TypeScript emits one interface per data type and a union type alias over
// the coda's data types. The union carries no discriminant field.
type TypeScript struct{}

func (TypeScript) Extension() string { return "ts" }

func (TypeScript) Generate(coda *schema.Coda) (string, error) {
	w := newIndentWriter("  ")

	w.WriteLine("// Code generated from a coda definition. DO NOT EDIT.")
	w.Blank()

	for _, dt := range coda.Types {
		generateTSInterface(w, dt)
	}

	generateTSUnion(w, coda)

	return w.String(), nil
}

func generateTSInterface(w indentWriter, dt schema.DataType) {
	if dt.Doc != "" {
		w.WriteLine("/** ", strings.TrimSpace(dt.Doc), " */")
	}

	w.WriteLine("export interface ", toPascalCase(dt.Name), " {")

	body := w.Indent()
	for _, f := range dt.Fields {
		name := escapeIfReserved(toCamelCase(f.Name), tsReserved)
		optional := ""

		if f.Type.Kind == schema.KindOptional {
			optional = "?"
		}

		body.WriteLine(name, optional, ": ", tsType(f.Type), ";")
	}

	w.WriteLine("}")
	w.Blank()
}

func generateTSUnion(w indentWriter, coda *schema.Coda) {
	names := make([]string, len(coda.Types))
	for i, dt := range coda.Types {
		names[i] = toPascalCase(dt.Name)
	}

	w.WriteLine("export type ", toPascalCase(coda.Name), " = ", strings.Join(names, " | "), ";")
}

func tsType(t schema.TypeRef) string {
	switch t.Kind {
	case schema.KindUnsigned, schema.KindSigned, schema.KindFloat:
		return "number"
	case schema.KindBool:
		return "boolean"
	case schema.KindText:
		return "string"
	case schema.KindDynamic:
		return "unknown"
	case schema.KindNested:
		return toPascalCase(t.Name)
	case schema.KindList:
		return fmt.Sprintf("%s[]", tsType(*t.Element))
	case schema.KindMap:
		return fmt.Sprintf("Map<%s, %s>", tsType(*t.Key), tsType(*t.Value))
	case schema.KindOptional:
		return tsType(*t.Inner)
	default:
		return "unknown"
	}
}
