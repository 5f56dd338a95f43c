package generate

import (
	"fmt"
	"strings"

	"github.com/with-caer/codas/pkg/schema"
)

// Python emits one dataclass per data type and a Union type alias over the
// coda's data types, matching the struct-per-record/union-for-envelope
// shape used throughout this package's other targets.
type Python struct{}

func (Python) Extension() string { return "py" }

func (Python) Generate(coda *schema.Coda) (string, error) {
	w := newIndentWriter("    ")

	w.WriteLine("# Code generated from a coda definition. DO NOT EDIT.")
	w.WriteLine("from __future__ import annotations")
	w.Blank()
	w.WriteLine("import dataclasses")
	w.WriteLine("import typing")
	w.Blank()

	for _, dt := range coda.Types {
		generatePythonDataclass(w, dt)
	}

	generatePythonUnion(w, coda)

	return w.String(), nil
}

func generatePythonDataclass(w indentWriter, dt schema.DataType) {
	w.WriteLine("@dataclasses.dataclass")
	w.WriteLine("class ", toPascalCase(dt.Name), ":")

	body := w.Indent()

	if dt.Doc != "" {
		body.WriteLine(`"""`, strings.TrimRight(dt.Doc, "\n"), `"""`)
	}

	if len(dt.Fields) == 0 {
		body.WriteLine("pass")
	}

	for _, f := range dt.Fields {
		name := escapeIfReserved(toSnakeCase(f.Name), pythonReserved)
		body.WriteLine(name, ": ", pythonType(f.Type))
	}

	w.Blank()
}

func generatePythonUnion(w indentWriter, coda *schema.Coda) {
	names := make([]string, len(coda.Types))
	for i, dt := range coda.Types {
		names[i] = toPascalCase(dt.Name)
	}

	w.WriteLine(toPascalCase(coda.Name), " = typing.Union[", strings.Join(names, ", "), "]")
}

func pythonType(t schema.TypeRef) string {
	switch t.Kind {
	case schema.KindUnsigned, schema.KindSigned:
		return "int"
	case schema.KindFloat:
		return "float"
	case schema.KindBool:
		return "bool"
	case schema.KindText:
		return "str"
	case schema.KindDynamic:
		return "typing.Any"
	case schema.KindNested:
		return fmt.Sprintf("'%s'", toPascalCase(t.Name))
	case schema.KindList:
		return fmt.Sprintf("typing.List[%s]", pythonType(*t.Element))
	case schema.KindMap:
		return fmt.Sprintf("typing.Dict[%s, %s]", pythonType(*t.Key), pythonType(*t.Value))
	case schema.KindOptional:
		return fmt.Sprintf("typing.Optional[%s]", pythonType(*t.Inner))
	default:
		return "typing.Any"
	}
}
