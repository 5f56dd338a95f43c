package generate

import (
	"fmt"
	"strings"

	"github.com/with-caer/codas/pkg/schema"
)

// Rust emits one struct per data type plus a tagged enum over the coda's
// data types mirroring the envelope's ordinal discriminator, grounded on
// the struct-per-record shape of the teacher's generateJavaModule
// (pkg/cmd/generate.go) but rendered in Rust's own idiom rather than
// translated Java.
type Rust struct{}

func (Rust) Extension() string { return "rs" }

func (Rust) Generate(coda *schema.Coda) (string, error) {
	w := newIndentWriter("    ")

	w.WriteLine("// Code generated from a coda definition. DO NOT EDIT.")
	w.WriteLine("#![allow(dead_code)]")
	w.Blank()

	for _, dt := range coda.Types {
		generateRustStruct(w, dt)
	}

	generateRustEnum(w, coda)

	return w.String(), nil
}

func generateRustStruct(w indentWriter, dt schema.DataType) {
	if dt.Doc != "" {
		for _, line := range strings.Split(strings.TrimRight(dt.Doc, "\n"), "\n") {
			w.WriteLine("/// ", line)
		}
	}

	w.WriteLine("#[derive(Debug, Clone, PartialEq)]")
	w.WriteLine("pub struct ", toPascalCase(dt.Name), " {")

	body := w.Indent()
	for _, f := range dt.Fields {
		name := escapeIfReserved(toSnakeCase(f.Name), rustReserved)
		body.WriteLine("pub ", name, ": ", rustType(f.Type), ",")
	}

	w.WriteLine("}")
	w.Blank()
}

func generateRustEnum(w indentWriter, coda *schema.Coda) {
	w.WriteLine("/// ", toPascalCase(coda.Name), " is the envelope variant over every data type")
	w.WriteLine("/// declared in this coda, ordered by wire ordinal.")
	w.WriteLine("#[derive(Debug, Clone, PartialEq)]")
	w.WriteLine("pub enum ", toPascalCase(coda.Name), " {")

	body := w.Indent()
	for _, dt := range coda.Types {
		body.WriteLine(toPascalCase(dt.Name), "(", toPascalCase(dt.Name), "),")
	}

	w.WriteLine("}")
}

func rustType(t schema.TypeRef) string {
	switch t.Kind {
	case schema.KindUnsigned:
		return fmt.Sprintf("u%d", t.Width)
	case schema.KindSigned:
		return fmt.Sprintf("i%d", t.Width)
	case schema.KindFloat:
		return fmt.Sprintf("f%d", t.Width)
	case schema.KindBool:
		return "bool"
	case schema.KindText:
		return "String"
	case schema.KindDynamic:
		return "codas_wire::Dynamic"
	case schema.KindNested:
		return toPascalCase(t.Name)
	case schema.KindList:
		return fmt.Sprintf("Vec<%s>", rustType(*t.Element))
	case schema.KindMap:
		return fmt.Sprintf("std::collections::BTreeMap<%s, %s>", rustType(*t.Key), rustType(*t.Value))
	case schema.KindOptional:
		return fmt.Sprintf("Option<%s>", rustType(*t.Inner))
	default:
		return "()"
	}
}
