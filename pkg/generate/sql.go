package generate

import (
	"strings"

	"github.com/with-caer/codas/pkg/schema"
)

// SQL emits one CREATE TABLE statement per data type. Structured kinds
// (nested records, lists, maps, the dynamic escape hatch) have no direct
// relational shape, so they are stored as JSON text — the same fallback
// the teacher's constant-folding path takes for types it cannot represent
// natively (translateJavaType's BigInteger fallback in
// pkg/cmd/generate.go).
type SQL struct{}

func (SQL) Extension() string { return "sql" }

func (SQL) Generate(coda *schema.Coda) (string, error) {
	w := newIndentWriter("  ")

	w.WriteLine("-- Code generated from a coda definition. DO NOT EDIT.")
	w.Blank()

	for _, dt := range coda.Types {
		generateSQLTable(w, dt)
	}

	return w.String(), nil
}

func generateSQLTable(w indentWriter, dt schema.DataType) {
	table := toSnakeCase(dt.Name)

	w.WriteLine("CREATE TABLE ", table, " (")

	body := w.Indent()

	for i, f := range dt.Fields {
		col := toSnakeCase(f.Name)
		sep := ","

		if i == len(dt.Fields)-1 {
			sep = ""
		}

		body.WriteLine(col, " ", sqlType(f.Type), sep)
	}

	w.WriteLine(");")
	w.Blank()
}

func sqlType(t schema.TypeRef) string {
	switch t.Kind {
	case schema.KindUnsigned, schema.KindSigned:
		if t.Width <= 32 {
			return "INTEGER NOT NULL"
		}

		return "BIGINT NOT NULL"
	case schema.KindFloat:
		if t.Width == 32 {
			return "REAL NOT NULL"
		}

		return "DOUBLE PRECISION NOT NULL"
	case schema.KindBool:
		return "BOOLEAN NOT NULL"
	case schema.KindText:
		return "TEXT NOT NULL"
	case schema.KindOptional:
		return strings.TrimSuffix(sqlType(*t.Inner), " NOT NULL")
	case schema.KindNested, schema.KindList, schema.KindMap, schema.KindDynamic:
		return "JSONB NOT NULL"
	default:
		return "TEXT NOT NULL"
	}
}
