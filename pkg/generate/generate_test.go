package generate

import (
	"strings"
	"testing"

	"github.com/with-caer/codas/pkg/schema"
)

func sampleCoda() *schema.Coda {
	greeting := schema.DataType{
		Name: "Greeting",
		Doc:  "A greeting sent to one recipient.",
		Fields: []schema.Field{
			{Name: "message", Type: schema.Text(), Ordinal: 0},
			{Name: "loudness", Type: schema.Optional(schema.Unsigned(8)), Ordinal: 1},
		},
	}

	event := schema.DataType{
		Name:    "Event",
		Ordinal: 1,
		Fields: []schema.Field{
			{Name: "greetings", Type: schema.List(schema.Nested("Greeting")), Ordinal: 0},
			{Name: "tags", Type: schema.Map(schema.Text(), schema.Text()), Ordinal: 1},
		},
	}

	return &schema.Coda{Name: "Example", Types: []schema.DataType{greeting, event}}
}

// TestGenerate_Deterministic checks spec §8 property 4: generating the
// same coda twice with the same target produces byte-identical output.
func TestGenerate_Deterministic(t *testing.T) {
	coda := sampleCoda()

	for name, gen := range Targets() {
		first, err := gen.Generate(coda)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		second, err := gen.Generate(coda)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		if first != second {
			t.Fatalf("%s: output not deterministic across runs", name)
		}
	}
}

func TestRust_StructFields(t *testing.T) {
	out, err := Rust{}.Generate(sampleCoda())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"pub struct Greeting {",
		"pub message: String,",
		"pub loudness: Option<u8>,",
		"pub enum Example {",
		"Greeting(Greeting),",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPython_Dataclass(t *testing.T) {
	out, err := Python{}.Generate(sampleCoda())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"@dataclasses.dataclass",
		"class Greeting:",
		"message: str",
		"loudness: typing.Optional[int]",
		"Example = typing.Union[Greeting, Event]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTypeScript_Interface(t *testing.T) {
	out, err := TypeScript{}.Generate(sampleCoda())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"export interface Greeting {",
		"message: string;",
		"loudness?: number;",
		"export type Example = Greeting | Event;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSQL_CreateTable(t *testing.T) {
	out, err := SQL{}.Generate(sampleCoda())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"CREATE TABLE greeting (",
		"message TEXT NOT NULL",
		"loudness INTEGER",
		"CREATE TABLE event (",
		"greetings JSONB NOT NULL",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestOpenAPI_ComponentSchemas(t *testing.T) {
	out, err := OpenAPI{}.Generate(sampleCoda())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`"openapi": "3.0.3"`,
		`"Greeting"`,
		`"message"`,
		`"$ref": "#/components/schemas/Greeting"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
