// Package generate implements the deterministic target-language emitters
// from spec §4.4: one generator per supported target, each walking the
// schema model once and never calling back into the parser or executing
// target code.
package generate

import "github.com/with-caer/codas/pkg/schema"

// Generator emits source for one target language from a parsed Coda.
type Generator interface {
	// Generate renders coda's schema as target source. Calling Generate
	// twice on an unchanged Coda must produce byte-identical output (spec
	// §4.4, §8 property 4).
	Generate(coda *schema.Coda) (string, error)
	// Extension is the file suffix this generator's output should be
	// written with (spec §6, "<target>/<lang>/<basename>.<ext>").
	Extension() string
}

// Targets lists every generator this package provides, keyed by the name
// used on the CLI (spec §6).
func Targets() map[string]Generator {
	return map[string]Generator{
		"rust":       Rust{},
		"python":     Python{},
		"typescript": TypeScript{},
		"openapi":    OpenAPI{},
		"sql":        SQL{},
	}
}
