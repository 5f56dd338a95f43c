package generate

import (
	"strings"
	"unicode"
)

// toPascalCase and toSnakeCase are adapted from the teacher's
// toPascalCase/toCamelCase/splitWords/splitCaseChange word-splitting
// functions (pkg/cmd/generate.go), generalized here to also produce
// snake_case for targets (Python, SQL) that want it instead of camelCase.

func splitWords(name string) []string {
	var words []string

	for _, w1 := range strings.Split(name, "_") {
		for _, w2 := range strings.Split(w1, "-") {
			words = append(words, splitCaseChange(w2)...)
		}
	}

	return words
}

func splitCaseChange(word string) []string {
	var (
		runes = []rune(word)
		words []string
		last  = true
		start int
	)

	for i, r := range runes {
		upper := unicode.IsUpper(r)
		if !last && upper {
			words = append(words, string(runes[start:i]))
			start = i
		}

		last = upper
	}

	words = append(words, string(runes[start:]))

	return words
}

func camelify(word string, capitalizeFirst bool) string {
	letters := []rune(word)

	for i := range letters {
		if capitalizeFirst && i == 0 {
			letters[i] = unicode.ToUpper(letters[i])
		} else {
			letters[i] = unicode.ToLower(letters[i])
		}
	}

	return string(letters)
}

// toPascalCase renders name as UpperCamelCase, the convention this package
// uses for every target's record/struct/class names.
func toPascalCase(name string) string {
	var b strings.Builder

	for _, w := range splitWords(name) {
		if w == "" {
			continue
		}

		b.WriteString(camelify(w, true))
	}

	return b.String()
}

// toCamelCase renders name as lowerCamelCase, used for TypeScript fields.
func toCamelCase(name string) string {
	var b strings.Builder

	for i, w := range splitWords(name) {
		if w == "" {
			continue
		}

		b.WriteString(camelify(w, i > 0))
	}

	return b.String()
}

// toSnakeCase renders name as lower_snake_case, used for Python, Rust, and
// SQL identifiers.
func toSnakeCase(name string) string {
	words := splitWords(name)
	lower := make([]string, 0, len(words))

	for _, w := range words {
		if w == "" {
			continue
		}

		lower = append(lower, strings.ToLower(w))
	}

	return strings.Join(lower, "_")
}

// rustReserved, pythonReserved, and tsReserved list each target's reserved
// words that collide with common schema field names; a colliding identifier
// gets an underscore appended rather than silently shadowing a keyword.
var (
	rustReserved   = reservedSet("type", "match", "move", "fn", "struct", "enum", "impl", "ref", "box", "dyn", "async", "await")
	pythonReserved = reservedSet("class", "type", "import", "from", "def", "global", "lambda", "yield", "async", "await")
	tsReserved     = reservedSet("class", "type", "interface", "import", "export", "new", "function", "enum")
)

func reservedSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}

	return set
}

func escapeIfReserved(ident string, reserved map[string]bool) string {
	if reserved[ident] {
		return ident + "_"
	}

	return ident
}
