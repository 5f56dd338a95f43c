package markdown

import "strings"

// lineKind classifies a single line of a coda document, mirroring the
// structural markers spec §4.1 assigns to the lexer: heading markers,
// code-span ticks, list-item bullets, and free text.
type lineKind uint8

const (
	lineBlank lineKind = iota
	lineCodaHeader
	lineDataHeader
	lineField
	lineText
)

// line is one physical line of the source document together with its
// 1-indexed line number. The lexer hands these to the parser; the parser
// decides how each line's rest-of-line content composes into the schema.
type line struct {
	number int
	kind   lineKind
	// name is the backtick-quoted identifier extracted from a header or
	// field line (empty for lineText/lineBlank).
	name string
	// rest is whatever follows the recognised prefix: nothing for headers
	// beyond the literal "Coda"/"Data" keyword (already consumed), the raw
	// type-expression text for a field, or the full line for free text.
	rest string
}

// lex splits the input into classified lines. It never fails: classification
// is purely lexical (what shape does this line have), leaving semantic
// validation (is the first line actually a coda header, does a field's type
// expression parse) to the parser, which can then attach a precise error
// kind to a precise line number.
func lex(input string) []line {
	raw := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	lines := make([]line, len(raw))

	for i, text := range raw {
		lines[i] = classify(i+1, text)
	}

	return lines
}

// classify recognises the shape of a single source line.
func classify(number int, text string) line {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return line{number: number, kind: lineBlank}
	}

	if name, rest, ok := headerLine(trimmed, "# ", "Coda"); ok {
		return line{number: number, kind: lineCodaHeader, name: name, rest: rest}
	}

	if name, rest, ok := headerLine(trimmed, "## ", "Data"); ok {
		return line{number: number, kind: lineDataHeader, name: name, rest: rest}
	}

	if name, rest, ok := fieldLine(trimmed); ok {
		return line{number: number, kind: lineField, name: name, rest: rest}
	}

	return line{number: number, kind: lineText, rest: text}
}

// headerLine recognises "<marker>`Name` <keyword>" optionally followed by
// trailing inline documentation on the same line, returning the quoted name
// and whatever text trails the keyword.
func headerLine(trimmed, marker, keyword string) (name string, rest string, ok bool) {
	if !strings.HasPrefix(trimmed, marker) {
		return "", "", false
	}

	body := strings.TrimSpace(trimmed[len(marker):])

	name, remainder, ok := takeTick(body)
	if !ok {
		return "", "", false
	}

	remainder = strings.TrimSpace(remainder)

	if remainder == keyword {
		return name, "", true
	}

	if strings.HasPrefix(remainder, keyword+" ") {
		return name, strings.TrimSpace(remainder[len(keyword):]), true
	}

	return "", "", false
}

// fieldLine recognises "+ `name` TypeExpr" possibly followed by inline doc.
func fieldLine(trimmed string) (name string, rest string, ok bool) {
	if !strings.HasPrefix(trimmed, "+") {
		return "", "", false
	}

	body := strings.TrimSpace(trimmed[1:])

	name, remainder, ok := takeTick(body)
	if !ok {
		return "", "", false
	}

	return name, strings.TrimSpace(remainder), true
}

// takeTick consumes a leading `code span` (the identifier grammar for field
// and header names) and returns its contents plus whatever follows.
func takeTick(s string) (name string, rest string, ok bool) {
	if !strings.HasPrefix(s, "`") {
		return "", "", false
	}

	end := strings.IndexByte(s[1:], '`')
	if end < 0 {
		return "", "", false
	}

	end++ // index was relative to s[1:]

	return s[1:end], s[end+1:], true
}
