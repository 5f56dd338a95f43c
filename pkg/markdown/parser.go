// Package markdown parses the restricted coda Markdown grammar (spec §4.1)
// into a *schema.Coda. Parsing is a two-pass process: a line-oriented pass
// builds the coda/data-type/field structure and records every TypeRef by
// name, then a resolution pass (§4.1 "Resolution pass after parsing")
// verifies every Nested{name} against the sibling data types, allowing
// forward references.
package markdown

import (
	"strings"

	"go.uber.org/multierr"

	"github.com/with-caer/codas/pkg/schema"
)

// docTarget is a pointer to wherever accumulated free-text documentation
// should be flushed: the coda itself, the data type currently being built,
// or the field most recently appended to it.
type docTarget struct {
	lines []string
}

func (d *docTarget) add(text string) {
	d.lines = append(d.lines, text)
}

// text joins the accumulated lines and trims leading/trailing blank lines,
// per spec §6 ("preserved verbatim, trimmed of leading/trailing blank
// lines").
func (d *docTarget) text() string {
	lines := d.lines

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

// Parse parses a single coda document. A malformed document always returns
// an error (spec §4.1: "a single-file invocation must fail").
func Parse(input string) (*schema.Coda, error) {
	lines := lex(input)

	start := firstSignificant(lines)
	if start < 0 || lines[start].kind != lineCodaHeader {
		span := NewSpan(1)
		if start >= 0 {
			span = NewSpan(lines[start].number)
		}

		return nil, NewSyntaxError(MissingCodaHeader, span,
			"expected '# `Name` Coda' as the first significant line")
	}

	coda := &schema.Coda{Name: lines[start].name}
	codaDoc := &docTarget{}
	codaDoc.add(lines[start].rest)

	var (
		current    *schema.DataType
		currentDoc *docTarget
		fieldDoc   *docTarget
		// fieldSpans remembers the source line each field was declared on,
		// keyed by (data-type ordinal, field ordinal), so the resolution
		// pass below can still report a precise line number even though the
		// DataType/Field values themselves carry no source position.
		fieldSpans = map[[2]int]Span{}
	)

	flushField := func() {
		if current != nil && fieldDoc != nil && len(current.Fields) > 0 {
			current.Fields[len(current.Fields)-1].Doc = fieldDoc.text()
		}

		fieldDoc = nil
	}

	flushDataType := func() {
		flushField()

		if current != nil {
			current.Doc = currentDoc.text()
			coda.Types = append(coda.Types, *current)
		}

		current, currentDoc = nil, nil
	}

	for _, ln := range lines[start+1:] {
		switch ln.kind {
		case lineBlank:
			switch {
			case fieldDoc != nil:
				fieldDoc.add("")
			case current != nil:
				currentDoc.add("")
			default:
				codaDoc.add("")
			}
		case lineText:
			switch {
			case fieldDoc != nil:
				fieldDoc.add(ln.rest)
			case current != nil:
				currentDoc.add(ln.rest)
			default:
				codaDoc.add(ln.rest)
			}
		case lineDataHeader:
			flushDataType()

			if _, exists := coda.TypeByName(ln.name); exists {
				return nil, NewSyntaxError(DuplicateName, NewSpan(ln.number),
					"duplicate data type name '"+ln.name+"'")
			}

			current = &schema.DataType{Name: ln.name, Ordinal: len(coda.Types)}
			currentDoc = &docTarget{}
			currentDoc.add(ln.rest)
		case lineField:
			if current == nil {
				return nil, NewSyntaxError(MalformedFieldLine, NewSpan(ln.number),
					"field declared outside of any data type")
			}

			flushField()

			if _, exists := current.FieldByName(ln.name); exists {
				return nil, NewSyntaxError(DuplicateName, NewSpan(ln.number),
					"duplicate field name '"+ln.name+"'")
			}

			span := NewSpan(ln.number)

			typeRef, remainder, err := parseTypeExpr(span, strings.Fields(ln.rest))
			if err != nil {
				return nil, err
			}

			fieldOrdinal := len(current.Fields)
			fieldSpans[[2]int{current.Ordinal, fieldOrdinal}] = span

			current.Fields = append(current.Fields, schema.Field{
				Name:    ln.name,
				Type:    typeRef,
				Ordinal: fieldOrdinal,
			})

			fieldDoc = &docTarget{}
			fieldDoc.add(strings.Join(remainder, " "))
		}
	}

	flushDataType()

	coda.Doc = codaDoc.text()

	if err := resolve(coda, fieldSpans); err != nil {
		return nil, err
	}

	return coda, nil
}

// firstSignificant returns the index of the first non-blank line, or -1.
func firstSignificant(lines []line) int {
	for i, ln := range lines {
		if ln.kind != lineBlank {
			return i
		}
	}

	return -1
}

// resolve runs the post-parse resolution pass (spec §4.1): every
// Nested{name} TypeRef is verified against the sibling data types of the
// same coda, with forward references allowed since the whole coda is
// already built by this point. All unresolved references across the coda
// are collected and reported together via multierr, rather than failing on
// the first one found.
func resolve(coda *schema.Coda, fieldSpans map[[2]int]Span) error {
	var errs error

	for t := range coda.Types {
		for f := range coda.Types[t].Fields {
			span := fieldSpans[[2]int{coda.Types[t].Ordinal, f}]
			field := &coda.Types[t].Fields[f]
			errs = multierr.Append(errs, resolveTypeRef(coda, &field.Type, field.Name, span))
		}
	}

	return errs
}

func resolveTypeRef(coda *schema.Coda, ref *schema.TypeRef, fieldName string, span Span) error {
	switch ref.Kind {
	case schema.KindNested:
		dt, ok := coda.TypeByName(ref.Name)
		if !ok {
			return NewSyntaxError(UnresolvedTypeRef, span,
				"field '"+fieldName+"' references unknown data type '"+ref.Name+"'")
		}

		ref.Nested = dt

		return nil
	case schema.KindList:
		return resolveTypeRef(coda, ref.Element, fieldName, span)
	case schema.KindOptional:
		return resolveTypeRef(coda, ref.Inner, fieldName, span)
	case schema.KindMap:
		return multierr.Append(
			resolveTypeRef(coda, ref.Key, fieldName, span),
			resolveTypeRef(coda, ref.Value, fieldName, span),
		)
	default:
		return nil
	}
}
