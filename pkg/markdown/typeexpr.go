package markdown

import (
	"strconv"
	"strings"

	"github.com/with-caer/codas/pkg/schema"
)

// parseTypeExpr parses the restricted TypeExpr grammar from spec §4.1:
//
//	TypeExpr := 'u8'|'u16'|…|'f64'|'bool'|'text'|Ident
//	          | 'list' 'of' TypeExpr
//	          | 'map' 'of' TypeExpr 'to' TypeExpr
//	          | 'optional' TypeExpr
//	          | 'unspecified'
//
// It consumes tokens greedily left-to-right and returns whatever tokens
// remain, which the caller treats as inline field documentation.
func parseTypeExpr(span Span, tokens []string) (schema.TypeRef, []string, error) {
	if len(tokens) == 0 {
		return schema.TypeRef{}, nil, NewSyntaxError(MalformedFieldLine, span, "expected a type expression")
	}

	head, tail := tokens[0], tokens[1:]

	switch head {
	case "bool":
		return schema.Bool(), tail, nil
	case "text":
		return schema.Text(), tail, nil
	case "unspecified":
		return schema.Dynamic(), tail, nil
	case "list":
		return parseUnary(span, tail, "of", schema.List)
	case "optional":
		return parseOptional(span, tail)
	case "map":
		return parseMap(span, tail)
	}

	if width, ok := fixedWidth(head, "u"); ok {
		return schema.Unsigned(width), tail, nil
	}

	if width, ok := fixedWidth(head, "i"); ok {
		return schema.Signed(width), tail, nil
	}

	if width, ok := fixedWidth(head, "f"); ok && (width == 32 || width == 64) {
		return schema.Float(width), tail, nil
	}

	if isIdentifier(head) {
		return schema.Nested(head), tail, nil
	}

	return schema.TypeRef{}, nil, NewSyntaxError(UnknownTypeKeyword, span, "unknown type keyword '"+head+"'")
}

func parseOptional(span Span, tokens []string) (schema.TypeRef, []string, error) {
	inner, rest, err := parseTypeExpr(span, tokens)
	if err != nil {
		return schema.TypeRef{}, nil, err
	}

	return schema.Optional(inner), rest, nil
}

func parseUnary(
	span Span, tokens []string, joiner string, wrap func(schema.TypeRef) schema.TypeRef,
) (schema.TypeRef, []string, error) {
	if len(tokens) == 0 || tokens[0] != joiner {
		return schema.TypeRef{}, nil, NewSyntaxError(MalformedFieldLine, span, "expected '"+joiner+"'")
	}

	element, rest, err := parseTypeExpr(span, tokens[1:])
	if err != nil {
		return schema.TypeRef{}, nil, err
	}

	return wrap(element), rest, nil
}

func parseMap(span Span, tokens []string) (schema.TypeRef, []string, error) {
	if len(tokens) == 0 || tokens[0] != "of" {
		return schema.TypeRef{}, nil, NewSyntaxError(MalformedFieldLine, span, "expected 'of' after 'map'")
	}

	key, rest, err := parseTypeExpr(span, tokens[1:])
	if err != nil {
		return schema.TypeRef{}, nil, err
	}

	if len(rest) == 0 || rest[0] != "to" {
		return schema.TypeRef{}, nil, NewSyntaxError(MalformedFieldLine, span, "expected 'to' in map type")
	}

	value, rest, err := parseTypeExpr(span, rest[1:])
	if err != nil {
		return schema.TypeRef{}, nil, err
	}

	return schema.Map(key, value), rest, nil
}

// fixedWidth recognises a "<prefix><width>" keyword such as "u8" or "f64".
func fixedWidth(token, prefix string) (uint8, bool) {
	if !strings.HasPrefix(token, prefix) || len(token) <= len(prefix) {
		return 0, false
	}

	n, err := strconv.Atoi(token[len(prefix):])
	if err != nil {
		return 0, false
	}

	switch n {
	case 8, 16, 32, 64:
		return uint8(n), true
	default:
		return 0, false
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}
