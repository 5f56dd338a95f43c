package markdown

import "fmt"

// Kind classifies a schema-parse failure per spec §7.
type Kind uint8

// The parse-error taxonomy named in spec §7.
const (
	MissingCodaHeader Kind = iota
	MissingDataHeader
	UnknownTypeKeyword
	DuplicateName
	UnresolvedTypeRef
	MalformedFieldLine
)

// String names a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case MissingCodaHeader:
		return "MissingCodaHeader"
	case MissingDataHeader:
		return "MissingDataHeader"
	case UnknownTypeKeyword:
		return "UnknownTypeKeyword"
	case DuplicateName:
		return "DuplicateName"
	case UnresolvedTypeRef:
		return "UnresolvedTypeRef"
	case MalformedFieldLine:
		return "MalformedFieldLine"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// SyntaxError is a structured schema-parse error which retains the kind, the
// span in the source document where it arose, and a human-readable message.
// Modelled on the teacher's sexp.SyntaxError: every parse failure is
// reportable with its originating line number, never just a bare string.
type SyntaxError struct {
	Kind Kind
	Span Span
	Msg  string
}

// NewSyntaxError constructs a new schema-parse error.
func NewSyntaxError(kind Kind, span Span, msg string) *SyntaxError {
	return &SyntaxError{kind, span, msg}
}

// Error implements the error interface, rendering "line:col: kind: message".
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Span.Start, e.Kind, e.Msg)
}
