// Package diag defines the diagnostic shape every pipeline stage reports
// in, per spec.md §6: `{ code?: "E010"|"E011"|…, span: Span, message:
// string }`.
package diag

import (
	"fmt"

	"github.com/aethlang/aethc/internal/position"
)

// Diagnostic is a single structured error or warning.
type Diagnostic struct {
	Code    string // stable error code, e.g. "E010"; "" if none assigned
	Span    position.Span
	Message string
}

func (d Diagnostic) Error() string {
	if d.Code != "" {
		return fmt.Sprintf("%s [%s]: %s", d.Span, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

// New builds a code-less diagnostic.
func New(span position.Span, message string) Diagnostic {
	return Diagnostic{Span: span, Message: message}
}

// WithCode builds a diagnostic carrying a stable error code.
func WithCode(code string, span position.Span, message string) Diagnostic {
	return Diagnostic{Code: code, Span: span, Message: message}
}
