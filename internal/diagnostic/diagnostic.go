package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies a fatal derivation failure.
type Kind int

const (
	// UnsupportedDeclaration: the type is neither a sum interface nor a struct.
	UnsupportedDeclaration Kind = iota
	// UnsupportedShape: a product struct does not have exactly one field.
	UnsupportedShape
	// MalformedAnnotation: a //fromone: directive has an unrecognized token.
	MalformedAnnotation
)

// Diagnostic replaces generated output for a declaration that cannot be
// derived. It indicates where the problem is in the user's source code.
type Diagnostic struct {
	Kind Kind
	Pos  token.Position
	// Subject names the offending declaration or annotation.
	Subject string
	Message string
}

// New builds a diagnostic with a formatted message.
func New(kind Kind, pos token.Position, subject string, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Pos:     pos,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface. If the position is valid, it is
// prepended to the message.
func (d *Diagnostic) Error() string {
	if !d.Pos.IsValid() {
		return d.Message
	}
	return FormatPosition(d.Pos) + ": " + d.Message
}

// As extracts a Diagnostic from err.
func As(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

var wd, _ = os.Getwd()

// FormatPosition renders pos as file:line:col, relative to the working
// directory when possible.
func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if wd != "" && filepath.IsAbs(filename) {
		if rel, err := filepath.Rel(wd, filename); err == nil {
			filename = rel
		}
	}
	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
