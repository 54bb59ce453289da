package diagnostic

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes diagnostics for humans, one per line.
type Printer struct {
	w       io.Writer
	pos     *color.Color
	kind    *color.Color
	subject *color.Color
}

// NewPrinter creates a printer. Colour follows the terminal unless noColor
// is set.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:       w,
		pos:     color.New(color.Bold),
		kind:    color.New(color.FgRed, color.Bold),
		subject: color.New(color.FgCyan),
	}
	if noColor {
		p.pos.DisableColor()
		p.kind.DisableColor()
		p.subject.DisableColor()
	}
	return p
}

// Print writes d as "file:line:col: error[Kind]: subject: message".
func (p *Printer) Print(d *Diagnostic) error {
	_, err := fmt.Fprintf(
		p.w,
		"%s: %s: %s: %s\n",
		p.pos.Sprint(FormatPosition(d.Pos)),
		p.kind.Sprintf("error[%s]", d.Kind),
		p.subject.Sprint(d.Subject),
		d.Message,
	)
	return err
}
