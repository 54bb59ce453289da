// Package synth turns resolved candidates into constructor definitions.
package synth

import (
	"github.com/seitarof/gen-fromone/internal/decl"
	"github.com/seitarof/gen-fromone/internal/matcher"
	"github.com/seitarof/gen-fromone/internal/ns"
)

// ParamName is the parameter of every generated constructor.
const ParamName = "v"

// Constructor describes one conversion constructor, ready for emission.
type Constructor struct {
	FuncName string
	Target   string
	Origin   string
	// Variant is empty for product constructors.
	Variant string
	// Field is empty when the value is placed positionally.
	Field      string
	Param      string
	Expression string
	Imports    []decl.Import
}

// Synthesizer builds constructor definitions.
type Synthesizer interface {
	Synthesize(d *decl.TypeDeclaration, cands []matcher.Candidate) []Constructor
}

type synthesizerImpl struct{}

// New returns default synthesizer.
func New() Synthesizer {
	return &synthesizerImpl{}
}

// Synthesize emits one constructor per candidate, in candidate order. Names
// are unique within the declaration.
func (s *synthesizerImpl) Synthesize(d *decl.TypeDeclaration, cands []matcher.Candidate) []Constructor {
	names := ns.New()
	out := make([]Constructor, 0, len(cands))
	for _, c := range cands {
		variant := ""
		if c.Variant != nil {
			variant = c.Variant.Name
		}
		out = append(out, Constructor{
			FuncName:   names.Name(ConstructorName(d.Name, c)),
			Target:     d.Name,
			Origin:     c.Origin,
			Variant:    variant,
			Field:      c.Field.Name,
			Param:      ParamName,
			Expression: Expression(d.Name, c),
			Imports:    c.Field.Imports,
		})
	}
	return out
}

// Expression returns the Go expression building target from ParamName.
func Expression(target string, c matcher.Candidate) string {
	if c.Target == matcher.TargetProduct || c.Variant == nil {
		return literal(target, c.Field)
	}

	v := c.Variant
	switch v.Form {
	case decl.FormDefined:
		return v.Name + "(" + ParamName + ")"
	case decl.FormPointer:
		return "&" + literal(v.Name, c.Field)
	default:
		return literal(v.Name, c.Field)
	}
}

func literal(typeName string, f decl.FieldShape) string {
	if f.Kind == decl.SingleNamed {
		return typeName + "{" + f.Name + ": " + ParamName + "}"
	}
	return typeName + "{" + ParamName + "}"
}
