package matcher

import (
	"errors"

	"github.com/seitarof/gen-fromone/internal/decl"
	"github.com/seitarof/gen-fromone/internal/diagnostic"
)

// EmissionTarget is the shape a candidate constructor builds.
type EmissionTarget int

const (
	// TargetProduct wraps the value in the sole field of a product struct.
	TargetProduct EmissionTarget = iota
	// TargetNamedField builds a variant through its named field.
	TargetNamedField
	// TargetPositionalField builds a variant through its unnamed field.
	TargetPositionalField
)

// Candidate is an origin type eligible for one conversion constructor.
type Candidate struct {
	Origin string
	Key    string
	Target EmissionTarget
	// Variant is nil for product candidates.
	Variant *decl.Variant
	Field   decl.FieldShape
}

// Classifier reduces a declaration to conversion candidates.
type Classifier interface {
	Classify(d *decl.TypeDeclaration) ([]Candidate, error)
}

type classifierImpl struct{}

// NewClassifier returns default declaration classifier.
func NewClassifier() Classifier {
	return &classifierImpl{}
}

// Classify returns the candidates of d, or a *diagnostic.Diagnostic. For sum
// types the result is provisional and still has to go through ambiguity
// resolution.
func (c *classifierImpl) Classify(d *decl.TypeDeclaration) ([]Candidate, error) {
	switch d.Kind {
	case decl.KindProduct:
		return classifyProduct(d)
	case decl.KindSum:
		return classifySum(d)
	default:
		return nil, UnsupportedDeclaration(d)
	}
}

// UnsupportedDeclaration reports a declaration that is neither sum nor product.
func UnsupportedDeclaration(d *decl.TypeDeclaration) *diagnostic.Diagnostic {
	what := d.Detail
	if what == "" {
		what = "unsupported type"
	}
	return diagnostic.New(
		diagnostic.UnsupportedDeclaration,
		d.Pos,
		d.Name,
		"%s is a %s; constructors can only be derived for interfaces with implementers or structs with a single field",
		d.Name,
		what,
	)
}

func classifyProduct(d *decl.TypeDeclaration) ([]Candidate, error) {
	if !d.Field.Single() {
		return nil, diagnostic.New(
			diagnostic.UnsupportedShape,
			d.Pos,
			d.Name,
			"product types must declare exactly one field; %s has %d",
			d.Name,
			d.Field.Count,
		)
	}
	return []Candidate{{
		Origin: d.Field.Type,
		Key:    keyOf(d.Field),
		Target: TargetProduct,
		Field:  d.Field,
	}}, nil
}

func classifySum(d *decl.TypeDeclaration) ([]Candidate, error) {
	out := make([]Candidate, 0, len(d.Variants))
	for i := range d.Variants {
		v := &d.Variants[i]

		skip, err := isSkipped(d, v)
		if err != nil {
			return nil, err
		}
		if skip || !v.Shape.Single() {
			continue
		}

		target := TargetNamedField
		if v.Shape.Kind == decl.SingleUnnamed {
			target = TargetPositionalField
		}
		out = append(out, Candidate{
			Origin:  v.Shape.Type,
			Key:     keyOf(v.Shape),
			Target:  target,
			Variant: v,
			Field:   v.Shape,
		})
	}
	return out, nil
}

// isSkipped parses every annotation of v. A malformed annotation fails the
// whole declaration, whatever the shape of v.
func isSkipped(d *decl.TypeDeclaration, v *decl.Variant) (bool, error) {
	skip := false
	for _, a := range v.Annotations {
		markers, err := ParseAnnotation(a.Text)
		if err != nil {
			var bad *UnrecognizedTokenError
			if !errors.As(err, &bad) {
				return false, err
			}
			return false, diagnostic.New(
				diagnostic.MalformedAnnotation,
				a.Pos,
				d.Name+"."+v.Name,
				"%s; expected %s%s",
				bad.Error(),
				decl.DirectivePrefix,
				MarkerSkip,
			)
		}
		for _, m := range markers {
			if m == MarkerSkip {
				skip = true
			}
		}
	}
	return skip, nil
}

func keyOf(s decl.FieldShape) string {
	if s.Key != "" {
		return s.Key
	}
	return s.Type
}
