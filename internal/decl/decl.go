// Package decl holds the declaration model handed from the parser to the
// constructor derivation pipeline. It has no dependency on go/packages.
package decl

import "go/token"

// TypeDeclaration describes one type constructors are derived for.
type TypeDeclaration struct {
	Name    string
	PkgPath string
	PkgName string
	Pos     token.Position
	Kind    Kind
	// Detail explains what an unsupported declaration is, e.g. "map type".
	Detail   string
	Variants []Variant
	Field    FieldShape
}

// Kind is the declaration category.
type Kind int

const (
	KindUnsupported Kind = iota
	KindSum
	KindProduct
)

// Variant is one implementer of a sum interface.
type Variant struct {
	Name        string
	Pos         token.Position
	Form        Form
	Shape       FieldShape
	Annotations []Annotation
}

// Form tells how a variant value is built.
type Form int

const (
	// FormStruct builds the variant with a struct literal.
	FormStruct Form = iota
	// FormPointer builds the variant with a pointer to a struct literal.
	FormPointer
	// FormDefined builds a defined non-struct type with a conversion.
	FormDefined
)

// FieldShape is the field layout of a variant or product.
type FieldShape struct {
	Kind  ShapeKind
	Count int
	// Name is set for SingleNamed only.
	Name string
	// Type is the field type as written in the output package.
	Type string
	// Key identifies the field type structurally; identical types share a key.
	Key     string
	Imports []Import
}

// ShapeKind is the coarse-grained field layout.
type ShapeKind int

const (
	NoField ShapeKind = iota
	SingleNamed
	SingleUnnamed
	Multi
)

// Single reports whether the shape has exactly one field.
func (s FieldShape) Single() bool {
	return s.Kind == SingleNamed || s.Kind == SingleUnnamed
}

// Import is a package referenced by a rendered type.
type Import struct {
	Path string
	Name string
}

// Annotation is the raw text of a //fromone: directive attached to a variant.
type Annotation struct {
	Text string
	Pos  token.Position
}

// DirectivePrefix starts every annotation comment.
const DirectivePrefix = "//fromone:"

// GeneratedHeader is the first line of every generated file. The parser uses
// it to recognize earlier output in the package being loaded.
const GeneratedHeader = "// Code generated by gen-fromone; DO NOT EDIT."
