// Package derive runs one declaration through classification, ambiguity
// resolution and constructor synthesis.
//
// Derivation is a pure function of the declaration: it keeps no state between
// calls, so declarations may be derived concurrently.
package derive

import (
	"errors"

	"github.com/seitarof/gen-fromone/internal/decl"
	"github.com/seitarof/gen-fromone/internal/matcher"
	"github.com/seitarof/gen-fromone/internal/resolver"
	"github.com/seitarof/gen-fromone/internal/synth"
)

// Result is the successful outcome for one declaration. Constructors may be
// empty.
type Result struct {
	Decl         *decl.TypeDeclaration
	Constructors []synth.Constructor
	// Ambiguous lists the origin keys dropped because several variants share them.
	Ambiguous []string
}

// Deriver derives constructors for a declaration. On failure the error is a
// *diagnostic.Diagnostic and no constructors are returned.
type Deriver interface {
	Derive(d *decl.TypeDeclaration) (*Result, error)
}

type deriverImpl struct {
	classifier  matcher.Classifier
	resolver    resolver.Resolver
	synthesizer synth.Synthesizer
}

// New creates a deriver from its phases.
func New(c matcher.Classifier, r resolver.Resolver, s synth.Synthesizer) Deriver {
	return &deriverImpl{classifier: c, resolver: r, synthesizer: s}
}

// Default returns a deriver with the built-in phases.
func Default() Deriver {
	return New(matcher.NewClassifier(), resolver.New(), synth.New())
}

func (x *deriverImpl) Derive(d *decl.TypeDeclaration) (*Result, error) {
	if d == nil {
		return nil, errors.New("nil declaration")
	}
	if d.Kind != decl.KindSum && d.Kind != decl.KindProduct {
		return nil, matcher.UnsupportedDeclaration(d)
	}

	cands, err := x.classifier.Classify(d)
	if err != nil {
		return nil, err
	}

	res := &Result{Decl: d}
	if d.Kind == decl.KindSum {
		res.Ambiguous = resolver.Ambiguous(cands)
		cands = x.resolver.Resolve(cands)
	}
	res.Constructors = x.synthesizer.Synthesize(d, cands)
	return res, nil
}
