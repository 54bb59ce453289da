package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"github.com/seitarof/gen-fromone/internal/decl"
	"github.com/seitarof/gen-fromone/internal/derive"
	"github.com/seitarof/gen-fromone/internal/diagnostic"
	"github.com/seitarof/gen-fromone/internal/generator"
	"github.com/seitarof/gen-fromone/internal/parser"
)

// ErrDiagnostics is returned when at least one declaration failed. The
// diagnostics themselves have already been printed.
var ErrDiagnostics = errors.New("constructor derivation failed")

// Runner orchestrates parser/deriver/generator layers.
type Runner interface {
	Run(ctx context.Context, cfg *Config) error
}

type runnerImpl struct {
	parser    parser.Parser
	deriver   derive.Deriver
	generator generator.Generator
	stderr    io.Writer
}

// NewRunner creates a default runner implementation. Diagnostics and dumps go
// to stderr.
func NewRunner(
	p parser.Parser,
	d derive.Deriver,
	g generator.Generator,
	stderr io.Writer,
) Runner {
	return &runnerImpl{
		parser:    p,
		deriver:   d,
		generator: g,
		stderr:    stderr,
	}
}

// Run executes a single generation cycle. If any declaration fails, nothing
// is written.
func (r *runnerImpl) Run(ctx context.Context, cfg *Config) error {
	info, err := r.parser.Parse(parser.Request{
		Pattern:   cfg.Pattern,
		TypeNames: cfg.Types,
		BuildTags: cfg.BuildTags,
	})
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if cfg.Dump {
		spew.Fdump(r.stderr, info.Decls)
	}

	results, diags, err := r.deriveAll(ctx, info.Decls, cfg.Jobs)
	if err != nil {
		return err
	}
	if len(diags) > 0 {
		printer := diagnostic.NewPrinter(r.stderr, cfg.NoColor)
		for _, d := range diags {
			if err := printer.Print(d); err != nil {
				return fmt.Errorf("print diagnostics: %w", err)
			}
		}
		return fmt.Errorf("%w: %d of %d declarations", ErrDiagnostics, len(diags), len(info.Decls))
	}

	if cfg.Verbose {
		logAmbiguous(results)
	}
	if cfg.Check {
		if _, err := r.generator.Render(info.Name, results); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		return nil
	}

	if countConstructors(results) == 0 {
		log.Printf("gen-fromone: warning: no constructors derived for %s", strings.Join(cfg.Types, ", "))
	}

	out := &Config{Filename: outputFilename(cfg, info)}
	if err := r.generator.Generate(out, info.Name, results); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return nil
}

// deriveAll derives every declaration in parallel. Results keep the order of
// decls; a failed declaration leaves a nil result.
func (r *runnerImpl) deriveAll(
	ctx context.Context,
	decls []*decl.TypeDeclaration,
	jobs int,
) ([]*derive.Result, []*diagnostic.Diagnostic, error) {
	results := make([]*derive.Result, len(decls))
	failures := make([]*diagnostic.Diagnostic, len(decls))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, d := range decls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.deriver.Derive(d)
			if err != nil {
				diag, ok := diagnostic.As(err)
				if !ok {
					return fmt.Errorf("derive %s: %w", d.Name, err)
				}
				failures[i] = diag
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var diags []*diagnostic.Diagnostic
	for _, d := range failures {
		if d != nil {
			diags = append(diags, d)
		}
	}
	return results, diags, nil
}

// outputFilename resolves the output file. Relative names are relative to the
// package directory.
func outputFilename(cfg *Config, info *parser.PackageInfo) string {
	name := cfg.Filename
	if name == "" {
		name = strings.ToLower(cfg.Types[0]) + "_fromone.go"
	}
	if info.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(info.Dir, name)
}

func countConstructors(results []*derive.Result) int {
	n := 0
	for _, r := range results {
		if r != nil {
			n += len(r.Constructors)
		}
	}
	return n
}

func logAmbiguous(results []*derive.Result) {
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, key := range r.Ambiguous {
			log.Printf(
				"gen-fromone: note: %s: %s is held by more than one variant, no constructor generated",
				r.Decl.Name,
				key,
			)
		}
	}
}
