package cli

import (
	"bytes"
	"context"
	"errors"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seitarof/gen-fromone/internal/decl"
	"github.com/seitarof/gen-fromone/internal/derive"
	"github.com/seitarof/gen-fromone/internal/diagnostic"
	"github.com/seitarof/gen-fromone/internal/generator"
	"github.com/seitarof/gen-fromone/internal/parser"
	"github.com/seitarof/gen-fromone/internal/synth"
)

type mockParser struct {
	info    *parser.PackageInfo
	err     error
	lastReq parser.Request
}

func (m *mockParser) Parse(req parser.Request) (*parser.PackageInfo, error) {
	m.lastReq = req
	return m.info, m.err
}

type mockDeriver struct {
	fail map[string]error
}

func (m *mockDeriver) Derive(d *decl.TypeDeclaration) (*derive.Result, error) {
	if err := m.fail[d.Name]; err != nil {
		return nil, err
	}
	return &derive.Result{
		Decl: d,
		Constructors: []synth.Constructor{
			{FuncName: "New" + d.Name, Target: d.Name, Origin: "string", Param: "v", Expression: d.Name + "{v}"},
		},
	}, nil
}

type mockGenerator struct {
	callCount   int
	renderCount int
	renderErr   error
	filename  string
	pkgName   string
	results   []*derive.Result
}

func (m *mockGenerator) Render(_ string, results []*derive.Result) ([]byte, error) {
	m.renderCount++
	m.results = results
	return nil, m.renderErr
}

func (m *mockGenerator) Generate(cfg generator.Config, pkgName string, results []*derive.Result) error {
	m.callCount++
	m.filename = cfg.OutputFilename()
	m.pkgName = pkgName
	m.results = results
	return nil
}

func packageInfo(names ...string) *parser.PackageInfo {
	info := &parser.PackageInfo{Name: "model", PkgPath: "example.com/model", Dir: "/src/model"}
	for _, n := range names {
		info.Decls = append(info.Decls, &decl.TypeDeclaration{Name: n, Kind: decl.KindProduct})
	}
	return info
}

func TestRunner_Run_KeepsRequestOrder(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	p := &mockParser{info: packageInfo(names...)}
	gen := &mockGenerator{}

	r := NewRunner(p, &mockDeriver{}, gen, &bytes.Buffer{})
	cfg := &Config{Pattern: "./model", Types: names, BuildTags: []string{"x"}, Jobs: 3}
	require.NoError(t, r.Run(context.Background(), cfg))

	assert.Equal(t, parser.Request{Pattern: "./model", TypeNames: names, BuildTags: []string{"x"}}, p.lastReq)
	require.Equal(t, 1, gen.callCount)
	assert.Equal(t, "model", gen.pkgName)
	assert.Equal(t, filepath.Join("/src/model", "a_fromone.go"), gen.filename)
	require.Len(t, gen.results, len(names))
	for i, res := range gen.results {
		assert.Equal(t, names[i], res.Decl.Name)
	}
}

func TestRunner_Run_ExplicitOutput(t *testing.T) {
	gen := &mockGenerator{}
	r := NewRunner(&mockParser{info: packageInfo("Shape")}, &mockDeriver{}, gen, &bytes.Buffer{})

	require.NoError(t, r.Run(context.Background(), &Config{Types: []string{"Shape"}, Filename: "out.go"}))
	assert.Equal(t, filepath.Join("/src/model", "out.go"), gen.filename)

	abs := filepath.Join(t.TempDir(), "out.go")
	require.NoError(t, r.Run(context.Background(), &Config{Types: []string{"Shape"}, Filename: abs}))
	assert.Equal(t, abs, gen.filename)
}

func TestRunner_Run_DiagnosticsStopGeneration(t *testing.T) {
	pos := token.Position{Filename: "/src/model/model.go", Line: 3, Column: 6}
	d := &mockDeriver{fail: map[string]error{
		"B": diagnostic.New(diagnostic.UnsupportedShape, pos, "B", "product types must declare exactly one field; B has 2"),
	}}
	gen := &mockGenerator{}
	var stderr bytes.Buffer

	r := NewRunner(&mockParser{info: packageInfo("A", "B")}, d, gen, &stderr)
	err := r.Run(context.Background(), &Config{Types: []string{"A", "B"}, NoColor: true})

	require.ErrorIs(t, err, ErrDiagnostics)
	assert.Zero(t, gen.callCount)
	assert.Contains(t, stderr.String(), "error[UnsupportedShape]: B: product types must declare exactly one field; B has 2")
}

func TestRunner_Run_CheckRendersWithoutWriting(t *testing.T) {
	gen := &mockGenerator{}
	r := NewRunner(&mockParser{info: packageInfo("A")}, &mockDeriver{}, gen, &bytes.Buffer{})

	require.NoError(t, r.Run(context.Background(), &Config{Types: []string{"A"}, Check: true}))
	assert.Zero(t, gen.callCount)
	assert.Equal(t, 1, gen.renderCount)
	require.Len(t, gen.results, 1)

	gen = &mockGenerator{renderErr: errors.New("template")}
	r = NewRunner(&mockParser{info: packageInfo("A")}, &mockDeriver{}, gen, &bytes.Buffer{})
	require.Error(t, r.Run(context.Background(), &Config{Types: []string{"A"}, Check: true}))
	assert.Zero(t, gen.callCount)
}

func TestRunner_Run_Errors(t *testing.T) {
	t.Run("parser", func(t *testing.T) {
		gen := &mockGenerator{}
		r := NewRunner(&mockParser{err: errors.New("boom")}, &mockDeriver{}, gen, &bytes.Buffer{})

		err := r.Run(context.Background(), &Config{Types: []string{"A"}})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDiagnostics)
		assert.Zero(t, gen.callCount)
	})

	t.Run("non-diagnostic derive failure", func(t *testing.T) {
		gen := &mockGenerator{}
		d := &mockDeriver{fail: map[string]error{"A": errors.New("broken")}}
		r := NewRunner(&mockParser{info: packageInfo("A")}, d, gen, &bytes.Buffer{})

		err := r.Run(context.Background(), &Config{Types: []string{"A"}})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDiagnostics)
		assert.Zero(t, gen.callCount)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gen := &mockGenerator{}
		r := NewRunner(&mockParser{info: packageInfo("A")}, &mockDeriver{}, gen, &bytes.Buffer{})

		require.ErrorIs(t, r.Run(ctx, &Config{Types: []string{"A"}}), context.Canceled)
		assert.Zero(t, gen.callCount)
	})
}

func TestRunner_Run_Dump(t *testing.T) {
	var stderr bytes.Buffer
	r := NewRunner(&mockParser{info: packageInfo("Shape")}, &mockDeriver{}, &mockGenerator{}, &stderr)

	require.NoError(t, r.Run(context.Background(), &Config{Types: []string{"Shape"}, Dump: true, Check: true}))
	assert.Contains(t, stderr.String(), "Shape")
}
