package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/seitarof/gen-fromone/internal/decl"
	"github.com/seitarof/gen-fromone/internal/derive"
	"github.com/seitarof/gen-fromone/internal/synth"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

// Generator emits derived constructors as a Go source file.
type Generator interface {
	Render(pkgName string, results []*derive.Result) ([]byte, error)
	Generate(cfg Config, pkgName string, results []*derive.Result) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
}

type goimportsFormatter struct{}

type fileWriter struct{}

type templateData struct {
	Header  string
	Package string
	Imports []decl.Import
	Decls   []declTemplateData
}

type declTemplateData struct {
	Target       string
	Constructors []synth.Constructor
}

// New creates a code generator.
func New(f Formatter, w FileWriter) Generator {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"importLine": importLine,
	}).ParseFS(templateFS, "templates/*.go.tmpl"))
	return &generatorImpl{formatter: f, writer: w, tmpl: tmpl}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

// Render returns the formatted file content without writing it. The file name
// handed to the formatter is only used for import grouping.
func (g *generatorImpl) Render(pkgName string, results []*derive.Result) ([]byte, error) {
	return g.render("fromone_gen.go", pkgName, results)
}

func (g *generatorImpl) Generate(cfg Config, pkgName string, results []*derive.Result) error {
	formatted, err := g.render(cfg.OutputFilename(), pkgName, results)
	if err != nil {
		return err
	}
	if err := g.writer.Write(cfg.OutputFilename(), formatted); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (g *generatorImpl) render(filename string, pkgName string, results []*derive.Result) ([]byte, error) {
	if pkgName == "" {
		return nil, fmt.Errorf("no package name")
	}

	data := buildTemplateData(pkgName, results)
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "file", data); err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}

	formatted, err := g.formatter.Format(filename, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return formatted, nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

func buildTemplateData(pkgName string, results []*derive.Result) templateData {
	importsSet := map[string]string{}
	decls := make([]declTemplateData, 0, len(results))

	for _, r := range results {
		if r == nil || r.Decl == nil {
			continue
		}
		for _, c := range r.Constructors {
			for _, imp := range c.Imports {
				importsSet[imp.Path] = imp.Name
			}
		}
		decls = append(decls, declTemplateData{
			Target:       r.Decl.Name,
			Constructors: r.Constructors,
		})
	}

	importsList := make([]decl.Import, 0, len(importsSet))
	for p, name := range importsSet {
		importsList = append(importsList, decl.Import{Path: p, Name: name})
	}
	sort.Slice(importsList, func(i, j int) bool { return importsList[i].Path < importsList[j].Path })

	return templateData{
		Header:  decl.GeneratedHeader,
		Package: pkgName,
		Imports: importsList,
		Decls:   decls,
	}
}

func importLine(imp decl.Import) string {
	quoted := strconv.Quote(imp.Path)
	if imp.Name == "" || imp.Name == path.Base(imp.Path) {
		return quoted
	}
	return imp.Name + " " + quoted
}
