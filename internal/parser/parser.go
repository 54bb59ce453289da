package parser

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/seitarof/gen-fromone/internal/decl"
	"github.com/seitarof/gen-fromone/internal/ns"
)

// Parser translates Go type declarations into the decl model.
type Parser interface {
	Parse(req Request) (*PackageInfo, error)
}

type parserImpl struct{}

// New returns default parser.
func New() Parser {
	return &parserImpl{}
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

func (p *parserImpl) Parse(req Request) (*PackageInfo, error) {
	if len(req.TypeNames) == 0 {
		return nil, fmt.Errorf("no type names given")
	}
	pattern := req.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "."
	}

	pkg, err := loadPackage(pattern, req.BuildTags)
	if err != nil {
		return nil, err
	}

	b := newBuilder(pkg)
	info := &PackageInfo{
		Name:    pkg.Name,
		PkgPath: pkg.PkgPath,
		Dir:     packageDir(pkg),
		Decls:   make([]*decl.TypeDeclaration, 0, len(req.TypeNames)),
	}
	for _, name := range req.TypeNames {
		tn, ok := pkg.Types.Scope().Lookup(name).(*types.TypeName)
		if !ok {
			return nil, fmt.Errorf("type %q not found in package %q", name, pkg.PkgPath)
		}
		info.Decls = append(info.Decls, b.declaration(tn))
	}
	return info, nil
}

func loadPackage(pattern string, tags []string) (*packages.Package, error) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedFiles}
	if len(tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(tags, ",")}
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pattern, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want 1", pattern, len(pkgs))
	}

	// Earlier output may no longer compile against the edited sources, so it
	// is loaded as an empty file.
	cfg.Overlay, err = generatedOverlay(pkgs[0])
	if err != nil {
		return nil, err
	}
	cfg.Mode = loadMode

	pkgs, err = packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pattern, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want 1", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if errs := loadErrors(pkg, len(cfg.Overlay) > 0); len(errs) > 0 {
		return nil, fmt.Errorf("package %q has %d errors, first: %v", pattern, len(errs), errs[0])
	}
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return nil, fmt.Errorf("type info unavailable for package %q", pattern)
	}
	return pkg, nil
}

// generatedOverlay replaces every file of pkg starting with
// decl.GeneratedHeader by a bare package clause.
func generatedOverlay(pkg *packages.Package) (map[string][]byte, error) {
	var overlay map[string][]byte
	for _, file := range pkg.GoFiles {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		if !bytes.HasPrefix(src, []byte(decl.GeneratedHeader+"\n")) {
			continue
		}
		if overlay == nil {
			overlay = map[string][]byte{}
		}
		overlay[file] = []byte(decl.GeneratedHeader + "\n\npackage " + pkg.Name + "\n")
	}
	return overlay, nil
}

// loadErrors returns the errors that make pkg unusable. When earlier output was
// blanked, type errors are expected (callers of the blanked constructors) and
// the declarations are still fully typed.
func loadErrors(pkg *packages.Package, blanked bool) []packages.Error {
	var errs []packages.Error
	packages.Visit([]*packages.Package{pkg}, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			if blanked && p == pkg && e.Kind == packages.TypeError {
				continue
			}
			errs = append(errs, e)
		}
	})
	return errs
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	return ""
}

type typeSpec struct {
	obj *types.TypeName
	doc *ast.CommentGroup
	pos token.Position
}

// builder converts the types of one loaded package. Not safe for concurrent use.
//
// All declarations of one builder end up in one generated file, so imported
// packages get one local name per builder, unique against each other and
// against the package scope.
type builder struct {
	pkg   *packages.Package
	specs []typeSpec
	keys  typeutil.Map

	importNames map[string]string
	names       ns.Namespace
}

func newBuilder(pkg *packages.Package) *builder {
	return &builder{
		pkg:         pkg,
		specs:       collectTypeSpecs(pkg),
		importNames: map[string]string{},
		names:       ns.New(pkg.Types.Scope().Names()...),
	}
}

// importName returns the local name of the imported package p in the
// generated file.
func (b *builder) importName(p *types.Package) string {
	if name, ok := b.importNames[p.Path()]; ok {
		return name
	}
	name := b.names.Name(p.Name())
	b.importNames[p.Path()] = name
	return name
}

// collectTypeSpecs returns the package-level type specs in source order.
func collectTypeSpecs(pkg *packages.Package) []typeSpec {
	var specs []typeSpec
	for _, f := range pkg.Syntax {
		for _, d := range f.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				tn, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}
				specs = append(specs, typeSpec{obj: tn, doc: doc, pos: pkg.Fset.Position(ts.Name.Pos())})
			}
		}
	}

	sort.SliceStable(specs, func(i, j int) bool {
		if specs[i].pos.Filename != specs[j].pos.Filename {
			return specs[i].pos.Filename < specs[j].pos.Filename
		}
		return specs[i].pos.Offset < specs[j].pos.Offset
	})
	return specs
}

func (b *builder) declaration(tn *types.TypeName) *decl.TypeDeclaration {
	d := &decl.TypeDeclaration{
		Name:    tn.Name(),
		PkgPath: b.pkg.PkgPath,
		PkgName: b.pkg.Name,
		Pos:     b.pkg.Fset.Position(tn.Pos()),
		Kind:    decl.KindUnsupported,
	}

	named, ok := tn.Type().(*types.Named)
	if !ok || tn.IsAlias() {
		d.Detail = "type alias"
		return d
	}
	if named.TypeParams().Len() > 0 {
		d.Detail = "generic type"
		return d
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		d.Kind = decl.KindProduct
		d.Field = b.structShape(u)
	case *types.Interface:
		switch {
		case !u.IsMethodSet():
			d.Detail = "constraint interface"
		case u.NumMethods() == 0:
			d.Detail = "interface with an empty method set"
		default:
			d.Kind = decl.KindSum
			d.Variants = b.variants(named, u)
		}
	default:
		d.Detail = describe(u)
	}
	return d
}

// variants returns the package-level types implementing iface, in source order.
func (b *builder) variants(iface *types.Named, it *types.Interface) []decl.Variant {
	var out []decl.Variant
	for _, s := range b.specs {
		if s.obj == iface.Obj() || s.obj.IsAlias() {
			continue
		}
		named, ok := s.obj.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 || types.IsInterface(named) {
			continue
		}
		form, ok := variantForm(named, it)
		if !ok {
			continue
		}

		v := decl.Variant{
			Name:        s.obj.Name(),
			Pos:         s.pos,
			Form:        form,
			Annotations: b.annotations(s.doc),
		}
		if st, isStruct := named.Underlying().(*types.Struct); isStruct {
			v.Shape = b.structShape(st)
		} else {
			v.Shape = b.fieldShape(decl.SingleUnnamed, "", named.Underlying())
		}
		out = append(out, v)
	}
	return out
}

func variantForm(named *types.Named, it *types.Interface) (decl.Form, bool) {
	_, isStruct := named.Underlying().(*types.Struct)
	if types.Implements(named, it) {
		if isStruct {
			return decl.FormStruct, true
		}
		return decl.FormDefined, true
	}
	if isStruct && types.Implements(types.NewPointer(named), it) {
		return decl.FormPointer, true
	}
	return 0, false
}

func (b *builder) structShape(st *types.Struct) decl.FieldShape {
	switch st.NumFields() {
	case 0:
		return decl.FieldShape{Kind: decl.NoField}
	case 1:
		f := st.Field(0)
		if f.Name() == "_" {
			// A blank field can be neither keyed nor set positionally.
			return decl.FieldShape{Kind: decl.NoField}
		}
		if f.Embedded() {
			return b.fieldShape(decl.SingleUnnamed, "", f.Type())
		}
		return b.fieldShape(decl.SingleNamed, f.Name(), f.Type())
	default:
		return decl.FieldShape{Kind: decl.Multi, Count: st.NumFields()}
	}
}

func (b *builder) fieldShape(kind decl.ShapeKind, name string, t types.Type) decl.FieldShape {
	imports := map[string]string{}
	qualifier := func(p *types.Package) string {
		if p == nil || p.Path() == b.pkg.PkgPath {
			return ""
		}
		name := b.importName(p)
		imports[p.Path()] = name
		return name
	}

	return decl.FieldShape{
		Kind:    kind,
		Count:   1,
		Name:    name,
		Type:    types.TypeString(t, qualifier),
		Key:     b.key(t),
		Imports: sortedImports(imports),
	}
}

// key returns one string per set of identical types, so that byte and uint8,
// or a type and its alias, group together.
func (b *builder) key(t types.Type) string {
	if k := b.keys.At(t); k != nil {
		return k.(string)
	}
	k := types.TypeString(t, func(p *types.Package) string { return p.Path() })
	b.keys.Set(t, k)
	return k
}

func (b *builder) annotations(doc *ast.CommentGroup) []decl.Annotation {
	if doc == nil {
		return nil
	}
	var out []decl.Annotation
	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, decl.DirectivePrefix)
		if !ok {
			continue
		}
		out = append(out, decl.Annotation{Text: text, Pos: b.pkg.Fset.Position(c.Pos())})
	}
	return out
}

func sortedImports(m map[string]string) []decl.Import {
	if len(m) == 0 {
		return nil
	}
	out := make([]decl.Import, 0, len(m))
	for path, name := range m {
		out = append(out, decl.Import{Path: path, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func describe(t types.Type) string {
	switch t.(type) {
	case *types.Basic:
		return "basic type"
	case *types.Map:
		return "map type"
	case *types.Slice:
		return "slice type"
	case *types.Array:
		return "array type"
	case *types.Pointer:
		return "pointer type"
	case *types.Signature:
		return "function type"
	case *types.Chan:
		return "channel type"
	default:
		return "unsupported type"
	}
}
