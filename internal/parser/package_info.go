package parser

import "github.com/seitarof/gen-fromone/internal/decl"

// PackageInfo is the result of parsing one package.
type PackageInfo struct {
	Name    string
	PkgPath string
	// Dir is the directory holding the package sources.
	Dir   string
	Decls []*decl.TypeDeclaration
}

// Request selects the package and the types to parse.
type Request struct {
	Pattern   string
	TypeNames []string
	BuildTags []string
}
