package synth

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/seitarof/gen-fromone/internal/matcher"
)

// ConstructorName returns the constructor name for a candidate of target.
// Products get New<Target>; sum constructors get <Target>From<OriginToken>.
// Unexported targets get unexported constructors.
func ConstructorName(target string, c matcher.Candidate) string {
	var name string
	if c.Target == matcher.TargetProduct {
		name = "New" + upperFirst(target)
	} else {
		name = target + "From" + TypeToken(c.Origin)
	}
	if !token.IsExported(target) {
		name = lowerFirst(name)
	}
	return name
}

var typeTokenReplacer = strings.NewReplacer(
	"[]", " Slice ",
	"map[", " Map ",
	"*", " Ptr ",
	"chan ", " Chan ",
	"func(", " Func ",
	"...", " Variadic ",
)

// TypeToken turns a Go type expression into an identifier fragment, e.g.
// "[]*pkg.User" becomes "SlicePtrPkgUser".
func TypeToken(typ string) string {
	parts := strings.FieldsFunc(typeTokenReplacer.Replace(typ), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	// Casers are stateful; one per call keeps derivation goroutine safe.
	title := cases.Title(language.English, cases.NoLower)
	var b strings.Builder
	for _, p := range parts {
		p = strings.Trim(p, "_")
		if p == "" {
			continue
		}
		b.WriteString(title.String(p))
	}
	if b.Len() == 0 {
		return "Value"
	}
	return b.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
