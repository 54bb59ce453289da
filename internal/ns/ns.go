// Package ns hands out unique Go identifiers within one scope.
package ns

import (
	"fmt"
	"iter"
)

// Namespace is a set of identifiers already in use.
type Namespace map[string]struct{}

// New returns an empty namespace with the given names already taken.
func New(taken ...string) Namespace {
	n := make(Namespace, len(taken))
	for _, name := range taken {
		n[name] = struct{}{}
	}
	return n
}

// Reserve takes name if it is free and reports whether it did.
func (n Namespace) Reserve(name string) bool {
	if _, ok := n[name]; ok {
		return false
	}
	n[name] = struct{}{}
	return true
}

// Name returns name, or name with a numbering suffix if it is taken.
func (n Namespace) Name(name string) string {
	for candidate := range disambiguate(name) {
		if n.Reserve(candidate) {
			return candidate
		}
	}
	panic("unreachable")
}

func disambiguate(name string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(name) {
			return
		}

		// "ShapeFromInt64_2" reads better than "ShapeFromInt642".
		sep := ""
		if last := name[len(name)-1]; last >= '0' && last <= '9' {
			sep = "_"
		}
		for i := 2; ; i++ {
			if !yield(fmt.Sprintf("%s%s%d", name, sep, i)) {
				return
			}
		}
	}
}
