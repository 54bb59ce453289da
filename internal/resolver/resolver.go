package resolver

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/seitarof/gen-fromone/internal/matcher"
)

// Resolver drops candidates whose origin type would route a value to more
// than one variant.
type Resolver interface {
	Resolve(cands []matcher.Candidate) []matcher.Candidate
}

type resolverImpl struct{}

// New returns default ambiguity resolver.
func New() Resolver {
	return &resolverImpl{}
}

// Resolve keeps candidates with a unique origin key, in their original order.
// Shared keys are dropped entirely: no variant is preferred over another.
func (r *resolverImpl) Resolve(cands []matcher.Candidate) []matcher.Candidate {
	counts := countKeys(cands)

	out := make([]matcher.Candidate, 0, len(cands))
	for _, c := range cands {
		if n, _ := counts.Get(c.Key); n.(int) > 1 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Ambiguous returns the origin keys shared by more than one candidate, in
// first-seen order.
func Ambiguous(cands []matcher.Candidate) []string {
	counts := countKeys(cands)

	var keys []string
	it := counts.Iterator()
	for it.Next() {
		if it.Value().(int) > 1 {
			keys = append(keys, it.Key().(string))
		}
	}
	return keys
}

func countKeys(cands []matcher.Candidate) *linkedhashmap.Map {
	counts := linkedhashmap.New()
	for _, c := range cands {
		n := 0
		if v, ok := counts.Get(c.Key); ok {
			n = v.(int)
		}
		counts.Put(c.Key, n+1)
	}
	return counts
}
