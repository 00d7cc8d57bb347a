package registry

import (
	"sort"
	"strings"

	"github.com/shmod-labs/shmod/internal/module"
)

// Search returns the modules whose name or description contains query,
// case-insensitively. Exact name matches come first; each group is ordered
// by kind precedence, then name. An empty query matches everything.
func Search(mods []module.Module, query string, order module.Order) []module.Module {
	if len(order) == 0 {
		order = module.DefaultOrder()
	}
	q := strings.ToLower(strings.TrimSpace(query))

	type hit struct {
		m     module.Module
		exact bool
	}
	var hits []hit
	for _, m := range mods {
		name := strings.ToLower(m.Name)
		switch {
		case q == "":
			hits = append(hits, hit{m: m})
		case name == q:
			hits = append(hits, hit{m: m, exact: true})
		case strings.Contains(name, q), strings.Contains(strings.ToLower(m.Description), q):
			hits = append(hits, hit{m: m})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].exact != hits[j].exact {
			return hits[i].exact
		}
		return order.Less(hits[i].m.Key(), hits[j].m.Key())
	})

	out := make([]module.Module, len(hits))
	for i, h := range hits {
		out[i] = h.m
	}
	return out
}
