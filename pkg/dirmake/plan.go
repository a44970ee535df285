package dirmake

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gammazero/toposort"
)

// Plan reorders a batch of requested paths so that a path requested
// together with one of its descendants is processed first. Paths not
// related by ancestry keep their command-line positions. Plan is opt-in
// (the --sort flag); default processing follows the command line exactly.
func Plan(paths []string) ([]string, error) {
	edges := make([]toposort.Edge, 0)
	seen := make(map[[2]string]bool)

	// Union-find over related paths, so independent ancestor groups can
	// be merged back into their own command-line slots.
	parent := make(map[string]string)
	var find func(string) string
	find = func(p string) string {
		if parent[p] != p {
			parent[p] = find(parent[p])
		}
		return parent[p]
	}
	union := func(a, b string) {
		if _, ok := parent[a]; !ok {
			parent[a] = a
		}
		if _, ok := parent[b]; !ok {
			parent[b] = b
		}
		if ra, rb := find(a), find(b); ra != rb {
			parent[ra] = rb
		}
	}

	for _, ancestor := range paths {
		for _, descendant := range paths {
			if !isAncestor(ancestor, descendant) {
				continue
			}
			pair := [2]string{ancestor, descendant}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			edges = append(edges, toposort.Edge{ancestor, descendant})
			union(ancestor, descendant)
		}
	}

	if len(edges) == 0 {
		return paths, nil
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("failed to order directory requests: %w", err)
	}

	// The global toposort output interleaves independent components in no
	// guaranteed order; only the relative order within a component is
	// meaningful. Queue each component's members separately.
	queues := make(map[string][]string)
	for _, node := range sorted {
		p := node.(string)
		root := find(p)
		queues[root] = append(queues[root], p)
	}

	// Constrained slots are filled ancestor-first from their own
	// component's queue; everything else stays where the command line
	// put it.
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := parent[p]; !ok {
			out = append(out, p)
			continue
		}
		root := find(p)
		if q := queues[root]; len(q) > 0 {
			out = append(out, q[0])
			queues[root] = q[1:]
		} else {
			// Duplicate arguments collapse to one graph node; keep the
			// extra occurrences in place.
			out = append(out, p)
		}
	}
	return out, nil
}

// isAncestor reports whether ancestor is a strict path prefix of path.
func isAncestor(ancestor, path string) bool {
	a := filepath.Clean(ancestor)
	p := filepath.Clean(path)
	if a == p {
		return false
	}
	return strings.HasPrefix(p, a+string(filepath.Separator))
}
