package network

import "github.com/jndunlap/csl/internal/varset"

// SymmetryCorrect applies the AND-rule: an undirected edge {u,v} exists
// iff u is in v's reported neighborhood AND v is in u's.
func SymmetryCorrect(results map[varset.Var]TargetResult) *Graph {
	n := len(results)
	g := NewGraph(n)
	for u, ru := range results {
		for _, v := range ru.Neighbors.Slice() {
			rv, ok := results[v]
			if ok && rv.Neighbors.Contains(u) {
				g.AddUndirected(u, v)
			}
		}
	}
	return g
}

// Orient applies the v-structure (collider) rule: for every unshielded
// triple u-w-v (w adjacent to both, u and v not adjacent), orient
// u->w<-v iff no sepset recorded for the pair (u,v) during either u's
// or v's PC discovery run contains w. A pair with no recorded sepset at
// all is treated as unseparated, so its unshielded triples are oriented
// as colliders. Direct-MB results carry no sepsets, so the driver does
// not call Orient for that family and its edges stay undirected.
func Orient(g *Graph, results map[varset.Var]TargetResult) *Graph {
	for u := varset.Var(0); int(u) < g.N; u++ {
		for _, w := range g.Neighbors(u) {
			for _, v := range g.Neighbors(w) {
				if v <= u || v == w {
					continue
				}
				if g.HasEdge(u, v) {
					continue // shielded triple
				}
				if separates(results, u, v, w) {
					continue // a recorded sepset contains w: not a collider
				}
				g.SetOrientation(u, w)
				g.SetOrientation(v, w)
			}
		}
	}
	return g
}

func separates(results map[varset.Var]TargetResult, u, v, w varset.Var) bool {
	if ru, ok := results[u]; ok && ru.Sepsets != nil {
		if sep, ok := ru.Sepsets[v]; ok {
			return sep.Contains(w)
		}
	}
	if rv, ok := results[v]; ok && rv.Sepsets != nil {
		if sep, ok := rv.Sepsets[u]; ok {
			return sep.Contains(w)
		}
	}
	// No recorded sepset for this pair at all: nothing establishes w as
	// part of a separating set, so treat it as a collider.
	return false
}
