package smcm

// Ancestors returns the targets together with all of their ancestors,
// following incoming arrows (codes -1 and -2) until closure. With no
// targets it returns every node. Targets outside the graph are ignored.
func (g *Graph) Ancestors(targets ...int) NodeSet {
	if len(targets) == 0 {
		return g.All()
	}
	var seen NodeSet
	for _, t := range targets {
		if t >= 0 && t < g.n && !seen.Has(t) {
			g.collectAncestors(t, &seen)
		}
	}
	return seen
}

func (g *Graph) collectAncestors(v int, seen *NodeSet) {
	seen.Add(v)
	for u := 0; u < g.n; u++ {
		if g.Code(v, u).IsIncoming() && !seen.Has(u) {
			g.collectAncestors(u, seen)
		}
	}
}

// IsAncestral reports whether set is closed under taking parents.
func (g *Graph) IsAncestral(set NodeSet) bool {
	for v := range set.All() {
		for _, p := range g.Parents(v) {
			if !set.Has(p) {
				return false
			}
		}
	}
	return true
}
