package smcm

// Components partitions the nodes of within into c-components: maximal sets
// connected through confounding entries (|code| > 1) whose endpoints both lie
// in within. Pass [Graph.All] for the full graph.
//
// Nodes are visited in ascending index order, so the result is deterministic
// and ordered by each component's smallest member. Every node of within
// appears in exactly one component. Nodes outside the graph are ignored.
//
// Time complexity is O(K·N) where K is the size of within and N the size of
// the graph.
func (g *Graph) Components(within NodeSet) []NodeSet {
	var (
		components []NodeSet
		visited    NodeSet
	)
	for v := range within.All() {
		if v >= g.n || visited.Has(v) {
			continue
		}
		var c NodeSet
		g.collectComponent(v, within, &visited, &c)
		components = append(components, c)
	}
	return components
}

// ComponentOf returns the c-component of within that contains v, or an
// empty set if v is not in within.
func (g *Graph) ComponentOf(v int, within NodeSet) NodeSet {
	if !within.Has(v) || v >= g.n {
		return NodeSet{}
	}
	var visited, c NodeSet
	g.collectComponent(v, within, &visited, &c)
	return c
}

// collectComponent adds every node reachable from v through confounding
// entries inside within to c. visited is shared across calls so a partition
// can be built with a single pass.
func (g *Graph) collectComponent(v int, within NodeSet, visited, c *NodeSet) {
	visited.Add(v)
	c.Add(v)
	for u := 0; u < g.n; u++ {
		if g.Code(v, u).IsConfounded() && within.Has(u) && !visited.Has(u) {
			g.collectComponent(u, within, visited, c)
		}
	}
}
