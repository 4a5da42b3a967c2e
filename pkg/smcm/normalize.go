package smcm

// TopologicalOrder returns a permutation of the nodes of g such that every
// arrow points from an earlier to a later position: order[k] is the node
// placed at position k.
//
// # Algorithm
//
// For each position i from left to right, the positions j > i are scanned.
// When the candidate at j has an arrow into the candidate at i (code 1 or 2),
// the two are swapped and the scan for position i restarts. Position i is
// settled once a full scan finds no such arrow. Each swap moves an ancestor
// of the current candidate into position i, so the loop terminates on any
// acyclic graph. Nodes that are already in order are never moved, which
// makes the ordering idempotent.
//
// TopologicalOrder assumes g is acyclic, which [New] guarantees.
//
// # Performance
//
// Worst-case time is O(N³) for N nodes; the order is computed once per model.
func TopologicalOrder(g *Graph) []int {
	order := make([]int, g.n)
	for i := range order {
		order[i] = i
	}

	for i := range order {
		for swapped := true; swapped; {
			swapped = false
			for j := i + 1; j < len(order); j++ {
				if g.Code(order[j], order[i]).IsDirected() {
					order[i], order[j] = order[j], order[i]
					swapped = true
					break
				}
			}
		}
	}
	return order
}

// Normalize returns a topologically ordered copy of g together with the
// permutation used: node k of the result is node order[k] of g. The original
// meaning of a normalized index can only be recovered through order.
func Normalize(g *Graph) (*Graph, []int) {
	order := TopologicalOrder(g)
	return g.Permute(order), order
}

// InvertOrder returns the inverse permutation: inv[old] = new.
func InvertOrder(order []int) []int {
	inv := make([]int, len(order))
	for k, v := range order {
		inv[v] = k
	}
	return inv
}
