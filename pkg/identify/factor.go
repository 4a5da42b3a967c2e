package identify

import (
	"context"

	"github.com/matzehuels/causalid/pkg/expr"
	"github.com/matzehuels/causalid/pkg/observability"
	"github.com/matzehuels/causalid/pkg/smcm"
)

// IdentifyFactor returns the Tian factor Q[c] of a c-component as a product
// of conditional terms, one per node in descending index order:
//
//	P(v | T_v ∪ pa(T_v) \ {v})
//
// T_v is the c-component of v in the subgraph over nodes 0..v and pa(T_v)
// its parents within that subgraph. Nodes of c outside the graph are
// ignored. An empty c yields an empty product.
func (m *Model) IdentifyFactor(c smcm.NodeSet) expr.Expr {
	return m.factor(context.Background(), c, m.g.All())
}

// factor builds Q[c] with every prefix subgraph restricted to universe.
func (m *Model) factor(ctx context.Context, c, universe smcm.NodeSet) expr.Product {
	nodes := c.Slice()
	terms := make([]expr.Expr, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		v := nodes[i]
		if v >= m.g.Len() {
			continue
		}
		prefix := universe.Intersect(smcm.Range(0, v+1))
		t := m.g.ComponentOf(v, prefix)

		cond := t.Clone()
		for u := range t.All() {
			for _, p := range m.g.Parents(u) {
				if prefix.Has(p) {
					cond.Add(p)
				}
			}
		}
		terms = append(terms, expr.NewTerm(v, cond.Slice()...))
	}
	observability.Identify().OnFactor(ctx, c.Len(), len(terms))
	return expr.Mul(terms...)
}
