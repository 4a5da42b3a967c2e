// Package identify decides whether interventional distributions are
// identifiable in a semi-Markovian causal model and builds their estimands.
//
// # Overview
//
// A [Model] wraps a validated [smcm.Graph]. On construction the graph is
// normalized into topological order and decomposed into c-components, the
// maximal node sets connected by bidirected (confounding) edges. Each
// c-component S has a Tian factor Q[S] that is identifiable from the
// observational distribution:
//
//	Q[S] = ∏_{v ∈ S} P(v | T_v ∪ pa(T_v) \ {v})
//
// where T_v is the c-component containing v in the subgraph over the nodes
// up to and including v.
//
// # Interventions
//
// [Model.Identify] handles a single intervention do(x) on the ancestors of a
// target set s. The effect is non-identifiable (a hedge) when x has a child
// in An(s) that it is also confounded with. Otherwise the estimand is the
// product of every c-component factor, with x's own factor marginalized
// over x:
//
//	P(v \ x | do(x)) = ∏_{S ∌ x} Q[S] · Σ_x Q[S_x]
//
// # Determinism
//
// Components are ordered by their smallest node, factor terms by descending
// node index, and conditioning sets ascending. Identical inputs therefore
// render to identical strings, also when factors are built in parallel.
package identify
