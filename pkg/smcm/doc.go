// Package smcm provides the graph model for semi-Markovian causal models.
//
// # Overview
//
// A semi-Markovian causal model is a directed acyclic graph over observed
// variables in which some pairs of variables additionally share an
// unobserved confounder. This package encodes such a model as a square
// matrix of signed edge codes and provides the structural algorithms the
// identification procedure is built on:
//
//   - [New] validates the shape and encoding of a matrix
//   - [Normalize] reorders nodes so that every arrow points forward
//   - [Graph.Components] partitions nodes into c-components
//   - [Graph.Ancestors] computes ancestor sets
//
// # Edge Encoding
//
// The entry at row i, column j describes the relationship between i and j:
//
//	0   no relationship
//	1   i → j            (mirror entry [j][i] = -1)
//	3   i ↔ j            (confounded only, symmetric)
//	2   i → j and i ↔ j  (mirror entry [j][i] = -2)
//
// Parents of a node are found through negative entries in its row, children
// through positive directed entries, and confounded neighbours through any
// entry whose magnitude exceeds one.
//
// # Restrictions
//
// Algorithms that work on induced sub-graphs take a [NodeSet] instead of a
// copied sub-matrix. The graph itself is never mutated after [New]; a
// normalized graph is a new value.
//
// # Concurrency
//
// [Graph] and [NodeSet] values are safe for concurrent reads. NodeSet
// mutation through [NodeSet.Add] or [NodeSet.Remove] requires exclusive
// access to that set.
package smcm
