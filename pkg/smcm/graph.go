package smcm

import (
	errs "github.com/matzehuels/causalid/pkg/errors"
)

// Graph is an immutable edge-code matrix over n nodes.
//
// The zero value is an empty graph. Use [New] to build a validated graph
// from a matrix, and [Normalize] to obtain a topologically ordered copy.
type Graph struct {
	n     int
	codes []Code // row-major, n*n
}

// New validates matrix and returns the graph it encodes.
//
// New returns an INVALID_SHAPE error if the matrix is not square, and an
// INVALID_GRAPH error if it contains unknown codes, a non-zero diagonal,
// inconsistent mirror entries, or a directed cycle. The matrix is copied;
// later changes to it do not affect the graph.
func New(matrix [][]int) (*Graph, error) {
	n := len(matrix)
	for i, row := range matrix {
		if len(row) != n {
			return nil, errs.New(errs.ErrCodeInvalidShape,
				"matrix has %d rows but row %d has %d columns", n, i, len(row))
		}
	}

	g := &Graph{n: n, codes: make([]Code, n*n)}
	for i, row := range matrix {
		for j, c := range row {
			g.codes[i*n+j] = Code(c)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// MustNew is like [New] but panics on error. It is intended for tests and
// package-level fixtures.
func MustNew(matrix [][]int) *Graph {
	g, err := New(matrix)
	if err != nil {
		panic(err)
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return g.n }

// Code returns the entry at row i, column j.
func (g *Graph) Code(i, j int) Code { return g.codes[i*g.n+j] }

// HasDirectedEdge reports whether there is an arrow i → j.
func (g *Graph) HasDirectedEdge(i, j int) bool { return g.Code(i, j).IsDirected() }

// HasConfounding reports whether i and j share an unobserved confounder.
func (g *Graph) HasConfounding(i, j int) bool { return g.Code(i, j).IsConfounded() }

// Parents returns the nodes with an arrow into i, in ascending order.
// Parents are located through negative entries in row i.
func (g *Graph) Parents(i int) []int {
	var out []int
	for j := 0; j < g.n; j++ {
		if g.Code(i, j).IsIncoming() {
			out = append(out, j)
		}
	}
	return out
}

// Children returns the nodes i has an arrow into, in ascending order.
func (g *Graph) Children(i int) []int {
	var out []int
	for j := 0; j < g.n; j++ {
		if g.Code(i, j).IsDirected() {
			out = append(out, j)
		}
	}
	return out
}

// Spouses returns the nodes confounded with i, in ascending order.
func (g *Graph) Spouses(i int) []int {
	var out []int
	for j := 0; j < g.n; j++ {
		if g.Code(i, j).IsConfounded() {
			out = append(out, j)
		}
	}
	return out
}

// All returns the set of every node in the graph.
func (g *Graph) All() NodeSet { return Range(0, g.n) }

// Matrix returns a copy of the edge-code matrix.
func (g *Graph) Matrix() [][]int {
	out := make([][]int, g.n)
	for i := range out {
		out[i] = make([]int, g.n)
		for j := range out[i] {
			out[i][j] = int(g.Code(i, j))
		}
	}
	return out
}

// EdgeCount returns the number of arrows and the number of confounded pairs.
func (g *Graph) EdgeCount() (directed, confounded int) {
	for i := 0; i < g.n; i++ {
		for j := i + 1; j < g.n; j++ {
			c := g.Code(i, j)
			if c.IsDirected() || c.IsIncoming() {
				directed++
			}
			if c.IsConfounded() {
				confounded++
			}
		}
	}
	return directed, confounded
}

// IsTopological reports whether every arrow points from a lower to a higher
// index, i.e. no directed code appears below the diagonal.
func (g *Graph) IsTopological() bool {
	for i := 0; i < g.n; i++ {
		for j := 0; j < i; j++ {
			if g.Code(i, j).IsDirected() {
				return false
			}
		}
	}
	return true
}

// Permute returns a new graph whose node k is node order[k] of g.
// order must be a permutation of 0..n-1.
func (g *Graph) Permute(order []int) *Graph {
	out := &Graph{n: g.n, codes: make([]Code, len(g.codes))}
	for i, oi := range order {
		for j, oj := range order {
			out.codes[i*g.n+j] = g.Code(oi, oj)
		}
	}
	return out
}
