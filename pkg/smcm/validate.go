package smcm

import (
	"errors"

	errs "github.com/matzehuels/causalid/pkg/errors"
)

var (
	// ErrUnknownCode is wrapped by [Graph.Validate] when an entry is not one
	// of the six defined edge codes.
	ErrUnknownCode = errors.New("unknown edge code")

	// ErrNonZeroDiagonal is wrapped by [Graph.Validate] when a node is
	// related to itself.
	ErrNonZeroDiagonal = errors.New("diagonal entry must be zero")

	// ErrMirrorMismatch is wrapped by [Graph.Validate] when the entry at
	// [j][i] is not the mirror of the entry at [i][j].
	ErrMirrorMismatch = errors.New("inconsistent mirror entries")

	// ErrGraphHasCycle is wrapped by [Graph.Validate] when the directed part
	// of the graph contains a cycle. Cycles are detected using depth-first
	// search with white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Validate checks the encoding invariants and returns nil if they hold.
// It verifies, in order:
//
//  1. Every entry is a defined code and the diagonal is zero
//  2. Every off-diagonal pair holds mirrored codes
//  3. The directed part of the graph is acyclic
//
// Failures are reported as INVALID_GRAPH errors wrapping one of the sentinel
// errors above.
func (g *Graph) Validate() error {
	if err := g.validateEncoding(); err != nil {
		return err
	}
	return g.detectCycles()
}

func (g *Graph) validateEncoding() error {
	for i := 0; i < g.n; i++ {
		if c := g.Code(i, i); c != CodeNone {
			return errs.Wrap(errs.ErrCodeInvalidGraph, ErrNonZeroDiagonal, "entry [%d][%d] = %d", i, i, c)
		}
		for j := 0; j < g.n; j++ {
			c := g.Code(i, j)
			if !c.Valid() {
				return errs.Wrap(errs.ErrCodeInvalidGraph, ErrUnknownCode, "entry [%d][%d] = %d", i, j, c)
			}
			if j > i && g.Code(j, i) != c.Mirror() {
				return errs.Wrap(errs.ErrCodeInvalidGraph, ErrMirrorMismatch,
					"entry [%d][%d] = %d but [%d][%d] = %d", i, j, c, j, i, g.Code(j, i))
			}
		}
	}
	return nil
}

func (g *Graph) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, g.n)
	cycleAt := -1

	var dfs func(v int)
	dfs = func(v int) {
		color[v] = gray
		for _, child := range g.Children(v) {
			switch color[child] {
			case white:
				dfs(child)
				if cycleAt >= 0 {
					return
				}
			case gray:
				cycleAt = child
				return
			}
		}
		color[v] = black
	}

	for v := 0; v < g.n; v++ {
		if color[v] == white {
			dfs(v)
			if cycleAt >= 0 {
				return errs.Wrap(errs.ErrCodeInvalidGraph, ErrGraphHasCycle, "through node %d", cycleAt)
			}
		}
	}
	return nil
}
