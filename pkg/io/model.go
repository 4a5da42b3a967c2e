package io

import (
	"fmt"

	errs "github.com/matzehuels/causalid/pkg/errors"
	"github.com/matzehuels/causalid/pkg/smcm"
)

// File is the decoded content of a model file. Exactly one of Matrix or
// Nodes is set.
type File struct {
	Labels     []string       `json:"labels,omitempty" toml:"labels,omitempty" yaml:"labels,omitempty"`
	Matrix     [][]int        `json:"matrix,omitempty" toml:"matrix,omitempty" yaml:"matrix,omitempty"`
	Nodes      []Node         `json:"nodes,omitempty" toml:"nodes,omitempty" yaml:"nodes,omitempty"`
	Edges      []Edge         `json:"edges,omitempty" toml:"edges,omitempty" yaml:"edges,omitempty"`
	Bidirected []Bidirected   `json:"bidirected,omitempty" toml:"bidirected,omitempty" yaml:"bidirected,omitempty"`
	Meta       map[string]any `json:"meta,omitempty" toml:"meta,omitempty" yaml:"meta,omitempty"`
}

// Node is a labelled variable.
type Node struct {
	ID string `json:"id" toml:"id" yaml:"id"`
}

// Edge is a directed edge From → To, optionally confounded.
type Edge struct {
	From       string `json:"from" toml:"from" yaml:"from"`
	To         string `json:"to" toml:"to" yaml:"to"`
	Confounded bool   `json:"confounded,omitempty" toml:"confounded,omitempty" yaml:"confounded,omitempty"`
}

// Bidirected marks A and B as sharing an unobserved confounder.
type Bidirected struct {
	A string `json:"a" toml:"a" yaml:"a"`
	B string `json:"b" toml:"b" yaml:"b"`
}

// NewMatrixFile returns the matrix form of g. labels may be nil.
func NewMatrixFile(g *smcm.Graph, labels []string) *File {
	return &File{Labels: labels, Matrix: g.Matrix()}
}

// NewLabelledFile returns the labelled form of g. Missing labels default to
// v0..vN-1.
func NewLabelledFile(g *smcm.Graph, labels []string) *File {
	n := g.Len()
	labels = defaultLabels(labels, n)

	f := &File{Nodes: make([]Node, n)}
	for i := range n {
		f.Nodes[i] = Node{ID: labels[i]}
	}
	for i := range n {
		for j := range n {
			switch g.Code(i, j) {
			case smcm.CodeEdge:
				f.Edges = append(f.Edges, Edge{From: labels[i], To: labels[j]})
			case smcm.CodeConfoundedEdge:
				f.Edges = append(f.Edges, Edge{From: labels[i], To: labels[j], Confounded: true})
			case smcm.CodeBidirected:
				if i < j {
					f.Bidirected = append(f.Bidirected, Bidirected{A: labels[i], B: labels[j]})
				}
			}
		}
	}
	return f
}

// Graph validates the file and returns the graph it describes together with
// one label per node.
//
// Graph returns an INVALID_INPUT error if the file mixes or omits both forms,
// has the wrong number of labels, or references unknown nodes, and passes on
// INVALID_SHAPE and INVALID_GRAPH errors from [smcm.New].
func (f *File) Graph() (*smcm.Graph, []string, error) {
	hasMatrix := f.Matrix != nil
	hasNodes := len(f.Nodes) > 0
	switch {
	case hasMatrix && hasNodes:
		return nil, nil, errs.New(errs.ErrCodeInvalidInput, "model file has both a matrix and nodes")
	case !hasMatrix && !hasNodes:
		return nil, nil, errs.New(errs.ErrCodeInvalidInput, "model file has neither a matrix nor nodes")
	}

	var labels []string
	if hasMatrix {
		if len(f.Labels) > 0 && len(f.Labels) != len(f.Matrix) {
			return nil, nil, errs.New(errs.ErrCodeInvalidInput,
				"got %d labels for a %d-node matrix", len(f.Labels), len(f.Matrix))
		}
		labels = defaultLabels(f.Labels, len(f.Matrix))
	} else {
		labels = make([]string, len(f.Nodes))
		for i, n := range f.Nodes {
			labels[i] = n.ID
		}
	}
	if err := errs.ValidateLabels(labels); err != nil {
		return nil, nil, err
	}

	matrix := f.Matrix
	if !hasMatrix {
		var err error
		if matrix, err = f.labelledMatrix(labels); err != nil {
			return nil, nil, err
		}
	}

	g, err := smcm.New(matrix)
	if err != nil {
		return nil, nil, err
	}
	return g, labels, nil
}

// labelledMatrix builds the edge-code matrix of the labelled form.
func (f *File) labelledMatrix(labels []string) ([][]int, error) {
	n := len(labels)
	index := make(map[string]int, n)
	for i, l := range labels {
		index[l] = i
	}
	lookup := func(id string) (int, error) {
		i, ok := index[id]
		if !ok {
			return 0, errs.New(errs.ErrCodeInvalidInput, "unknown node %q", id)
		}
		return i, nil
	}

	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
	}

	for _, e := range f.Edges {
		from, err := lookup(e.From)
		if err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
		to, err := lookup(e.To)
		if err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
		if from == to {
			return nil, errs.New(errs.ErrCodeInvalidGraph, "edge %s->%s is a self-loop", e.From, e.To)
		}
		if smcm.Code(m[to][from]).IsDirected() {
			return nil, errs.Wrap(errs.ErrCodeInvalidGraph, smcm.ErrGraphHasCycle,
				"edges %s->%s and %s->%s", e.From, e.To, e.To, e.From)
		}
		code := smcm.CodeEdge
		if e.Confounded || smcm.Code(m[from][to]).IsConfounded() {
			code = smcm.CodeConfoundedEdge
		}
		m[from][to], m[to][from] = int(code), int(code.Mirror())
	}

	for _, b := range f.Bidirected {
		a, err := lookup(b.A)
		if err != nil {
			return nil, fmt.Errorf("bidirected %s<->%s: %w", b.A, b.B, err)
		}
		c, err := lookup(b.B)
		if err != nil {
			return nil, fmt.Errorf("bidirected %s<->%s: %w", b.A, b.B, err)
		}
		if a == c {
			return nil, errs.New(errs.ErrCodeInvalidGraph, "bidirected %s<->%s is a self-loop", b.A, b.B)
		}
		switch smcm.Code(m[a][c]) {
		case smcm.CodeNone:
			m[a][c], m[c][a] = int(smcm.CodeBidirected), int(smcm.CodeBidirected)
		case smcm.CodeEdge:
			m[a][c], m[c][a] = int(smcm.CodeConfoundedEdge), int(smcm.CodeConfoundedEdgeMirror)
		case smcm.CodeEdgeMirror:
			m[a][c], m[c][a] = int(smcm.CodeConfoundedEdgeMirror), int(smcm.CodeConfoundedEdge)
		}
	}
	return m, nil
}

func defaultLabels(labels []string, n int) []string {
	if len(labels) == n {
		return labels
	}
	out := make([]string, n)
	for i := range n {
		out[i] = fmt.Sprintf("v%d", i)
	}
	return out
}
