package identify

import (
	"context"
	"slices"
	"strconv"
	"strings"

	errs "github.com/matzehuels/causalid/pkg/errors"
	"github.com/matzehuels/causalid/pkg/expr"
	"github.com/matzehuels/causalid/pkg/observability"
	"github.com/matzehuels/causalid/pkg/smcm"
)

// Model is a semi-Markovian causal model prepared for identification.
//
// A Model is immutable after New and safe for concurrent use. Node indices
// accepted and returned by its methods refer to the normalized
// (topologically ordered) graph. Names are always those of the input:
// labels, or "v_<row>" for the input row when the model has no labels.
// [Model.Resolve] maps names back to normalized indices.
type Model struct {
	g          *smcm.Graph
	order      []int // order[new] = old
	inverse    []int // inverse[old] = new
	labels     []string
	index      map[string]int
	components []smcm.NodeSet
	p          any
	opts       Options
}

// New normalizes g, decomposes it into c-components and returns the model.
//
// p is an opaque handle to the observational distribution. It is stored
// and returned by [Model.P] but never read.
func New(g *smcm.Graph, p any, opts ...Option) (*Model, error) {
	if g == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "graph is nil")
	}
	o := applyOptions(opts)

	ctx := context.Background()
	norm, order := smcm.Normalize(g)
	observability.Identify().OnNormalize(ctx, order)

	m := &Model{
		g:       norm,
		order:   order,
		inverse: smcm.InvertOrder(order),
		p:       p,
		opts:    o,
	}
	if err := m.setLabels(o.Labels); err != nil {
		return nil, err
	}

	m.components = norm.Components(norm.All())
	observability.Identify().OnDecompose(ctx, norm.Len(), len(m.components))
	return m, nil
}

// FromMatrix builds a graph from an edge-code matrix and wraps it in a
// model. Shape and encoding errors from [smcm.New] are returned unchanged.
func FromMatrix(matrix [][]int, p any, opts ...Option) (*Model, error) {
	g, err := smcm.New(matrix)
	if err != nil {
		return nil, err
	}
	return New(g, p, opts...)
}

func (m *Model) setLabels(labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	n := m.g.Len()
	if len(labels) != n {
		return errs.New(errs.ErrCodeInvalidInput, "got %d labels for %d nodes", len(labels), n)
	}
	if err := errs.ValidateLabels(labels); err != nil {
		return err
	}
	m.labels = make([]string, n)
	m.index = make(map[string]int, n)
	for i, old := range m.order {
		m.labels[i] = labels[old]
		m.index[labels[old]] = i
	}
	return nil
}

// Graph returns the normalized graph.
func (m *Model) Graph() *smcm.Graph { return m.g }

// Len returns the number of nodes.
func (m *Model) Len() int { return m.g.Len() }

// P returns the distribution handle passed to New.
func (m *Model) P() any { return m.p }

// Options returns the options the model was built with.
func (m *Model) Options() Options { return m.opts }

// Order returns the normalization permutation: Order()[i] is the index in
// the input graph of normalized node i.
func (m *Model) Order() []int { return slices.Clone(m.order) }

// Components returns the c-component partition of the whole graph, ordered
// by smallest member.
func (m *Model) Components() []smcm.NodeSet {
	out := make([]smcm.NodeSet, len(m.components))
	for i, c := range m.components {
		out[i] = c.Clone()
	}
	return out
}

// componentOf returns the top-level c-component containing v.
func (m *Model) componentOf(v int) smcm.NodeSet {
	for _, c := range m.components {
		if c.Has(v) {
			return c
		}
	}
	return smcm.NodeSet{}
}

// Labels returns the node labels in normalized order, or nil if the model
// was built without labels.
func (m *Model) Labels() []string { return slices.Clone(m.labels) }

// Label returns the name of node i: its label, or "v_<row>" for its input
// row without labels.
func (m *Model) Label(i int) string {
	if i >= 0 && i < len(m.labels) {
		return m.labels[i]
	}
	if i >= 0 && i < len(m.order) {
		return expr.DefaultNamer(m.order[i])
	}
	return expr.DefaultNamer(i)
}

// Index returns the normalized index of the node with the given label.
func (m *Model) Index(label string) (int, bool) {
	i, ok := m.index[label]
	return i, ok
}

// Resolve maps a user-supplied node reference to a normalized index. It
// accepts a label, or a row of the input matrix written as "v_3" or "3".
// Labels win over row numbers.
func (m *Model) Resolve(name string) (int, error) {
	name = strings.TrimSpace(name)
	if i, ok := m.Index(name); ok {
		return i, nil
	}
	digits := strings.TrimPrefix(name, "v_")
	if row, err := strconv.Atoi(digits); err == nil {
		if row >= 0 && row < m.g.Len() {
			return m.inverse[row], nil
		}
		return 0, errs.New(errs.ErrCodeInvalidNode, "node %d out of range [0, %d)", row, m.g.Len())
	}
	return 0, errs.New(errs.ErrCodeInvalidNode, "unknown node %q", name)
}

// Namer returns the namer for rendering expressions of this model in
// format f. Labelled models render their labels. Unlabelled models render
// input rows, which is the renderer's default naming when the input was
// already in topological order; Namer then returns nil.
func (m *Model) Namer(f expr.Format) expr.Namer {
	if m.labels != nil {
		return expr.LabelNamer(m.labels)
	}
	if slices.IsSorted(m.order) {
		return nil
	}
	base := expr.DefaultNamer
	if f == expr.FormatLaTeX {
		base = expr.LaTeXNamer
	}
	return func(v int) string {
		if v >= 0 && v < len(m.order) {
			return base(m.order[v])
		}
		return base(v)
	}
}

// Names returns the labels of the nodes in s, in ascending index order.
func (m *Model) Names(s smcm.NodeSet) []string {
	var out []string
	for v := range s.All() {
		out = append(out, m.Label(v))
	}
	return out
}
