package identify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/causalid/pkg/errors"
	"github.com/matzehuels/causalid/pkg/expr"
	"github.com/matzehuels/causalid/pkg/observability"
	"github.com/matzehuels/causalid/pkg/smcm"
)

// Query describes P(Targets | do(X)).
type Query struct {
	X       int   `json:"x"`
	Targets []int `json:"targets,omitempty"`

	// Marginalize sums out every node that is neither a target nor X, so the
	// estimand is P(Targets | do(X)) rather than P(V \ X | do(X)). It has no
	// effect without targets.
	Marginalize bool `json:"marginalize,omitempty"`
}

// IdentifyIntervention returns the estimand of do(x) on targets. With no
// targets every node is a target. It is shorthand for [Model.Identify].
func (m *Model) IdentifyIntervention(ctx context.Context, x int, targets ...int) (expr.Expr, error) {
	res, err := m.Identify(ctx, Query{X: x, Targets: targets})
	if err != nil {
		return nil, err
	}
	return res.Expr, nil
}

// Identify decides whether q is identifiable and returns its estimand.
//
// Errors:
//   - INVALID_NODE if X or a target is out of range
//   - NOT_ANCESTOR if X is not an ancestor of the targets and the model uses
//     [NonAncestorFail]
//   - NON_IDENTIFIABLE (wrapping [errs.HedgeError]) if the hedge criterion
//     fires
//   - the context error if ctx is cancelled while factors are built
func (m *Model) Identify(ctx context.Context, q Query) (*Result, error) {
	hooks := observability.Identify()
	hooks.OnIdentifyStart(ctx, q.X, len(q.Targets))

	start := time.Now()
	res, err := m.identify(ctx, q)
	elapsed := time.Since(start)

	hooks.OnIdentifyComplete(ctx, q.X, elapsed, err)
	if err != nil {
		return nil, err
	}
	res.Duration = elapsed
	return res, nil
}

func (m *Model) identify(ctx context.Context, q Query) (*Result, error) {
	n := m.g.Len()
	if q.X < 0 || q.X >= n {
		return nil, errs.New(errs.ErrCodeInvalidNode, "intervened node %d out of range [0, %d)", q.X, n)
	}
	for _, t := range q.Targets {
		if t < 0 || t >= n {
			return nil, errs.New(errs.ErrCodeInvalidNode, "target node %d out of range [0, %d)", t, n)
		}
	}

	an := m.g.Ancestors(q.Targets...)
	res := &Result{
		ID:        uuid.New(),
		Query:     q,
		Ancestors: an,
	}

	if !an.Has(q.X) {
		if m.opts.NonAncestor != NonAncestorPassThrough {
			return nil, errs.New(errs.ErrCodeNotAncestor,
				"%s is not an ancestor of %v; do(%s) does not affect the targets",
				m.Label(q.X), m.Names(smcm.NewNodeSet(q.Targets...)), m.Label(q.X))
		}
		return m.passThrough(ctx, q, res)
	}

	if err := m.checkHedge(q.X, an); err != nil {
		return nil, err
	}

	res.Components = m.Components()
	factors, err := m.factors(ctx, res.Components, m.g.All())
	if err != nil {
		return nil, err
	}

	out := make([]expr.Expr, 0, len(factors))
	var summed expr.Expr
	for i, c := range res.Components {
		if c.Has(q.X) {
			summed = expr.Sum{Over: []int{q.X}, Body: factors[i]}
			continue
		}
		out = append(out, factors[i])
	}
	out = append(out, summed)

	res.Expr = m.marginalize(q, expr.Mul(out...), m.g.All())
	return res, nil
}

// passThrough factorizes the observational distribution of An(s), on which
// an intervention on a non-ancestor has no effect.
func (m *Model) passThrough(ctx context.Context, q Query, res *Result) (*Result, error) {
	res.PassThrough = true
	res.Components = m.g.Components(res.Ancestors)
	observability.Identify().OnDecompose(ctx, res.Ancestors.Len(), len(res.Components))

	factors, err := m.factors(ctx, res.Components, res.Ancestors)
	if err != nil {
		return nil, err
	}
	out := make([]expr.Expr, len(factors))
	for i, f := range factors {
		out[i] = f
	}
	res.Expr = m.marginalize(q, expr.Mul(out...), res.Ancestors)
	return res, nil
}

// marginalize sums e over scope \ (targets ∪ {x}) when q asks for it.
func (m *Model) marginalize(q Query, e expr.Expr, scope smcm.NodeSet) expr.Expr {
	if !q.Marginalize || len(q.Targets) == 0 {
		return e
	}
	over := scope.Difference(smcm.NewNodeSet(q.Targets...))
	over.Remove(q.X)
	return expr.Marginalize(over.Slice(), e)
}

// checkHedge reports a NON_IDENTIFIABLE error when x has a confounded child
// in an.
func (m *Model) checkHedge(x int, an smcm.NodeSet) error {
	for j := range an.All() {
		if m.g.Code(x, j) == smcm.CodeConfoundedEdge {
			return m.hedgeError(x, j)
		}
	}
	if m.opts.Hedge != HedgeComponent {
		return nil
	}
	cx := m.componentOf(x)
	for _, j := range m.g.Children(x) {
		if an.Has(j) && cx.Has(j) {
			return m.hedgeError(x, j)
		}
	}
	return nil
}

func (m *Model) hedgeError(x, child int) error {
	return errs.Wrap(errs.ErrCodeNonIdentifiable, &errs.HedgeError{Intervened: x, Child: child},
		"effect of do(%s) is not identifiable: %s is a confounded child of %s",
		m.Label(x), m.Label(child), m.Label(x))
}

// factors builds the factor of every component, in component order.
func (m *Model) factors(ctx context.Context, comps []smcm.NodeSet, universe smcm.NodeSet) ([]expr.Product, error) {
	out := make([]expr.Product, len(comps))
	if !m.opts.Parallel || len(comps) < 2 {
		for i, c := range comps {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = m.factor(ctx, c, universe)
		}
		return out, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.workers())
	for i, c := range comps {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out[i] = m.factor(gCtx, c, universe)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
