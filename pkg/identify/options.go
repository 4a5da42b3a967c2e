package identify

import (
	"runtime"
	"strings"

	errs "github.com/matzehuels/causalid/pkg/errors"
)

// NonAncestorPolicy selects what Identify does when the intervened node is
// not an ancestor of the targets.
type NonAncestorPolicy int

const (
	// NonAncestorFail rejects the query with a NOT_ANCESTOR error.
	NonAncestorFail NonAncestorPolicy = iota

	// NonAncestorPassThrough returns the observational factorization of
	// An(s), since do(x) has no effect on it.
	NonAncestorPassThrough
)

func (p NonAncestorPolicy) String() string {
	switch p {
	case NonAncestorFail:
		return "fail"
	case NonAncestorPassThrough:
		return "pass"
	}
	return "unknown"
}

// ParseNonAncestorPolicy parses "fail" or "pass".
func ParseNonAncestorPolicy(s string) (NonAncestorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return NonAncestorFail, nil
	case "pass", "pass-through", "passthrough":
		return NonAncestorPassThrough, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidInput, "unknown non-ancestor policy %q (want fail or pass)", s)
}

// HedgeCriterion selects how non-identifiability is detected.
type HedgeCriterion int

const (
	// HedgeDirect fails when x has a child in An(s) reached by a
	// directed-and-confounded edge.
	HedgeDirect HedgeCriterion = iota

	// HedgeComponent also fails when any child of x in An(s) lies in the
	// c-component of x, even without a direct confounding edge.
	HedgeComponent
)

func (h HedgeCriterion) String() string {
	switch h {
	case HedgeDirect:
		return "direct"
	case HedgeComponent:
		return "component"
	}
	return "unknown"
}

// ParseHedgeCriterion parses "direct" or "component".
func ParseHedgeCriterion(s string) (HedgeCriterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "direct":
		return HedgeDirect, nil
	case "component":
		return HedgeComponent, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidInput, "unknown hedge criterion %q (want direct or component)", s)
}

// Options configures a Model.
type Options struct {
	NonAncestor NonAncestorPolicy
	Hedge       HedgeCriterion

	// Parallel builds component factors concurrently. The result is
	// identical to sequential construction.
	Parallel   bool
	MaxWorkers int // 0 means GOMAXPROCS

	// Labels names the nodes in the input graph's original order.
	Labels []string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		NonAncestor: NonAncestorFail,
		Hedge:       HedgeDirect,
	}
}

// Option is a functional option for configuring a Model.
type Option func(*Options)

// WithNonAncestor sets the non-ancestor policy.
func WithNonAncestor(p NonAncestorPolicy) Option {
	return func(o *Options) { o.NonAncestor = p }
}

// WithHedge sets the hedge criterion.
func WithHedge(h HedgeCriterion) Option {
	return func(o *Options) { o.Hedge = h }
}

// WithParallel enables concurrent factor construction with at most workers
// goroutines. If workers <= 0, GOMAXPROCS is used.
func WithParallel(workers int) Option {
	return func(o *Options) {
		o.Parallel = true
		o.MaxWorkers = workers
	}
}

// WithLabels names the nodes, indexed as in the graph passed to New.
func WithLabels(labels ...string) Option {
	return func(o *Options) { o.Labels = labels }
}

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func applyOptions(opts []Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func (o Options) workers() int {
	if o.MaxWorkers > 0 {
		return o.MaxWorkers
	}
	return runtime.GOMAXPROCS(0)
}
