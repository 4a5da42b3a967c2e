package identify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/causalid/pkg/expr"
	"github.com/matzehuels/causalid/pkg/smcm"
)

// Result is the outcome of an identifiable query.
type Result struct {
	// ID names the computation that produced the result. A result served
	// from a cache keeps the ID of the run that computed it.
	ID    uuid.UUID
	Query Query
	Expr  expr.Expr

	// Ancestors is An(s) for the query's targets.
	Ancestors smcm.NodeSet

	// Components are the c-components whose factors make up Expr: the
	// whole-graph partition, or the partition of An(s) for a pass-through.
	Components []smcm.NodeSet

	// PassThrough is set when X is not an ancestor of the targets and Expr
	// is the observational factorization of An(s).
	PassThrough bool

	// Duration is the time the identifying computation took, not the time
	// to fetch a cached copy.
	Duration time.Duration
}

// Intervened returns the intervened node.
func (r *Result) Intervened() int { return r.Query.X }

// Render formats the estimand. A nil name uses the format's default namer.
func (r *Result) Render(f expr.Format, name expr.Namer) (string, error) {
	return expr.Render(r.Expr, f, name)
}

type resultJSON struct {
	ID          uuid.UUID       `json:"id"`
	Query       Query           `json:"query"`
	Expr        json.RawMessage `json:"expr"`
	Ancestors   smcm.NodeSet    `json:"ancestors"`
	Components  []smcm.NodeSet  `json:"components"`
	PassThrough bool            `json:"pass_through,omitempty"`
	DurationNS  int64           `json:"duration_ns"`
}

// MarshalJSON encodes the result with its estimand in the expr JSON form.
func (r *Result) MarshalJSON() ([]byte, error) {
	e, err := expr.Marshal(r.Expr)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resultJSON{
		ID:          r.ID,
		Query:       r.Query,
		Expr:        e,
		Ancestors:   r.Ancestors,
		Components:  r.Components,
		PassThrough: r.PassThrough,
		DurationNS:  r.Duration.Nanoseconds(),
	})
}

// UnmarshalJSON decodes a result written by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e, err := expr.Unmarshal(raw.Expr)
	if err != nil {
		return err
	}
	*r = Result{
		ID:          raw.ID,
		Query:       raw.Query,
		Expr:        e,
		Ancestors:   raw.Ancestors,
		Components:  raw.Components,
		PassThrough: raw.PassThrough,
		Duration:    time.Duration(raw.DurationNS),
	}
	return nil
}
