// Package pipeline runs the load → identify → render flow for causalid.
//
// The CLI drives every command through a [Runner] so model loading,
// identification and diagram rendering share one caching policy.
//
// # Stages
//
//  1. Load: read a model file, validate it and build an [identify.Model]
//  2. Identify: answer a [identify.Query], served from cache when possible
//  3. Diagram: render the causal diagram, served from cache when possible
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	m, err := runner.Load(ctx, "model.yaml", pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, hit, err := runner.IdentifyWithCacheInfo(ctx, m, identify.Query{X: 0})
//
// Failed queries are never cached: a NON_IDENTIFIABLE or NOT_ANCESTOR error
// is recomputed on every run.
package pipeline

import (
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/causalid/pkg/errors"
	"github.com/matzehuels/causalid/pkg/expr"
	"github.com/matzehuels/causalid/pkg/identify"
	modelio "github.com/matzehuels/causalid/pkg/io"
	"github.com/matzehuels/causalid/pkg/render/nodelink"
	"github.com/matzehuels/causalid/pkg/smcm"
)

// ValidDiagramFormats is the set of supported diagram formats.
var ValidDiagramFormats = map[string]bool{
	nodelink.FormatDOT: true,
	nodelink.FormatSVG: true,
	nodelink.FormatPDF: true,
	nodelink.FormatPNG: true,
}

// Options configures model loading.
type Options struct {
	NonAncestor string `json:"non_ancestor,omitempty"` // "fail" or "pass"
	Hedge       string `json:"hedge,omitempty"`        // "direct" or "component"
	Parallel    bool   `json:"parallel,omitempty"`
	Workers     int    `json:"workers,omitempty"`
	Refresh     bool   `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults fills empty policy names and rejects unknown ones.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	na, err := identify.ParseNonAncestorPolicy(o.NonAncestor)
	if err != nil {
		return err
	}
	h, err := identify.ParseHedgeCriterion(o.Hedge)
	if err != nil {
		return err
	}
	if o.Workers < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "workers must be >= 0, got %d", o.Workers)
	}
	o.NonAncestor = na.String()
	o.Hedge = h.String()
	o.validated = true
	return nil
}

// identifyOptions converts validated options to model options.
func (o *Options) identifyOptions(labels []string) []identify.Option {
	na, _ := identify.ParseNonAncestorPolicy(o.NonAncestor)
	h, _ := identify.ParseHedgeCriterion(o.Hedge)
	opts := []identify.Option{
		identify.WithNonAncestor(na),
		identify.WithHedge(h),
		identify.WithLabels(labels...),
	}
	if o.Parallel {
		opts = append(opts, identify.WithParallel(o.Workers))
	}
	return opts
}

// ValidateDiagramFormat checks that a diagram format is supported.
func ValidateDiagramFormat(format string) error {
	if !ValidDiagramFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid diagram format %q (want dot, svg, pdf or png)", format)
	}
	return nil
}

// ValidateExprFormat checks that an estimand format is supported.
func ValidateExprFormat(format string) error {
	_, err := expr.ParseFormat(format)
	return err
}

// Model is a loaded model file.
type Model struct {
	*identify.Model

	// Path is the file the model was read from.
	Path string

	// File is the decoded file.
	File *modelio.File

	// Input is the graph as written in the file, before normalization.
	Input *smcm.Graph

	// InputLabels are the labels in file order.
	InputLabels []string

	// Hash identifies the model content for cache keys.
	Hash string

	opts Options
}
