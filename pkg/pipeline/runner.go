package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/causalid/pkg/cache"
	"github.com/matzehuels/causalid/pkg/identify"
	modelio "github.com/matzehuels/causalid/pkg/io"
	"github.com/matzehuels/causalid/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different models.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads the model file at path and prepares it for identification.
func (r *Runner) Load(ctx context.Context, path string, opts Options) (*Model, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	f, err := modelio.ImportModel(path)
	if err != nil {
		return nil, err
	}
	m, err := r.Prepare(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Prepare validates a decoded model file and builds its model.
func (r *Runner) Prepare(f *modelio.File, opts Options) (*Model, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	g, labels, err := f.Graph()
	if err != nil {
		return nil, err
	}
	im, err := identify.New(g, nil, opts.identifyOptions(labels)...)
	if err != nil {
		return nil, err
	}

	directed, confounded := g.EdgeCount()
	opts.Logger.Debug("loaded model",
		"nodes", g.Len(),
		"edges", directed,
		"confounded", confounded,
		"components", len(im.Components()),
		"order", im.Order())

	return &Model{
		Model:       im,
		File:        f,
		Input:       g,
		InputLabels: labels,
		Hash:        cache.ModelHash(g, labels),
		opts:        opts,
	}, nil
}

// IdentifyWithCacheInfo answers q with caching and reports whether the
// result came from the cache. A cached result is returned as stored, with
// the ID and Duration of the run that computed it.
func (r *Runner) IdentifyWithCacheInfo(ctx context.Context, m *Model, q identify.Query) (*identify.Result, bool, error) {
	cacheKey := r.Keyer.IdentifyKey(m.Hash, cache.IdentifyKeyOpts{
		X:           q.X,
		Targets:     q.Targets,
		Marginalize: q.Marginalize,
		NonAncestor: m.opts.NonAncestor,
		Hedge:       m.opts.Hedge,
	})

	if !m.opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached identify.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil
			}
			// Undecodable entries fall through to recompute.
		}
	}

	res, err := m.Identify(ctx, q)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("identified query",
		"x", m.Label(q.X),
		"targets", len(q.Targets),
		"pass_through", res.PassThrough,
		"duration", res.Duration)

	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLIdentify)
	}
	return res, false, nil
}

// Identify is a convenience wrapper that calls IdentifyWithCacheInfo and discards the cache hit info.
func (r *Runner) Identify(ctx context.Context, m *Model, q identify.Query) (*identify.Result, error) {
	res, _, err := r.IdentifyWithCacheInfo(ctx, m, q)
	return res, err
}

// DiagramOptions configures [Runner.DiagramWithCacheInfo].
type DiagramOptions struct {
	Format string

	// Highlight is the normalized index of a node to emphasize, or -1.
	Highlight int

	// Scale is the PNG resolution factor. Zero means 2.
	Scale float64
}

// DiagramWithCacheInfo renders the normalized causal diagram of m with
// caching and reports whether the bytes came from the cache.
func (r *Runner) DiagramWithCacheInfo(ctx context.Context, m *Model, opts DiagramOptions) ([]byte, bool, error) {
	if err := ValidateDiagramFormat(opts.Format); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.DiagramKey(m.Hash, cache.DiagramKeyOpts{
		Format:    opts.Format,
		Highlight: opts.Highlight,
		Scale:     opts.Scale,
	})
	if !m.opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			return data, true, nil
		}
	}

	nopts := nodelink.DefaultOptions()
	nopts.Labels = m.Labels()
	nopts.Highlight = opts.Highlight
	if opts.Scale > 0 {
		nopts.Scale = opts.Scale
	}

	start := time.Now()
	dot := nodelink.ToDOT(m.Graph(), nopts)
	data, err := nodelink.Render(ctx, dot, opts.Format, nopts)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered diagram",
		"format", opts.Format,
		"bytes", len(data),
		"duration", time.Since(start))

	_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDiagram)
	return data, false, nil
}

// Diagram is a convenience wrapper that calls DiagramWithCacheInfo and discards the cache hit info.
func (r *Runner) Diagram(ctx context.Context, m *Model, opts DiagramOptions) ([]byte, error) {
	data, _, err := r.DiagramWithCacheInfo(ctx, m, opts)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
