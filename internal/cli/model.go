package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/causalid/pkg/errors"
	"github.com/matzehuels/causalid/pkg/pipeline"
)

// modelFlags are the flags shared by every command that loads a model.
type modelFlags struct {
	noCache     bool
	refresh     bool
	nonAncestor string
	hedge       string
	parallel    bool
	workers     int
}

func (f *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().StringVar(&f.nonAncestor, "non-ancestor", "fail", "when x is not an ancestor of the targets: fail, pass")
	cmd.Flags().StringVar(&f.hedge, "hedge", "direct", "hedge criterion: direct, component")
	cmd.Flags().BoolVar(&f.parallel, "parallel", false, "build component factors concurrently")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "maximum concurrent factor builds (0 = GOMAXPROCS)")
}

func (f *modelFlags) options() pipeline.Options {
	return pipeline.Options{
		NonAncestor: f.nonAncestor,
		Hedge:       f.hedge,
		Parallel:    f.parallel,
		Workers:     f.workers,
		Refresh:     f.refresh,
	}
}

// loadModel creates a runner and loads the model at path. The caller must
// close the runner.
func (c *CLI) loadModel(ctx context.Context, path string, flags modelFlags) (*pipeline.Runner, *pipeline.Model, error) {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize runner: %w", err)
	}

	logger := modelLogger(loggerFromContext(ctx), path)
	prog := newProgress(logger)
	m, err := runner.Load(ctx, path, flags.options())
	if err != nil {
		runner.Close()
		return nil, nil, err
	}
	prog.done("loaded", "nodes", m.Len())
	logger.Debug("normalized", "order", m.Order(), "components", componentSizes(m.Components()))

	return runner, m, nil
}

// resolveNodes maps node references to normalized indices.
func resolveNodes(m *pipeline.Model, refs []string) ([]int, error) {
	out := make([]int, 0, len(refs))
	for _, ref := range refs {
		for _, part := range strings.Split(ref, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			i, err := m.Resolve(part)
			if err != nil {
				return nil, err
			}
			out = append(out, i)
		}
	}
	return out, nil
}

// basePath strips the extension from path.
func basePath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// errNoIntervention is returned when do is run without --x outside
// interactive mode.
var errNoIntervention = errs.New(errs.ErrCodeInvalidInput, "no intervention given (use --x or --interactive)")
