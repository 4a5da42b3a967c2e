package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/causalid/pkg/buildinfo"
	"github.com/matzehuels/causalid/pkg/cache"
	"github.com/matzehuels/causalid/pkg/observability/prom"
	"github.com/matzehuels/causalid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "causalid"
)

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose bool

	// metricsFile is the --metrics-file flag. When set, a Prometheus
	// registry is installed before the command runs and written afterwards.
	metricsFile string
	metrics     *prom.Registry
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "causalid identifies interventional distributions in semi-Markovian causal models",
		Long: `causalid decides whether the effect of an intervention do(x) is identifiable
from observational data in a causal model with hidden confounders, and prints
the estimand as a product of conditional probabilities.

Models are read from JSON, TOML or YAML files, either as an edge-code matrix
or as labelled nodes with directed and bidirected edges.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.Logger.SetLevel(levelFor(c.verbose))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.metricsFile != "" {
				c.metrics = prom.New()
				c.metrics.Install()
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.flushMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")

	// Register all subcommands
	root.AddCommand(c.componentsCommand())
	root.AddCommand(c.factorCommand())
	root.AddCommand(c.doCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// flushMetrics writes collected metrics if --metrics-file was given.
func (c *CLI) flushMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteTextfile(c.metricsFile); err != nil {
		return fmt.Errorf("write metrics %s: %w", c.metricsFile, err)
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsFile)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(cache.Instrument(cch), keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/causalid/).
func cacheDir() (string, error) {
	return cache.DefaultDir(appName)
}
