package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causalid/pkg/expr"
	"github.com/matzehuels/causalid/pkg/identify"
	"github.com/matzehuels/causalid/pkg/pipeline"
)

// doOpts holds the flags of the do command.
type doOpts struct {
	x           string
	targets     []string
	marginalize bool
	format      string
	interactive bool
}

// doCommand creates the do command for identifying interventions.
func (c *CLI) doCommand() *cobra.Command {
	var (
		flags modelFlags
		opts  doOpts
	)

	cmd := &cobra.Command{
		Use:   "do [model]",
		Short: "Identify P(s | do(x)) and print the estimand",
		Long: `Identify P(s | do(x)) and print the estimand.

Nodes are referenced by label, or by their row in the model file written as
v_3 or 3.
Without --target every node is a target. With --marginalize the estimand sums
out every node that is neither a target nor x.

Results are cached locally for faster subsequent runs. Queries that fail the
hedge criterion are reported as NON_IDENTIFIABLE and never cached.`,
		Example: `  causalid do model.yaml --x Smoking
  causalid do model.yaml --x X --target Y --marginalize -f latex
  causalid do model.yaml --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDo(cmd.Context(), cmd.OutOrStdout(), args[0], flags, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.x, "x", "x", "", "intervened node")
	cmd.Flags().StringSliceVarP(&opts.targets, "target", "t", nil, "target node(s) (repeatable or comma-separated)")
	cmd.Flags().BoolVarP(&opts.marginalize, "marginalize", "m", false, "sum out non-target nodes")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, latex, json")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the intervened node interactively")

	return cmd
}

func (c *CLI) runDo(ctx context.Context, w io.Writer, path string, flags modelFlags, opts doOpts) error {
	f, err := expr.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	runner, m, err := c.loadModel(ctx, path, flags)
	if err != nil {
		return err
	}
	defer runner.Close()

	q, ok, err := buildQuery(m, opts)
	if err != nil {
		return err
	}
	if !ok {
		printInfo("No node selected")
		return nil
	}

	prog := newProgress(modelLogger(loggerFromContext(ctx), path))
	res, cacheHit, err := runner.IdentifyWithCacheInfo(ctx, m, q)
	if err != nil {
		return err
	}
	prog.done("identified", "x", m.Label(q.X), "cached", cacheHit)

	if err := writeResult(w, m, res, f); err != nil {
		return err
	}

	if res.PassThrough {
		printWarning("%s is not an ancestor of the targets; do(%s) leaves them unchanged", m.Label(q.X), m.Label(q.X))
	}
	printSuccess("%s", StyleHighlight.Render(fmt.Sprintf("P(%s | do(%s))", queryTargets(m, res), m.Label(q.X))))
	printStats(m.Len(), len(res.Components), cacheHit)
	return nil
}

// buildQuery resolves the node flags. It returns false if the interactive
// picker was closed without a choice.
func buildQuery(m *pipeline.Model, opts doOpts) (identify.Query, bool, error) {
	q := identify.Query{Marginalize: opts.marginalize}

	switch {
	case opts.x != "":
		x, err := m.Resolve(opts.x)
		if err != nil {
			return q, false, err
		}
		q.X = x
	case opts.interactive:
		x, ok, err := pickIntervention(m.Model)
		if err != nil || !ok {
			return q, false, err
		}
		q.X = x
	default:
		return q, false, errNoIntervention
	}

	targets, err := resolveNodes(m, opts.targets)
	if err != nil {
		return q, false, err
	}
	q.Targets = targets
	return q, true, nil
}

// writeResult prints the estimand, or the whole result for JSON.
func writeResult(w io.Writer, m *pipeline.Model, res *identify.Result, f expr.Format) error {
	if f == expr.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	out, err := res.Render(f, m.Namer(f))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// queryTargets names the targets of res, or V \ X when none were given.
func queryTargets(m *pipeline.Model, res *identify.Result) string {
	if len(res.Query.Targets) == 0 {
		return "V \\ " + m.Label(res.Query.X)
	}
	names := make([]string, len(res.Query.Targets))
	for i, t := range res.Query.Targets {
		names[i] = m.Label(t)
	}
	return strings.Join(names, ",")
}
