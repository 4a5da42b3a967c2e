package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/causalid/pkg/errors"
	"github.com/matzehuels/causalid/pkg/expr"
	"github.com/matzehuels/causalid/pkg/smcm"
)

// factorCommand creates the factor command.
func (c *CLI) factorCommand() *cobra.Command {
	var (
		flags     modelFlags
		format    string
		component int
		node      string
	)

	cmd := &cobra.Command{
		Use:   "factor [model]",
		Short: "Print the factor Q[C] of one c-component",
		Long: `Print the factor Q[C] of one c-component.

Select the component by position (--component, as listed by 'components') or
by any of its members (--node).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFactor(cmd.Context(), cmd.OutOrStdout(), args[0], flags, format, component, node)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, latex, json")
	cmd.Flags().IntVarP(&component, "component", "c", 0, "component position")
	cmd.Flags().StringVarP(&node, "node", "n", "", "select the component containing this node")

	return cmd
}

func (c *CLI) runFactor(ctx context.Context, w io.Writer, path string, flags modelFlags, format string, component int, node string) error {
	f, err := expr.ParseFormat(format)
	if err != nil {
		return err
	}

	runner, m, err := c.loadModel(ctx, path, flags)
	if err != nil {
		return err
	}
	defer runner.Close()

	var comp smcm.NodeSet
	if node != "" {
		v, err := m.Resolve(node)
		if err != nil {
			return err
		}
		comp = m.Graph().ComponentOf(v, m.Graph().All())
	} else {
		comps := m.Components()
		if component < 0 || component >= len(comps) {
			return errs.New(errs.ErrCodeInvalidInput, "component %d out of range [0, %d)", component, len(comps))
		}
		comp = comps[component]
	}

	out, err := expr.Render(m.IdentifyFactor(comp), f, m.Namer(f))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}
