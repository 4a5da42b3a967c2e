package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causalid/pkg/expr"
	"github.com/matzehuels/causalid/pkg/pipeline"
	"github.com/matzehuels/causalid/pkg/smcm"
)

// componentsCommand creates the components command.
func (c *CLI) componentsCommand() *cobra.Command {
	var (
		flags  modelFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "components [model]",
		Short: "List the c-components of a model and their factors",
		Long: `List the c-components of a model and their factors.

A c-component is a maximal set of nodes connected by bidirected (confounding)
edges. Each component's factor Q[C] is identifiable from the observational
distribution and is printed as a product of conditional probabilities.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runComponents(cmd.Context(), cmd.OutOrStdout(), args[0], flags, format)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, latex, json")

	return cmd
}

// componentJSON is one entry of the components command's JSON output.
type componentJSON struct {
	Nodes   []int           `json:"nodes"`
	Members []string        `json:"members"`
	Factor  json.RawMessage `json:"factor"`
}

func (c *CLI) runComponents(ctx context.Context, w io.Writer, path string, flags modelFlags, format string) error {
	f, err := expr.ParseFormat(format)
	if err != nil {
		return err
	}

	runner, m, err := c.loadModel(ctx, path, flags)
	if err != nil {
		return err
	}
	defer runner.Close()

	comps := m.Components()
	if f == expr.FormatJSON {
		return writeComponentsJSON(w, m, comps)
	}

	factors := make([]string, len(comps))
	for i, comp := range comps {
		if factors[i], err = expr.Render(m.IdentifyFactor(comp), f, m.Namer(f)); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, componentTable(m.Model, factors))
	printDetail("%d nodes · %d c-components", m.Len(), len(comps))
	return nil
}

func writeComponentsJSON(w io.Writer, m *pipeline.Model, comps []smcm.NodeSet) error {
	out := make([]componentJSON, len(comps))
	for i, comp := range comps {
		factor, err := expr.Marshal(m.IdentifyFactor(comp))
		if err != nil {
			return err
		}
		out[i] = componentJSON{
			Nodes:   comp.Slice(),
			Members: m.Names(comp),
			Factor:  factor,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
