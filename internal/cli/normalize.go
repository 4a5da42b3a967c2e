package cli

import (
	"context"
	"fmt"
	"io"
	"maps"

	"github.com/spf13/cobra"

	modelio "github.com/matzehuels/causalid/pkg/io"
)

// normalizeCommand creates the normalize command.
func (c *CLI) normalizeCommand() *cobra.Command {
	var (
		output   string
		format   string
		labelled bool
	)

	cmd := &cobra.Command{
		Use:   "normalize [model]",
		Short: "Rewrite a model in topological order",
		Long: `Rewrite a model in topological order.

Nodes are reordered so every directed edge points from a lower to a higher
index. The permutation is recorded under meta.order: entry i is the index in
the input file of output node i.

The output format follows the extension of --output, or --format when
writing to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNormalize(cmd.Context(), cmd.OutOrStdout(), args[0], output, format, labelled)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "stdout format: json, toml, yaml (default: input format)")
	cmd.Flags().BoolVar(&labelled, "labelled", false, "write labelled nodes and edges instead of a matrix")

	return cmd
}

func (c *CLI) runNormalize(ctx context.Context, w io.Writer, input, output, format string, labelled bool) error {
	runner, m, err := c.loadModel(ctx, input, modelFlags{noCache: true})
	if err != nil {
		return err
	}
	defer runner.Close()

	var out *modelio.File
	if labelled {
		out = modelio.NewLabelledFile(m.Graph(), m.Labels())
	} else {
		out = modelio.NewMatrixFile(m.Graph(), m.Labels())
	}
	out.Meta = maps.Clone(m.File.Meta)
	if out.Meta == nil {
		out.Meta = make(map[string]any, 1)
	}
	out.Meta["order"] = m.Order()

	if output != "" {
		if err := modelio.ExportModel(out, output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printSuccess("Normalized %d nodes", m.Len())
		printFile(output)
		return nil
	}

	f, err := stdoutFormat(input, format)
	if err != nil {
		return err
	}
	return modelio.WriteModel(w, out, f)
}

// stdoutFormat picks the format for output written to stdout.
func stdoutFormat(input, format string) (modelio.Format, error) {
	if format != "" {
		return modelio.ParseFormat(format)
	}
	return modelio.FormatFromPath(input)
}
