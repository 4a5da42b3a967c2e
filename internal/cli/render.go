package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causalid/pkg/pipeline"
	"github.com/matzehuels/causalid/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string  // output file path (default: <input>.<format>)
	format string  // output format: "svg", "pdf", "png", "dot"
	x      string  // node to highlight as the intervention
	scale  float64 // PNG resolution factor
}

// renderCommand creates the render command for drawing causal diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var flags modelFlags
	opts := renderOpts{format: nodelink.FormatSVG, scale: 2}

	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Render the causal diagram of a model",
		Long: `Render the causal diagram of a model.

Directed edges are drawn solid and confounded pairs as dashed bidirected arcs.
Nodes are filled by c-component. With --x the intervened node and its
outgoing edges are highlighted.

SVG output uses an embedded Graphviz. PDF and PNG additionally require
rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateDiagramFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], flags, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, pdf, png, dot")
	cmd.Flags().StringVarP(&opts.x, "x", "x", "", "highlight this node as the intervention")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution factor")

	return cmd
}

// runRender loads the model, renders its diagram and writes it to disk.
func (c *CLI) runRender(ctx context.Context, input string, flags modelFlags, opts renderOpts) error {
	runner, m, err := c.loadModel(ctx, input, flags)
	if err != nil {
		return err
	}
	defer runner.Close()

	highlight := -1
	if opts.x != "" {
		if highlight, err = m.Resolve(opts.x); err != nil {
			return err
		}
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.format))
	spinner.Start()

	data, cacheHit, err := runner.DiagramWithCacheInfo(ctx, m, pipeline.DiagramOptions{
		Format:    opts.format,
		Highlight: highlight,
		Scale:     opts.scale,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", opts.format, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = basePath(input) + "." + opts.format
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Diagram rendered")
	printFile(outputPath)
	printStats(m.Len(), len(m.Components()), cacheHit)
	if highlight < 0 {
		printNewline()
		printNextStep("Identify", fmt.Sprintf("%s do %s --x %s", appName, input, m.Label(0)))
	}
	return nil
}
