package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/causalid/pkg/errors"
	"github.com/matzehuels/causalid/pkg/expr"
	"github.com/matzehuels/causalid/pkg/observability"
	"github.com/matzehuels/causalid/pkg/render"
	"github.com/matzehuels/causalid/pkg/smcm"
)

// Output formats accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// Options configures causal diagram rendering.
type Options struct {
	// Labels names the nodes. Missing entries fall back to v_i.
	Labels []string

	// Highlight is the intervened node, or -1 for none.
	Highlight int

	// Components fills nodes by c-component.
	Components bool

	// Scale is the PNG resolution factor. Zero means 2.
	Scale float64
}

// DefaultOptions returns options with component colouring and no highlight.
func DefaultOptions() Options {
	return Options{Highlight: -1, Components: true, Scale: 2}
}

// componentPalette holds pastel fills cycled across c-components.
var componentPalette = []string{
	"#cfe8fc", "#fde2c8", "#d6f5d6", "#f3d1f4", "#fff3b0",
	"#d9d9f7", "#fcd5d5", "#c8f0ec",
}

// ToDOT converts a causal graph to Graphviz DOT. Directed edges are solid;
// each confounded pair gets one dashed bidirected arc that does not
// constrain ranking.
func ToDOT(g *smcm.Graph, opts Options) string {
	name := expr.LabelNamer(opts.Labels)
	n := g.Len()

	fill := make([]string, n)
	for i := range fill {
		fill[i] = "white"
	}
	if opts.Components {
		for ci, c := range g.Components(g.All()) {
			for v := range c.All() {
				fill[v] = componentPalette[ci%len(componentPalette)]
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=20, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for v := range n {
		attrs := []string{
			fmt.Sprintf("label=%q", name(v)),
			fmt.Sprintf("fillcolor=%q", fill[v]),
		}
		if v == opts.Highlight {
			attrs = append(attrs, "penwidth=3", "color=\"#c0392b\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name(v), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := range n {
		for j := range n {
			if g.HasDirectedEdge(i, j) {
				attrs := ""
				if i == opts.Highlight {
					attrs = " [color=\"#c0392b\"]"
				}
				fmt.Fprintf(&buf, "  %q -> %q%s;\n", name(i), name(j), attrs)
			}
		}
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			if g.HasConfounding(i, j) {
				fmt.Fprintf(&buf, "  %q -> %q [dir=both, style=dashed, constraint=false, color=\"gray40\"];\n",
					name(i), name(j))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Render produces the diagram in the given format and reports it through
// the render hooks.
func Render(ctx context.Context, dot string, format string, opts Options) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	var (
		out []byte
		err error
	)
	switch format {
	case FormatDOT:
		out = []byte(dot)
	case FormatSVG:
		out, err = RenderSVG(ctx, dot)
	case FormatPDF:
		out, err = RenderPDF(ctx, dot)
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = 2
		}
		out, err = RenderPNG(ctx, dot, scale)
	default:
		err = errs.New(errs.ErrCodeInvalidFormat, "unsupported diagram format %q (want dot, svg, pdf or png)", format)
	}

	hooks.OnRenderComplete(ctx, format, len(out), time.Since(start), err)
	return out, err
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// sized in pixels so browsers and rsvg-convert agree on the canvas.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
