// Package render converts rendered diagrams between output formats.
//
// # Overview
//
// Causal diagrams are produced as SVG by the [nodelink] subpackage. The
// [ToPDF] and [ToPNG] functions convert any SVG to other formats using the
// external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// When rsvg-convert is not installed both functions return an UNSUPPORTED
// error; SVG and DOT output keep working.
//
// [nodelink]: github.com/matzehuels/causalid/pkg/render/nodelink
package render
