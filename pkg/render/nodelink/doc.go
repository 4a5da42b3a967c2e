// Package nodelink renders causal diagrams of semi-Markovian models.
//
// # Overview
//
// Directed edges are drawn as solid arrows and unobserved confounders as
// dashed bidirected arcs, the usual convention for acyclic directed mixed
// graphs. Nodes are filled by c-component so the factorization used for
// identification is visible at a glance.
//
// # Usage
//
// Convert a graph to DOT, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Labels: labels, Highlight: x})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [Render] dispatches on a format name ("dot", "svg", "pdf", "png") and
// reports every render through the observability render hooks.
//
// # Options
//
//   - Labels: node names; defaults to v_0..v_n-1
//   - Highlight: the intervened node, drawn with a bold outline (-1 for none)
//   - Components: fill nodes by c-component
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
