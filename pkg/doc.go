// Package pkg provides the core libraries for causalid, an identifier of
// interventional distributions in semi-Markovian causal models.
//
// # Overview
//
// A semi-Markovian causal model is a DAG over observed variables whose
// unobserved confounders are drawn as bidirected arcs. causalid decides
// whether P(s | do(x)) can be computed from the observational distribution
// and, when it can, returns the estimand as sums and products of
// conditional probabilities.
//
// # Architecture
//
// The typical data flow:
//
//	Model file (JSON / TOML / YAML)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [smcm] package (edge codes, normalization, c-components)
//	         ↓
//	    [identify] package (Tian factors, do(x), hedge check)
//	         ↓
//	    [expr] package (text / LaTeX / JSON estimand)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/causalid/pkg/expr"
//	    "github.com/matzehuels/causalid/pkg/identify"
//	)
//
//	m, _ := identify.FromMatrix([][]int{
//	    {0, 1, 3},
//	    {-1, 0, 1},
//	    {3, -1, 0},
//	}, nil, identify.WithLabels("Smoking", "Tar", "Cancer"))
//
//	res, _ := m.Identify(context.Background(), identify.Query{X: 1})
//	fmt.Println(expr.Text(res.Expr, m.Namer(expr.FormatText)))
//	// P(Cancer|Smoking,Tar)P(Smoking) \sum_{Tar} P(Tar|Smoking)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [smcm] - The causal graph: edge-code matrix, node sets, topological
// normalization, ancestors and c-component decomposition.
//
// [identify] - Identification: component factors Q[C], the do operator,
// the hedge criterion and result metadata.
//
// [expr] - Estimand expression trees and their renderers.
//
// ## Input and Output
//
// [io] - Model files in matrix or labelled form.
//
// [render/nodelink] - Causal diagrams via Graphviz, with DOT, SVG, PDF and
// PNG output. [render] converts SVG to PDF and PNG.
//
// ## Infrastructure
//
// [pipeline] - Load → identify → render with caching, used by the CLI.
//
// [cache] - File and null caches with content-addressed keys.
//
// [observability] - Hook interfaces for identification, cache and render
// events; [observability/prom] implements them with Prometheus.
//
// [errors] - Error codes shared by every package.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/identify/...  # Specific package
//	go test -run Example        # Examples only
//
// [smcm]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/smcm
// [identify]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/identify
// [expr]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/expr
// [io]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/observability
// [observability/prom]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/observability/prom
// [errors]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/causalid/pkg/buildinfo
package pkg
