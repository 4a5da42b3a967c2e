// Package expr represents identified causal estimands as expression trees.
//
// # Overview
//
// An estimand is built from three node kinds:
//
//   - [Term]: a conditional distribution P(v | given)
//   - [Product]: factors multiplied together
//   - [Sum]: marginalization of a body over one or more variables
//
// Trees are plain values. Two trees can be compared with [Equal], which
// treats conditioning and summation sets as unordered. Rendering is a
// separate step so the same tree can be printed as text, LaTeX, or JSON.
//
// # Rendering
//
//	e := expr.Mul(expr.NewTerm(1, 0), expr.NewTerm(0))
//	fmt.Println(expr.Text(e, nil))   // P(v_1|v_0)P(v_0)
//	fmt.Println(expr.LaTeX(e, nil))  // P(v_{1} \mid v_{0}) P(v_{0})
//
// A [Namer] maps variable indices to display names, for example to print
// the original variable labels of a model.
//
// Rendering is deterministic: conditioning sets are kept sorted, and factor
// order is preserved exactly as built.
package expr
