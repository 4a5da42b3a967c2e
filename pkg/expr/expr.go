package expr

import (
	"slices"
)

// Expr is a node of an estimand tree: a [Term], [Product] or [Sum].
type Expr interface {
	isExpr()
}

// Term is the conditional distribution P(Var | Given). Given is kept sorted
// and free of duplicates by [NewTerm].
type Term struct {
	Var   int
	Given []int
}

// Product multiplies its factors in order.
type Product struct {
	Factors []Expr
}

// Sum marginalizes Body over the variables in Over.
type Sum struct {
	Over []int
	Body Expr
}

func (Term) isExpr()    {}
func (Product) isExpr() {}
func (Sum) isExpr()     {}

// NewTerm returns P(v | given) with given sorted and deduplicated. Any
// occurrence of v itself in given is dropped.
func NewTerm(v int, given ...int) Term {
	g := normalizeSet(given)
	g = slices.DeleteFunc(g, func(u int) bool { return u == v })
	return Term{Var: v, Given: g}
}

// Mul returns the product of factors. Factors are kept as given, including
// nested products, so callers control the grouping that rendering shows.
func Mul(factors ...Expr) Product {
	return Product{Factors: slices.Clone(factors)}
}

// Marginalize returns the sum of body over the given variables, or body
// itself when over is empty.
func Marginalize(over []int, body Expr) Expr {
	o := normalizeSet(over)
	if len(o) == 0 {
		return body
	}
	return Sum{Over: o, Body: body}
}

// Terms returns every [Term] in e in rendering order.
func Terms(e Expr) []Term {
	var out []Term
	Walk(e, func(n Expr) bool {
		if t, ok := n.(Term); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Walk visits e depth-first in rendering order. Returning false from fn
// skips the children of the current node.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch n := e.(type) {
	case Product:
		for _, f := range n.Factors {
			Walk(f, fn)
		}
	case Sum:
		Walk(n.Body, fn)
	}
}

// Equal reports whether a and b are structurally identical. Conditioning
// and summation sets compare as sets; factor order is significant.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case Term:
		y, ok := b.(Term)
		return ok && x.Var == y.Var && slices.Equal(normalizeSet(x.Given), normalizeSet(y.Given))
	case Product:
		y, ok := b.(Product)
		if !ok || len(x.Factors) != len(y.Factors) {
			return false
		}
		for i := range x.Factors {
			if !Equal(x.Factors[i], y.Factors[i]) {
				return false
			}
		}
		return true
	case Sum:
		y, ok := b.(Sum)
		return ok && slices.Equal(normalizeSet(x.Over), normalizeSet(y.Over)) && Equal(x.Body, y.Body)
	case nil:
		return b == nil
	}
	return false
}

func normalizeSet(s []int) []int {
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}
