package expr

import (
	"encoding/json"
	"fmt"
)

const (
	kindTerm    = "term"
	kindProduct = "product"
	kindSum     = "sum"
)

// node is the wire form of an Expr. Only the fields of the given kind are set.
type node struct {
	Kind    string            `json:"kind"`
	Var     *int              `json:"var,omitempty"`
	Given   []int             `json:"given,omitempty"`
	Over    []int             `json:"over,omitempty"`
	Body    json.RawMessage   `json:"body,omitempty"`
	Factors []json.RawMessage `json:"factors,omitempty"`
}

// Marshal encodes e as JSON:
//
//	{"kind": "product", "factors": [
//	  {"kind": "term", "var": 1, "given": [0]},
//	  {"kind": "sum", "over": [0], "body": {"kind": "term", "var": 0}}
//	]}
func Marshal(e Expr) ([]byte, error) {
	n, err := toNode(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

// Unmarshal decodes JSON produced by [Marshal].
func Unmarshal(data []byte) (Expr, error) {
	var n node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return fromNode(n)
}

func toNode(e Expr) (node, error) {
	switch x := e.(type) {
	case Term:
		v := x.Var
		return node{Kind: kindTerm, Var: &v, Given: x.Given}, nil
	case Product:
		n := node{Kind: kindProduct, Factors: make([]json.RawMessage, len(x.Factors))}
		for i, f := range x.Factors {
			data, err := Marshal(f)
			if err != nil {
				return node{}, err
			}
			n.Factors[i] = data
		}
		return n, nil
	case Sum:
		body, err := Marshal(x.Body)
		if err != nil {
			return node{}, err
		}
		return node{Kind: kindSum, Over: x.Over, Body: body}, nil
	}
	return node{}, fmt.Errorf("encode expression: unsupported node %T", e)
}

func fromNode(n node) (Expr, error) {
	switch n.Kind {
	case kindTerm:
		if n.Var == nil {
			return nil, fmt.Errorf("decode expression: term without var")
		}
		return NewTerm(*n.Var, n.Given...), nil
	case kindProduct:
		factors := make([]Expr, len(n.Factors))
		for i, raw := range n.Factors {
			f, err := Unmarshal(raw)
			if err != nil {
				return nil, err
			}
			factors[i] = f
		}
		return Product{Factors: factors}, nil
	case kindSum:
		if len(n.Body) == 0 {
			return nil, fmt.Errorf("decode expression: sum without body")
		}
		body, err := Unmarshal(n.Body)
		if err != nil {
			return nil, err
		}
		return Sum{Over: normalizeSet(n.Over), Body: body}, nil
	}
	return nil, fmt.Errorf("decode expression: unknown kind %q", n.Kind)
}
