package smcm

import "strconv"

// Code is a single entry of the edge-code matrix.
type Code int

const (
	// CodeNone marks the absence of any relationship.
	CodeNone Code = 0
	// CodeEdge marks a directed edge from the row node to the column node.
	CodeEdge Code = 1
	// CodeEdgeMirror is the mirror entry of [CodeEdge] (column → row).
	CodeEdgeMirror Code = -1
	// CodeConfoundedEdge marks a directed edge from row to column that is
	// also confounded.
	CodeConfoundedEdge Code = 2
	// CodeConfoundedEdgeMirror is the mirror entry of [CodeConfoundedEdge].
	CodeConfoundedEdgeMirror Code = -2
	// CodeBidirected marks a confounding relationship without a direct arrow.
	CodeBidirected Code = 3
)

// Valid reports whether c is one of the six defined codes.
func (c Code) Valid() bool { return c >= -2 && c <= 3 }

// IsDirected reports whether c encodes an arrow from the row node to the
// column node.
func (c Code) IsDirected() bool { return c == CodeEdge || c == CodeConfoundedEdge }

// IsIncoming reports whether c encodes an arrow from the column node into
// the row node.
func (c Code) IsIncoming() bool { return c < 0 }

// IsConfounded reports whether the pair shares an unobserved confounder.
func (c Code) IsConfounded() bool { return c > 1 || c < -1 }

// Mirror returns the code expected at the transposed position.
func (c Code) Mirror() Code {
	switch c {
	case CodeEdge, CodeEdgeMirror, CodeConfoundedEdge, CodeConfoundedEdgeMirror:
		return -c
	default:
		return c
	}
}

// String returns the arrow notation for c, e.g. "→" or "↔".
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "·"
	case CodeEdge:
		return "→"
	case CodeEdgeMirror:
		return "←"
	case CodeConfoundedEdge:
		return "⇉"
	case CodeConfoundedEdgeMirror:
		return "⇇"
	case CodeBidirected:
		return "↔"
	default:
		return "?" + strconv.Itoa(int(c))
	}
}
