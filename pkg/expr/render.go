package expr

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/matzehuels/causalid/pkg/errors"
)

// Format selects an output syntax for [Render].
type Format int

const (
	// FormatText renders compact plain text: P(v_4|v_0,v_1)P(v_0).
	FormatText Format = iota
	// FormatLaTeX renders LaTeX math: P(v_{4} \mid v_{0}, v_{1}) P(v_{0}).
	FormatLaTeX
	// FormatJSON renders the tree as JSON (see [Marshal]).
	FormatJSON
)

// String returns the flag name of f.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatLaTeX:
		return "latex"
	case FormatJSON:
		return "json"
	default:
		return "format(" + strconv.Itoa(int(f)) + ")"
	}
}

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "latex", "tex":
		return FormatLaTeX, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidFormat, "unknown expression format %q (want text, latex or json)", s)
}

// Namer maps a variable index to its display name.
type Namer func(v int) string

// DefaultNamer names variable v as "v_<v>".
func DefaultNamer(v int) string { return "v_" + strconv.Itoa(v) }

// LaTeXNamer names variable v as "v_{<v>}".
func LaTeXNamer(v int) string { return "v_{" + strconv.Itoa(v) + "}" }

// LabelNamer returns a Namer that looks up labels by index, falling back
// to [DefaultNamer] for indices without a label.
func LabelNamer(labels []string) Namer {
	return func(v int) string {
		if v >= 0 && v < len(labels) && labels[v] != "" {
			return labels[v]
		}
		return DefaultNamer(v)
	}
}

// Render formats e in the given format. A nil name uses the format's
// default namer.
func Render(e Expr, f Format, name Namer) (string, error) {
	switch f {
	case FormatText:
		return Text(e, name), nil
	case FormatLaTeX:
		return LaTeX(e, name), nil
	case FormatJSON:
		data, err := Marshal(e)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported format %v", f)
}

// Text renders e as plain text. Adjacent terms are concatenated, other
// factors are separated by a space, and a sum that is followed by further
// factors is bracketed.
func Text(e Expr, name Namer) string {
	if name == nil {
		name = DefaultNamer
	}
	var b strings.Builder
	p := printer{
		name:   name,
		term:   textTerm,
		sum:    func(over string) string { return `\sum_{` + over + `} ` },
		sep:    ",",
		open:   "[",
		close:  "]",
		joinTT: "",
		join:   " ",
	}
	p.write(&b, e, true)
	return b.String()
}

// LaTeX renders e as LaTeX math without surrounding delimiters.
func LaTeX(e Expr, name Namer) string {
	if name == nil {
		name = LaTeXNamer
	}
	var b strings.Builder
	p := printer{
		name:   name,
		term:   latexTerm,
		sum:    func(over string) string { return `\sum_{` + over + `} ` },
		sep:    ", ",
		open:   `\left[`,
		close:  `\right]`,
		joinTT: " ",
		join:   " ",
	}
	p.write(&b, e, true)
	return b.String()
}

// printer holds the syntax pieces that differ between text and LaTeX.
type printer struct {
	name        Namer
	term        func(v string, given []string) string
	sum         func(over string) string
	sep         string
	open, close string
	joinTT      string // between two adjacent terms
	join        string // between any other pair of factors
}

func (p printer) write(b *strings.Builder, e Expr, last bool) {
	switch n := e.(type) {
	case Term:
		set := normalizeSet(n.Given)
		given := make([]string, len(set))
		for i, g := range set {
			given[i] = p.name(g)
		}
		b.WriteString(p.term(p.name(n.Var), given))
	case Product:
		if len(n.Factors) == 0 {
			b.WriteString("1")
			return
		}
		for i, f := range n.Factors {
			if i > 0 {
				_, prevTerm := n.Factors[i-1].(Term)
				_, curTerm := f.(Term)
				if prevTerm && curTerm {
					b.WriteString(p.joinTT)
				} else {
					b.WriteString(p.join)
				}
			}
			p.write(b, f, last && i == len(n.Factors)-1)
		}
	case Sum:
		set := normalizeSet(n.Over)
		over := make([]string, len(set))
		for i, v := range set {
			over[i] = p.name(v)
		}
		b.WriteString(p.sum(strings.Join(over, p.sep)))
		if last {
			p.write(b, n.Body, true)
			return
		}
		b.WriteString(p.open)
		p.write(b, n.Body, true)
		b.WriteString(p.close)
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}

func textTerm(v string, given []string) string {
	if len(given) == 0 {
		return "P(" + v + ")"
	}
	return "P(" + v + "|" + strings.Join(given, ",") + ")"
}

func latexTerm(v string, given []string) string {
	if len(given) == 0 {
		return "P(" + v + ")"
	}
	return "P(" + v + ` \mid ` + strings.Join(given, ", ") + ")"
}
