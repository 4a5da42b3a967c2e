package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/causalid/pkg/errors"
)

func TestNewTerm_NormalizesGiven(t *testing.T) {
	term := NewTerm(4, 3, 1, 4, 1, 0)
	assert.Equal(t, 4, term.Var)
	assert.Equal(t, []int{0, 1, 3}, term.Given)

	assert.Empty(t, NewTerm(0).Given)
	assert.Empty(t, NewTerm(2, 2).Given)
}

func TestMarginalize(t *testing.T) {
	body := NewTerm(1, 0)
	assert.Equal(t, Expr(body), Marginalize(nil, body), "empty sum should return the body")

	s, ok := Marginalize([]int{3, 0, 3}, body).(Sum)
	require.True(t, ok)
	assert.Equal(t, []int{0, 3}, s.Over)
}

func TestEqual(t *testing.T) {
	a := Mul(Term{Var: 2, Given: []int{1, 0}}, Sum{Over: []int{0}, Body: NewTerm(0)})
	b := Mul(NewTerm(2, 0, 1), Sum{Over: []int{0}, Body: NewTerm(0)})

	tests := []struct {
		name string
		x, y Expr
		want bool
	}{
		{"given order ignored", a, b, true},
		{"different var", NewTerm(1), NewTerm(2), false},
		{"different given", NewTerm(1, 0), NewTerm(1, 2), false},
		{"factor order matters", Mul(NewTerm(0), NewTerm(1)), Mul(NewTerm(1), NewTerm(0)), false},
		{"different length", Mul(NewTerm(0)), Mul(NewTerm(0), NewTerm(1)), false},
		{"sum over differs", Sum{Over: []int{0}, Body: NewTerm(1)}, Sum{Over: []int{1}, Body: NewTerm(1)}, false},
		{"kind differs", NewTerm(0), Mul(NewTerm(0)), false},
		{"both nil", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.x, tt.y))
		})
	}
}

func TestTermsAndWalk(t *testing.T) {
	e := Mul(
		Mul(NewTerm(3, 0, 1, 2), NewTerm(1, 0)),
		Sum{Over: []int{0}, Body: Mul(NewTerm(4), NewTerm(2, 0, 1), NewTerm(0))},
	)

	vars := []int{}
	for _, term := range Terms(e) {
		vars = append(vars, term.Var)
	}
	assert.Equal(t, []int{3, 1, 4, 2, 0}, vars)

	sums := 0
	Walk(e, func(n Expr) bool {
		if _, ok := n.(Sum); ok {
			sums++
			return false
		}
		return true
	})
	assert.Equal(t, 1, sums)
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		e    Expr
		want string
	}{
		{"unconditional", NewTerm(0), "P(v_0)"},
		{"conditional", NewTerm(4, 3, 0, 2, 1), "P(v_4|v_0,v_1,v_2,v_3)"},
		{"terms concatenate", Mul(NewTerm(1, 0), NewTerm(0)), "P(v_1|v_0)P(v_0)"},
		{"empty product", Mul(), "1"},
		{
			"trailing sum is unbracketed",
			Mul(Mul(NewTerm(1, 0)), Sum{Over: []int{0}, Body: Mul(NewTerm(2, 0, 1), NewTerm(0))}),
			`P(v_1|v_0) \sum_{v_0} P(v_2|v_0,v_1)P(v_0)`,
		},
		{
			"inner sum is bracketed",
			Mul(Sum{Over: []int{0}, Body: NewTerm(0)}, NewTerm(1, 0)),
			`\sum_{v_0} [P(v_0)] P(v_1|v_0)`,
		},
		{
			"sum over several",
			Sum{Over: []int{2, 1}, Body: NewTerm(2, 1)},
			`\sum_{v_1,v_2} P(v_2|v_1)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.e, nil))
		})
	}
}

func TestRender_SetsInAnyOrder(t *testing.T) {
	unsorted := Sum{Over: []int{2, 1}, Body: Term{Var: 3, Given: []int{2, 0}}}
	sorted := Sum{Over: []int{1, 2}, Body: Term{Var: 3, Given: []int{0, 2}}}
	require.True(t, Equal(unsorted, sorted))

	assert.Equal(t, `\sum_{v_1,v_2} P(v_3|v_0,v_2)`, Text(unsorted, nil))
	assert.Equal(t, Text(sorted, nil), Text(unsorted, nil))
	assert.Equal(t, LaTeX(sorted, nil), LaTeX(unsorted, nil))

	data, err := Marshal(unsorted)
	require.NoError(t, err)
	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, Text(unsorted, nil), Text(back, nil))
}

func TestLaTeX(t *testing.T) {
	e := Mul(Mul(NewTerm(1, 0)), Sum{Over: []int{0}, Body: Mul(NewTerm(2, 0, 1), NewTerm(0))})
	assert.Equal(t, `P(v_{1} \mid v_{0}) \sum_{v_{0}} P(v_{2} \mid v_{0}, v_{1}) P(v_{0})`, LaTeX(e, nil))

	inner := Mul(Sum{Over: []int{0}, Body: NewTerm(0)}, NewTerm(1))
	assert.Equal(t, `\sum_{v_{0}} \left[P(v_{0})\right] P(v_{1})`, LaTeX(inner, nil))
}

func TestLabelNamer(t *testing.T) {
	name := LabelNamer([]string{"X", "", "Y"})
	e := Mul(NewTerm(2, 0, 1), NewTerm(5))
	assert.Equal(t, "P(Y|X,v_1)P(v_5)", Text(e, name))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "tex": FormatLaTeX, "latex": FormatLaTeX, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("mathml")
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat))
}

func TestRender(t *testing.T) {
	e := Mul(NewTerm(1, 0), NewTerm(0))

	got, err := Render(e, FormatText, nil)
	require.NoError(t, err)
	assert.Equal(t, "P(v_1|v_0)P(v_0)", got)

	got, err = Render(e, FormatJSON, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"product","factors":[{"kind":"term","var":1,"given":[0]},{"kind":"term","var":0}]}`, got)

	_, err = Render(e, Format(42), nil)
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	e := Mul(
		Mul(NewTerm(3, 0, 1, 2), NewTerm(1, 0)),
		Sum{Over: []int{0}, Body: Mul(NewTerm(4, 0, 1, 2, 3), NewTerm(2, 0, 1), NewTerm(0))},
	)

	data, err := Marshal(e)
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, Equal(e, back), "round trip changed the tree: %s", Text(back, nil))
	assert.Equal(t, Text(e, nil), Text(back, nil))
}

func TestUnmarshal_Errors(t *testing.T) {
	for _, in := range []string{
		`not json`,
		`{"kind":"term"}`,
		`{"kind":"sum","over":[0]}`,
		`{"kind":"division"}`,
		`{"kind":"product","factors":[{"kind":"bogus"}]}`,
	} {
		_, err := Unmarshal([]byte(in))
		assert.Error(t, err, in)
	}
}
