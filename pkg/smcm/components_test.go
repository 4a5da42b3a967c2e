package smcm

import (
	"slices"
	"testing"
)

func TestComponents_BowChain(t *testing.T) {
	g := MustNew(bowChain)
	got := g.Components(g.All())
	want := []NodeSet{NewNodeSet(0, 2, 4), NewNodeSet(1, 3)}

	if len(got) != len(want) {
		t.Fatalf("Components() = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestComponents_Restricted(t *testing.T) {
	g := MustNew(bowChain)

	tests := []struct {
		name   string
		within NodeSet
		want   []NodeSet
	}{
		{"prefix 0..2", Range(0, 3), []NodeSet{NewNodeSet(0, 2), NewNodeSet(1)}},
		{"prefix 0..3", Range(0, 4), []NodeSet{NewNodeSet(0, 2), NewNodeSet(1, 3)}},
		{"prefix 0", Range(0, 1), []NodeSet{NewNodeSet(0)}},
		{"gap breaks chain", NewNodeSet(0, 4), []NodeSet{NewNodeSet(0), NewNodeSet(4)}},
		{"empty", NodeSet{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Components(tt.within)
			if !slices.EqualFunc(got, tt.want, NodeSet.Equal) {
				t.Errorf("Components(%v) = %v, want %v", tt.within, got, tt.want)
			}
		})
	}
}

func TestComponents_NoConfounders(t *testing.T) {
	g := MustNew([][]int{
		{0, 1, 1},
		{-1, 0, 1},
		{-1, -1, 0},
	})
	comps := g.Components(g.All())
	if len(comps) != 3 {
		t.Fatalf("Components() = %v, want 3 singletons", comps)
	}
	for _, c := range comps {
		if c.Len() != 1 {
			t.Errorf("component %v is not a singleton", c)
		}
	}
}

func TestComponentOf(t *testing.T) {
	g := MustNew(bowChain)
	if got := g.ComponentOf(4, g.All()); !got.Equal(NewNodeSet(0, 2, 4)) {
		t.Errorf("ComponentOf(4) = %v", got)
	}
	if got := g.ComponentOf(2, Range(0, 3)); !got.Equal(NewNodeSet(0, 2)) {
		t.Errorf("ComponentOf(2, 0..2) = %v", got)
	}
	if got := g.ComponentOf(4, Range(0, 3)); !got.Empty() {
		t.Errorf("ComponentOf outside within = %v, want empty", got)
	}
}

func TestAncestors(t *testing.T) {
	// 0 → 2 ← 1, 2 → 3, 4 isolated
	g := MustNew([][]int{
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{-1, -1, 0, 1, 0},
		{0, 0, -1, 0, 0},
		{0, 0, 0, 0, 0},
	})

	tests := []struct {
		name    string
		targets []int
		want    []int
	}{
		{"all", nil, []int{0, 1, 2, 3, 4}},
		{"sink", []int{3}, []int{0, 1, 2, 3}},
		{"collider", []int{2}, []int{0, 1, 2}},
		{"root", []int{0}, []int{0}},
		{"isolated and root", []int{4, 1}, []int{1, 4}},
		{"out of range ignored", []int{9, 0}, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Ancestors(tt.targets...).Slice()
			if !slices.Equal(got, tt.want) {
				t.Errorf("Ancestors(%v) = %v, want %v", tt.targets, got, tt.want)
			}
			if !g.IsAncestral(g.Ancestors(tt.targets...)) {
				t.Errorf("Ancestors(%v) is not ancestral", tt.targets)
			}
		})
	}

	if g.IsAncestral(NewNodeSet(2)) {
		t.Error("{2} should not be ancestral")
	}
}

func TestAncestors_ThroughConfoundedEdge(t *testing.T) {
	// 0 ⇉ 1 → 2
	g := MustNew([][]int{
		{0, 2, 0},
		{-2, 0, 1},
		{0, -1, 0},
	})
	if got := g.Ancestors(2).Slice(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("Ancestors(2) = %v, want [0 1 2]", got)
	}
}
