package smcm

import (
	"encoding/json"
	"iter"
	"math/bits"
	"strconv"
	"strings"
)

// NodeSet is a set of node indices backed by a bitset.
//
// The zero value is an empty set ready to use. Values share their backing
// storage when copied; use [NodeSet.Clone] before mutating a set obtained
// from somewhere else.
type NodeSet struct {
	words []uint64
}

// NewNodeSet returns a set containing the given nodes.
func NewNodeSet(nodes ...int) NodeSet {
	var s NodeSet
	for _, v := range nodes {
		s.Add(v)
	}
	return s
}

// Range returns the set {lo, lo+1, ..., hi-1}. It is empty when hi <= lo.
func Range(lo, hi int) NodeSet {
	var s NodeSet
	for v := lo; v < hi; v++ {
		s.Add(v)
	}
	return s
}

// Add inserts v. Negative indices are ignored.
func (s *NodeSet) Add(v int) {
	if v < 0 {
		return
	}
	w := v / 64
	for len(s.words) <= w {
		s.words = append(s.words, 0)
	}
	s.words[w] |= 1 << (uint(v) % 64)
}

// Remove deletes v if present.
func (s *NodeSet) Remove(v int) {
	if v < 0 || v/64 >= len(s.words) {
		return
	}
	s.words[v/64] &^= 1 << (uint(v) % 64)
}

// Has reports whether v is in the set.
func (s NodeSet) Has(v int) bool {
	if v < 0 || v/64 >= len(s.words) {
		return false
	}
	return s.words[v/64]&(1<<(uint(v)%64)) != 0
}

// Len returns the number of members.
func (s NodeSet) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether the set has no members.
func (s NodeSet) Empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Min returns the smallest member, or -1 for an empty set.
func (s NodeSet) Min() int {
	for i, w := range s.words {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// All iterates over the members in ascending order.
func (s NodeSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, w := range s.words {
			for w != 0 {
				b := bits.TrailingZeros64(w)
				if !yield(i*64 + b) {
					return
				}
				w &^= 1 << uint(b)
			}
		}
	}
}

// Slice returns the members in ascending order.
func (s NodeSet) Slice() []int {
	out := make([]int, 0, s.Len())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

// Clone returns an independent copy of s.
func (s NodeSet) Clone() NodeSet {
	if s.words == nil {
		return NodeSet{}
	}
	return NodeSet{words: append([]uint64(nil), s.words...)}
}

// Union returns a new set with the members of s and o.
func (s NodeSet) Union(o NodeSet) NodeSet {
	long, short := s.words, o.words
	if len(short) > len(long) {
		long, short = short, long
	}
	out := append([]uint64(nil), long...)
	for i, w := range short {
		out[i] |= w
	}
	return NodeSet{words: out}
}

// Intersect returns a new set with the members common to s and o.
func (s NodeSet) Intersect(o NodeSet) NodeSet {
	n := min(len(s.words), len(o.words))
	out := make([]uint64, n)
	for i := range n {
		out[i] = s.words[i] & o.words[i]
	}
	return NodeSet{words: out}
}

// Difference returns a new set with the members of s that are not in o.
func (s NodeSet) Difference(o NodeSet) NodeSet {
	out := append([]uint64(nil), s.words...)
	for i := range min(len(out), len(o.words)) {
		out[i] &^= o.words[i]
	}
	return NodeSet{words: out}
}

// Equal reports whether s and o have the same members.
func (s NodeSet) Equal(o NodeSet) bool {
	n := max(len(s.words), len(o.words))
	for i := range n {
		var a, b uint64
		if i < len(s.words) {
			a = s.words[i]
		}
		if i < len(o.words) {
			b = o.words[i]
		}
		if a != b {
			return false
		}
	}
	return true
}

// String formats the set as "{0, 2, 4}".
func (s NodeSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for v := range s.All() {
		if !first {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
		first = false
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the set as an ascending array of indices.
func (s NodeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes an array of indices.
func (s *NodeSet) UnmarshalJSON(data []byte) error {
	var nodes []int
	if err := json.Unmarshal(data, &nodes); err != nil {
		return err
	}
	*s = NewNodeSet(nodes...)
	return nil
}
