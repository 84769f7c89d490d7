// Package family implements the finite design-space algebra: holes with
// bounded option sets, cartesian-product design spaces over those holes,
// splitting, restriction, and CEGIS-style assignment exclusion.
package family

import (
	"fmt"
	"math/bits"
	"strings"
)

// OptionSet is a compact, immutable bitset of option indices in [0, width).
// It is the finite-domain representation backing every Hole: option
// indices never exceed a few dozen in practice, so a handful of uint64
// words is always enough.
//
// Operations return new OptionSets rather than mutating in place, the
// same copy-on-write discipline minikanren.BitSetDomain uses for
// lock-free structural sharing across search branches.
type OptionSet struct {
	width int // number of option slots, i.e. the hole's original option count
	words []uint64 // bit i set means option i is present
}

// FullOptionSet returns the set {0,..., width-1}.
func FullOptionSet(width int) OptionSet {
	if width <= 0 {
 return OptionSet{}
	}
	words := make([]uint64, (width+63)/64)
	for i := 0; i < width; i++ {
 words[i/64] |= 1 << uint(i%64)
	}
	return OptionSet{width: width, words: words}
}

// NewOptionSet builds an OptionSet over the given width containing exactly
// the supplied option indices. Indices outside [0, width) are ignored.
func NewOptionSet(width int, options []int) OptionSet {
	if width <= 0 {
 return OptionSet{}
	}
	words := make([]uint64, (width+63)/64)
	for _, o := range options {
 if o >= 0 && o < width {
 words[o/64] |= 1 << uint(o%64)
 }
	}
	return OptionSet{width: width, words: words}
}

// Width returns the original option-slot count this set is defined over.
func (s OptionSet) Width() int { return s.width }

// Count returns the number of options present in the set.
func (s OptionSet) Count() int {
	n := 0
	for _, w := range s.words {
 n += bits.OnesCount64(w)
	}
	return n
}

// Contains returns true if option is present in the set.
func (s OptionSet) Contains(option int) bool {
	if option < 0 || option >= s.width {
 return false
	}
	return s.words[option/64]>>uint(option%64)&1 == 1
}

// IsSingleton returns true if exactly one option is present.
func (s OptionSet) IsSingleton() bool { return s.Count() == 1 }

// SingletonValue returns the single present option. Behavior is
// undefined if the set is not a singleton.
func (s OptionSet) SingletonValue() int {
	for wi, w := range s.words {
 if w != 0 {
 return wi*64 + bits.TrailingZeros64(w)
 }
	}
	return -1
}

// Options returns the present option indices in ascending order.
func (s OptionSet) Options() []int {
	out := make([]int, 0, s.Count())
	s.Each(func(o int) { out = append(out, o) })
	return out
}

// Each calls f for every present option index in ascending order.
func (s OptionSet) Each(f func(option int)) {
	for wi, w := range s.words {
 for w != 0 {
 lowest := w & -w
 off := bits.TrailingZeros64(w)
 f(wi*64 + off)
 w &^= lowest
 }
	}
}

// Intersect returns the options present in both sets.
func (s OptionSet) Intersect(other OptionSet) OptionSet {
	out := OptionSet{width: s.width, words: make([]uint64, len(s.words))}
	for i := range out.words {
 if i < len(other.words) {
 out.words[i] = s.words[i] & other.words[i]
 }
	}
	return out
}

// Union returns the options present in either set.
func (s OptionSet) Union(other OptionSet) OptionSet {
	n := len(s.words)
	if len(other.words) > n {
 n = len(other.words)
	}
	out := OptionSet{width: s.width, words: make([]uint64, n)}
	for i := 0; i < n; i++ {
 var a, b uint64
 if i < len(s.words) {
 a = s.words[i]
 }
 if i < len(other.words) {
 b = other.words[i]
 }
 out.words[i] = a | b
	}
	return out
}

// Without returns the options present in s but not in other.
func (s OptionSet) Without(other OptionSet) OptionSet {
	out := OptionSet{width: s.width, words: make([]uint64, len(s.words))}
	for i := range out.words {
 if i < len(other.words) {
 out.words[i] = s.words[i] &^ other.words[i]
 } else {
 out.words[i] = s.words[i]
 }
	}
	return out
}

// Equal reports whether two sets contain exactly the same options.
func (s OptionSet) Equal(other OptionSet) bool {
	n := len(s.words)
	if len(other.words) > n {
 n = len(other.words)
	}
	for i := 0; i < n; i++ {
 var a, b uint64
 if i < len(s.words) {
 a = s.words[i]
 }
 if i < len(other.words) {
 b = other.words[i]
 }
 if a != b {
 return false
 }
	}
	return true
}

// Empty reports whether the set contains no options.
func (s OptionSet) Empty() bool {
	for _, w := range s.words {
 if w != 0 {
 return false
 }
	}
	return true
}

// String renders the set as "{0,2,3}".
func (s OptionSet) String() string {
	parts := make([]string, 0, s.Count())
	s.Each(func(o int) { parts = append(parts, fmt.Sprintf("%d", o)) })
	return "{" + strings.Join(parts, ",") + "}"
}
