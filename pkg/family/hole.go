package family

import "fmt"

// Hole is a named program constant ranging over a finite, ordered set of
// options. Once constructed, a hole's option set only ever shrinks via
// Restrict; it never grows.
type Hole struct {
	name string
	labels []string // printable expressions, indexed by the *original* option index
	options OptionSet // the currently active subset of [0, len(labels))
}

// NewHole creates a hole with the full option set {0,..., len(labels)-1}.
func NewHole(name string, labels []string) Hole {
	return Hole{
 name: name,
 labels: labels,
 options: FullOptionSet(len(labels)),
	}
}

// Name returns the hole's program-constant name.
func (h Hole) Name() string { return h.name }

// Size returns the number of options currently active for this hole.
func (h Hole) Size() int { return h.options.Count() }

// Contains reports whether option is currently active.
func (h Hole) Contains(option int) bool { return h.options.Contains(option) }

// Options returns the currently active option indices in ascending order.
func (h Hole) Options() []int { return h.options.Options() }

// OptionSet returns the hole's currently active option set.
func (h Hole) OptionSet() OptionSet { return h.options }

// Label returns the printable expression for option.
func (h Hole) Label(option int) string {
	if option < 0 || option >= len(h.labels) {
 return ""
	}
	return h.labels[option]
}

// Labels returns the printable expressions for every currently active
// option, in ascending option order.
func (h Hole) Labels() []string {
	out := make([]string, 0, h.Size())
	h.options.Each(func(o int) { out = append(out, h.labels[o]) })
	return out
}

// IsFixed reports whether exactly one option remains, i.e. this hole is
// part of a concrete assignment.
func (h Hole) IsFixed() bool { return h.options.IsSingleton() }

// FixedOption returns the single remaining option. Behavior is undefined
// unless IsFixed is true.
func (h Hole) FixedOption() int { return h.options.SingletonValue() }

// Restrict returns a copy of the hole whose option set is the
// intersection of the current options with the given subset. The option
// set never grows: options not present in subset are dropped even if
// subset ranges outside the hole's original domain.
func (h Hole) Restrict(subset OptionSet) Hole {
	h.options = h.options.Intersect(subset)
	return h
}

// RestrictToOptions is a convenience wrapper around Restrict that takes
// raw option indices.
func (h Hole) RestrictToOptions(options []int) Hole {
	return h.Restrict(NewOptionSet(len(h.labels), options))
}

// String renders "name in {label0, label1,...}".
func (h Hole) String() string {
	return fmt.Sprintf("%s in %v", h.name, h.Labels())
}
