// Package quotient wraps the quotient Markov model: the union of every
// choice enabled by any member of a family, colored by the hole-option
// pairs that enable each choice.
package quotient

import "github.com/dsynth/quotientsynth/pkg/family"

// Successor is one probabilistic transition target of a choice.
type Successor struct {
	State int
	Probability float64
}

// Model is a finite Markov model: an MDP when some state has more than
// one enabled choice, a DTMC when no state has more than one (a state
// with no enabled choice is absorbing). Sub-MDPs
// and DTMCs built from a family share this representation.
type Model struct {
	NumStates int
	InitialState int

	// StateChoices[s] lists the choice indices available at state s.
	StateChoices [][]int
	// Successors[c] lists the probabilistic successors of choice c.
	Successors [][]Successor
	// Reward[c] is the reward accumulated by taking choice c, used only
	// for expected-reward properties.
	Reward []float64
	// Target marks states satisfying the property's target predicate.
	Target []bool

	// QuotientStateMap maps this model's local state index to its
	// origin state in the full quotient model.
	QuotientStateMap []int
	// QuotientChoiceMap maps this model's local choice index to its
	// origin choice in the full quotient model.
	QuotientChoiceMap []int
}

// IsDTMC reports whether no state of the model has more than one
// enabled choice.
func (m *Model) IsDTMC() bool {
	for _, choices := range m.StateChoices {
 if len(choices) > 1 {
 return false
 }
	}
	return true
}

// NumChoices returns the total number of choices across all states.
func (m *Model) NumChoices() int { return len(m.Successors) }

// Coloring maps each quotient choice to the hole-option pairs that must
// hold for that choice to be enabled. A choice with an empty
// requirement list is enabled unconditionally.
type Coloring struct {
	// Requirements[choice] is the list of (hole, option) pairs that
	// enable that quotient choice.
	Requirements [][]HoleOption
	// StateToHoles[state] is the set of hole indices appearing on any
	// outgoing choice of that quotient state.
	StateToHoles [][]int
}

// HoleOption is one (hole index, option index) requirement pair.
type HoleOption struct {
	Hole int
	Option int
}

// enabled reports whether assignment satisfies every requirement of a
// quotient choice.
func (c *Coloring) enabled(choice int, space family.DesignSpace) bool {
	for _, req := range c.Requirements[choice] {
 if !space.Hole(req.Hole).Contains(req.Option) {
 return false
 }
	}
	return true
}

// RelevantHoles returns the union, over the given states, of the holes
// appearing on any outgoing choice, used by the conflict generator.
func (c *Coloring) RelevantHoles(states []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, s := range states {
 for _, h := range c.StateToHoles[s] {
 if !seen[h] {
 seen[h] = true
 out = append(out, h)
 }
 }
	}
	return out
}

// Quotient is the full quotient model plus its coloring: the shared
// context every sub-MDP and DTMC is built from.
type Quotient struct {
	Model *Model
	Coloring *Coloring
}

// NewQuotient wraps a prebuilt quotient model and its coloring. Both are
// ordinarily produced by the sketch parser; this core only consumes them.
func NewQuotient(model *Model, coloring *Coloring) *Quotient {
	return &Quotient{Model: model, Coloring: coloring}
}
