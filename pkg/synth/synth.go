// Package synth implements the three cooperating search strategies over
// a family's design space — 1-by-1 enumeration, Abstraction-Refinement
// (AR), Counterexample-Guided Inductive Synthesis (CEGIS) — and the
// stage-controlled Hybrid combination of AR and CEGIS.
package synth

import (
	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/quotient"
	"github.com/dsynth/quotientsynth/pkg/spec"
)

// Synthesizer searches a design space for an assignment satisfying a
// specification.
type Synthesizer interface {
	MethodName() string
	Synthesize(root family.DesignSpace) (*family.DesignSpace, error)
}

// Node is one sub-family on a synthesizer's work stack, carrying the
// constraint indices still undecided at this point in the search.
type Node struct {
	Space family.DesignSpace
	PropertyIndices []int
}

func rootNode(space family.DesignSpace, specification *spec.Specification) Node {
	indices := make([]int, len(specification.Constraints))
	for i := range indices {
 indices[i] = i
	}
	return Node{Space: space, PropertyIndices: indices}
}

// Context bundles the collaborators every synthesizer needs: the
// quotient model, the specification being checked, and the reference
// model checker.
type Context struct {
	Quotient *quotient.Quotient
	Specification *spec.Specification
	Checker quotient.ModelChecker
}
