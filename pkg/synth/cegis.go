package synth

import (
	"math/big"

	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/quotient"
)

// CegisCore implements Counterexample-Guided Inductive Synthesis: pick
// one assignment, model-check its DTMC, and on failure derive a
// conflict that excludes every assignment sharing it.
type CegisCore struct {
	Context
	ConflictGenerator quotient.ConflictGenerator
}

// NewCegisCore constructs the CEGIS analysis core.
func NewCegisCore(ctx Context, conflictGen quotient.ConflictGenerator) *CegisCore {
	return &CegisCore{Context: ctx, ConflictGenerator: conflictGen}
}

// AnalyzeAssignment builds assignment's DTMC, checks every property in
// propertyIndices (no short-circuit: every failing property needs its
// own conflict), and on failure excludes every generalization of the
// assignment implicated in a failed property.
//
// Each conflict is built from Coloring.RelevantHoles over the quotient
// states the DTMC actually visits (the holes on their outgoing choices).
func (c *CegisCore) AnalyzeAssignment(excluder *family.BitsetExcluder, assignment family.DesignSpace, propertyIndices []int) (sat, improving bool, pruned *big.Int, err error) {
	dtmc, err := c.Quotient.BuildChain(assignment)
	if err != nil {
 return false, false, nil, err
	}

	analysis, err := quotient.CheckSpecification(c.Checker, dtmc, c.Specification, propertyIndices, false)
	if err != nil {
 return false, false, nil, err
	}

	if analysis.Specification.Constraints.AllSat() {
 if !c.Specification.HasOptimality() {
 return true, true, big.NewInt(0), nil
 }
 if analysis.Specification.Optimality.Improves {
 c.Specification.Optimality.UpdateOptimum(analysis.Specification.Optimality.Value)
 improving = true
 }
	}

	pruned = big.NewInt(0)
	for _, idx := range propertyIndices {
 prop := c.Specification.Constraints[idx]
 failed := !prop.Comparator.Satisfies(analysis.CheckResults[idx].Values[dtmc.InitialState], prop.Threshold)
 if !failed {
 continue
 }
 relevant := c.Quotient.Coloring.RelevantHoles(dtmc.QuotientStateMap)
 conflict := c.ConflictGenerator.Construct(idx, relevant)
 pruned.Add(pruned, excluder.ExcludeAssignment(assignment, conflict))
	}

	if c.Specification.HasOptimality() && !improving {
 relevant := c.Quotient.Coloring.RelevantHoles(dtmc.QuotientStateMap)
 conflict := c.ConflictGenerator.Construct(len(c.Specification.Constraints), relevant)
 pruned.Add(pruned, excluder.ExcludeAssignment(assignment, conflict))
	}

	return false, improving, pruned, nil
}

// Synthesize runs the CEGIS loop over the root family. It refuses
// specifications containing a maximizing reward formula.
func (c *CegisCore) Synthesize(root family.DesignSpace) (*family.DesignSpace, error) {
	if refuse, reason := c.Specification.RefusesCEGIS(); refuse {
 return nil, &RefusedError{Reason: reason}
	}

	allIndices := make([]int, len(c.Specification.Constraints))
	for i := range allIndices {
 allIndices[i] = i
	}

	excluder := family.NewBitsetExcluder(root)
	var witness *family.DesignSpace

	assignment, ok := excluder.PickAssignment()
	for ok {
 sat, improving, _, err := c.AnalyzeAssignment(excluder, assignment, allIndices)
 if err != nil {
 return nil, err
 }
 if improving {
 a := assignment
 witness = &a
 }
 if sat {
 break
 }
 assignment, ok = excluder.PickAssignment()
	}
	return witness, nil
}

// MethodName implements Synthesizer.
func (c *CegisCore) MethodName() string { return "CEGIS" }

// RefusedError is returned when a specification cannot be handled by
// CEGIS or Hybrid.
type RefusedError struct{ Reason string }

func (e *RefusedError) Error() string { return "cegis: refused specification: " + e.Reason }
