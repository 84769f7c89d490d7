package synth

import (
	"math/big"

	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/quotient"
	"github.com/dsynth/quotientsynth/pkg/spec"
)

// sizeFloat converts a design-space cardinality to a float64 for the
// stage controller's pruning-rate bookkeeping, which only needs
// approximate magnitudes.
func sizeFloat(n *big.Int) float64 {
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

// Hybrid interleaves AR and CEGIS under a StageController, rebalancing
// which method gets more time based on measured pruning efficiency. It
// owns an ArCore and a CegisCore rather than inheriting from both.
type Hybrid struct {
	ar *ArCore
	cegis *CegisCore
}

// NewHybrid constructs the hybrid synthesizer from a shared context.
func NewHybrid(ctx Context, conflictGen quotient.ConflictGenerator) *Hybrid {
	return &Hybrid{ar: NewArCore(ctx), cegis: NewCegisCore(ctx, conflictGen)}
}

// MethodName implements Synthesizer.
func (h *Hybrid) MethodName() string { return "hybrid" }

// Synthesize runs the stage-controlled AR/CEGIS loop. It refuses
// specifications CEGIS cannot handle, exactly like plain CEGIS.
func (h *Hybrid) Synthesize(root family.DesignSpace) (*family.DesignSpace, error) {
	if refuse, reason := h.cegis.Specification.RefusesCEGIS(); refuse {
 return nil, &RefusedError{Reason: reason}
	}

	totalSize := sizeFloat(root.Size())
	control := NewStageController(totalSize)

	var witness *family.DesignSpace
	stack := []Node{rootNode(root, h.ar.Specification)}

	for len(stack) > 0 {
 control.StartAR()
 node := stack[len(stack)-1]
 stack = stack[:len(stack)-1]

 feasibility, assignment, analysis, err := h.ar.AnalyzeFamily(node)
 if err != nil {
 return nil, err
 }
 if assignment != nil {
 witness = assignment
 }
 if feasibility == spec.FeasibilityTrue {
 return witness, nil
 }
 if feasibility == spec.FeasibilityFalse {
 control.PruneAR(sizeFloat(node.Space.Size()))
 continue
 }

 // undecided: hand the same sub-family to CEGIS for a while
 control.StartCegis()
 excluder := family.NewBitsetExcluder(node.Space)
 assignment2, ok := excluder.PickAssignment()
 sat := false
 for ok {
 var improving bool
 sat, improving, _, err = h.cegis.AnalyzeAssignment(excluder, assignment2, node.PropertyIndices)
 if err != nil {
 return nil, err
 }
 if improving {
 a := assignment2
 witness = &a
 }
 if sat {
 break
 }
 if control.CegisStep() {
 break
 }
 assignment2, ok = excluder.PickAssignment()
 }

 if sat {
 return witness, nil
 }
 if !ok {
 control.PruneCegis(sizeFloat(node.Space.Size()))
 continue
 }

 // CEGIS ran out of budget on this family: fall back to an AR split
 children, err := h.ar.SplitFamily(node, analysis)
 if err != nil {
 return nil, err
 }
 stack = append(stack, children...)
	}
	return witness, nil
}
