package synth

import (
	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/quotient"
	"github.com/dsynth/quotientsynth/pkg/spec"
)

// ArCore implements Abstraction-Refinement: build an over-approximating
// MDP for a sub-family, model-check it, and either resolve the whole
// sub-family in one shot or split it on the hole the scheduler
// disagreed about most.
type ArCore struct {
	Context
}

// NewArCore constructs the AR analysis core.
func NewArCore(ctx Context) *ArCore { return &ArCore{Context: ctx} }

// AnalyzeFamily builds node's sub-MDP and checks it against the
// specification. feasibility is spec.FeasibilityTrue/False/Undecided;
// assignment is non-nil whenever this call produced a witness (a
// feasible assignment, or an improving one when the specification has
// an optimizing objective).
func (a *ArCore) AnalyzeFamily(node Node) (feasibility spec.Feasibility, assignment *family.DesignSpace, analysis quotient.AnalysisResult, err error) {
	model, err := a.Quotient.Build(node.Space)
	if err != nil {
 return spec.FeasibilityUndecided, nil, quotient.AnalysisResult{}, err
	}

	analysis, err = quotient.CheckSpecification(a.Checker, model, a.Specification, node.PropertyIndices, true)
	if err != nil {
 return spec.FeasibilityUndecided, nil, quotient.AnalysisResult{}, err
	}

	canImprove := analysis.Specification.Constraints.Feasibility == spec.FeasibilityUndecided
	var witness *family.DesignSpace

	if analysis.Specification.Constraints.Feasibility == spec.FeasibilityTrue {
 if !a.Specification.HasOptimality() {
 w := node.Space.PickAny()
 return spec.FeasibilityTrue, &w, analysis, nil
 }

 // or.Value is the MDP's over-approximating bound for the whole
 // sub-family, not a value any single assignment necessarily
 // achieves, so it drives canImprove only. The process optimum is
 // updated below only from a concrete, model-checked DTMC value,
 // the same discipline CegisCore.AnalyzeAssignment and
 // OneByOne.Synthesize use.
 or := analysis.Specification.Optimality
 canImprove = or.Improves

 if or.Improves {
 w, witnessAnalysis, werr := a.extractWitness(model, node.Space, *analysis.OptimalityCheck)
 if werr != nil {
 return spec.FeasibilityUndecided, nil, quotient.AnalysisResult{}, werr
 }
 if witnessAnalysis.Specification.Feasible() {
 a.Specification.Optimality.UpdateOptimum(witnessAnalysis.Specification.Optimality.Value)
 witness = &w
 }
 }

 if node.Space.IsAssignment() {
 return spec.FeasibilityFalse, witness, analysis, nil
 }
	}

	if !canImprove {
 return spec.FeasibilityFalse, witness, analysis, nil
	}
	return spec.FeasibilityUndecided, witness, analysis, nil
}

// extractWitness builds a concrete assignment from the scheduler's
// choice at every state of sub, fixing each hole to the first option
// the scheduler committed to there, or, for a hole the scheduler never
// touched, the sub-family's own first remaining option. It then
// model-checks that assignment's DTMC exactly against every
// constraint, turning the MDP bound that produced result from a
// pruning hint into a verified value.
func (a *ArCore) extractWitness(sub *quotient.Model, space family.DesignSpace, result quotient.CheckResult) (family.DesignSpace, quotient.AnalysisResult, error) {
	selection := a.Quotient.SchedulerSelection(sub, result)

	witness := space
	for h := 0; h < witness.NumHoles(); h++ {
 hole := witness.Hole(h)
 raw := hole.Options()[0]
 if opts, ok := selection[h]; ok && len(opts) > 0 {
 raw = opts[0]
 }
 witness = witness.Subholes(h, family.NewOptionSet(hole.OptionSet().Width(), []int{raw}))
	}

	dtmc, err := a.Quotient.BuildChain(witness)
	if err != nil {
 return family.DesignSpace{}, quotient.AnalysisResult{}, err
	}
	allIndices := make([]int, len(a.Specification.Constraints))
	for i := range allIndices {
 allIndices[i] = i
	}
	analysis, err := quotient.CheckSpecification(a.Checker, dtmc, a.Specification, allIndices, false)
	if err != nil {
 return family.DesignSpace{}, quotient.AnalysisResult{}, err
	}
	return witness, analysis, nil
}

// SplitFamily splits node on the scheduler-inconsistent hole with the
// highest score among the constraints that remain undecided: children
// inherit the parent's still-undecided constraint indices unchanged,
// since a split never resolves a constraint by itself.
func (a *ArCore) SplitFamily(node Node, analysis quotient.AnalysisResult) ([]Node, error) {
	result, ok := analysis.UndecidedResult()
	if !ok {
 return nil, nil
	}
	model, err := a.Quotient.Build(node.Space)
	if err != nil {
 return nil, err
	}
	selection := a.Quotient.SchedulerSelection(model, result)
	// the scoring direction only affects which alternative choice counts
	// as the runner-up at a divergent state, not correctness of the
	// split; any fixed direction is a sound tie-breaking heuristic here.
	const scoringMinimizing = false
	scores := a.Quotient.SchedulerScores(model, result, selection, scoringMinimizing)
	children, _, err := a.Quotient.Split(node.Space, selection, scores)
	if err != nil {
 return nil, err
	}

	nodes := make([]Node, len(children))
	for i, c := range children {
 nodes[i] = Node{Space: c, PropertyIndices: analysis.Specification.Constraints.UndecidedIndices}
	}
	return nodes, nil
}

// Synthesize runs a depth-first AR search over a stack of sub-families,
// always popping the most recently pushed node.
func (a *ArCore) Synthesize(root family.DesignSpace) (*family.DesignSpace, error) {
	var witness *family.DesignSpace
	stack := []Node{rootNode(root, a.Specification)}

	for len(stack) > 0 {
 node := stack[len(stack)-1]
 stack = stack[:len(stack)-1]

 feasibility, assignment, analysis, err := a.AnalyzeFamily(node)
 if err != nil {
 return nil, err
 }
 if assignment != nil {
 witness = assignment
 }
 switch feasibility {
 case spec.FeasibilityTrue:
 return witness, nil
 case spec.FeasibilityFalse:
 continue
 }

 children, err := a.SplitFamily(node, analysis)
 if err != nil {
 return nil, err
 }
 stack = append(stack, children...)
	}
	return witness, nil
}

// MethodName implements Synthesizer.
func (a *ArCore) MethodName() string { return "AR" }
