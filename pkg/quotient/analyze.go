package quotient

import (
	"github.com/dsynth/quotientsynth/pkg/spec"
)

// AnalysisResult bundles a specification verdict with the raw
// per-property scheduler results needed for splitting. CheckResults is
// keyed by constraint index and holds the primary-direction scheduler
// result; OptimalityCheck, when the specification carries an optimizing
// objective, holds its primary scheduler result.
type AnalysisResult struct {
	Specification spec.SpecificationResult
	CheckResults map[int]CheckResult
	OptimalityCheck *CheckResult
}

// CheckSpecification evaluates a specification against model, checking
// only the constraints named by propertyIndices and, if present, the
// optimizing objective.
//
// For an MDP (more than one choice at some state) both scheduler
// directions are computed per property so ConstraintsResult can use the
// secondary result to prove UNSAT; for a DTMC the two coincide.
func CheckSpecification(checker ModelChecker, model *Model, specification *spec.Specification, propertyIndices []int, shortCircuit bool) (AnalysisResult, error) {
	isMDP := !model.IsDTMC()
	propertyResults := make(map[int]spec.PropertyResult, len(propertyIndices))
	checkResults := make(map[int]CheckResult, len(propertyIndices))

	for _, idx := range propertyIndices {
 c := specification.Constraints[idx]
 primary, err := checker.Check(model, c.Reward, c.PrimaryMinimizing)
 if err != nil {
 return AnalysisResult{}, err
 }
 pr := spec.PropertyResult{Primary: primary.Values, InitialState: model.InitialState}
 if isMDP {
 secondary, err := checker.Check(model, c.Reward, !c.PrimaryMinimizing)
 if err != nil {
 return AnalysisResult{}, err
 }
 pr.Secondary = secondary.Values
 } else {
 // a DTMC has exactly one scheduler: its single exact value
 // stands for both directions, so a failed primary bound is a
 // definitive violation rather than an undecided result.
 pr.Secondary = primary.Values
 }
 propertyResults[idx] = pr
 checkResults[idx] = primary

 if shortCircuit {
 if spec.ClassifyConstraint(c, pr) == spec.FeasibilityFalse {
 break
 }
 }
	}

	constraintsResult := spec.AggregateConstraints(propertyIndices, specification.Constraints, propertyResults, shortCircuit)

	var optimalityResult *spec.OptimalityResult
	var optimalityCheck *CheckResult
	if specification.HasOptimality() {
 o := specification.Optimality
 primary, err := checker.Check(model, o.Reward, o.Minimizing)
 if err != nil {
 return AnalysisResult{}, err
 }
 pr := spec.PropertyResult{Primary: primary.Values, InitialState: model.InitialState}
 res := spec.EvaluateOptimality(o, pr)
 optimalityResult = &res
 optimalityCheck = &primary
	}

	return AnalysisResult{
 Specification: spec.AggregateSpecification(constraintsResult, optimalityResult),
 CheckResults: checkResults,
 OptimalityCheck: optimalityCheck,
	}, nil
}

// UndecidedResult picks the scheduler result to split on: the first
// still-undecided constraint's check result, falling back to the
// optimality check when every constraint is resolved but the
// objective still needs refining.
func (a AnalysisResult) UndecidedResult() (CheckResult, bool) {
	for _, idx := range a.Specification.Constraints.UndecidedIndices {
 if r, ok := a.CheckResults[idx]; ok {
 return r, true
 }
	}
	if a.OptimalityCheck != nil {
 return *a.OptimalityCheck, true
	}
	return CheckResult{}, false
}
