package spec

// AggregateConstraints rolls a round of per-constraint results into one
// ConstraintsResult. results must carry an entry for every index in
// indices; indices is normally the family's current property indices —
// the constraints left undecided by an ancestor, since anything
// already resolved true by an ancestor stays true by construction (a
// family is only reached here because no ancestor resolved an index
// false).
//
// shortCircuit mirrors a short-evaluation performance flag: when true,
// AggregateConstraints stops classifying as soon as one constraint is
// found false, since the overall verdict cannot change after that.
// When false every index is classified regardless, which CEGIS needs
// so it can report every violated constraint to the conflict generator
// rather than just the first.
func AggregateConstraints(indices []int, constraints []Constraint, results map[int]PropertyResult, shortCircuit bool) ConstraintsResult {
	sawFalse := false
	var undecided []int
	for _, idx := range indices {
 switch ClassifyConstraint(constraints[idx], results[idx]) {
 case FeasibilityFalse:
 sawFalse = true
 if shortCircuit {
 return ConstraintsResult{Feasibility: FeasibilityFalse}
 }
 case FeasibilityUndecided:
 undecided = append(undecided, idx)
 }
	}
	if sawFalse {
 return ConstraintsResult{Feasibility: FeasibilityFalse}
	}
	if len(undecided) > 0 {
 return ConstraintsResult{Feasibility: FeasibilityUndecided, UndecidedIndices: undecided}
	}
	return ConstraintsResult{Feasibility: FeasibilityTrue}
}

// AggregateSpecification combines a constraints verdict with an
// optional optimality check into one SpecificationResult.
// optimalityResult is nil when the specification carries no
// optimizing objective.
func AggregateSpecification(constraints ConstraintsResult, optimalityResult *OptimalityResult) SpecificationResult {
	return SpecificationResult{Constraints: constraints, Optimality: optimalityResult}
}
