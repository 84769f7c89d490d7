package spec

// Feasibility is the three-valued verdict a family (or a single
// assignment) carries against a specification's constraints.
type Feasibility int

const (
	// FeasibilityUndecided means at least one constraint is still
	// unresolved and none has failed outright.
	FeasibilityUndecided Feasibility = iota
	// FeasibilityTrue means every constraint is satisfied.
	FeasibilityTrue
	// FeasibilityFalse means at least one constraint is violated.
	FeasibilityFalse
)

func (f Feasibility) String() string {
	switch f {
	case FeasibilityTrue:
 return "true"
	case FeasibilityFalse:
 return "false"
	default:
 return "none"
	}
}

// PropertyResult holds the model-checking outcome for one property
// against one model. Primary is the result in the scheduler direction
// that proves the bound; Secondary, when present, is the result in the
// opposite direction and is what lets an MDP-level check conclude a
// constraint is violated by every refinement.
//
// Both slices are indexed by the model's own local state numbering;
// InitialState names which entry is "the" value of the property.
type PropertyResult struct {
	Primary []float64
	Secondary []float64
	InitialState int
}

// PrimaryValue returns the property's value at the model's initial
// state under the primary (bound-proving) scheduler direction.
func (r PropertyResult) PrimaryValue() float64 { return r.Primary[r.InitialState] }

// SecondaryValue returns the value under the opposite scheduler
// direction. ok is false when no secondary result was computed.
func (r PropertyResult) SecondaryValue() (value float64, ok bool) {
	if r.Secondary == nil {
 return 0, false
	}
	return r.Secondary[r.InitialState], true
}

// ClassifyConstraint resolves a single constraint's outcome from its
// model-checking result (decision rules):
//
// - primary result already satisfies the bound -> every member of the
// represented family satisfies it (true)
// - secondary result already violates the bound -> every member
// violates it (false)
// - otherwise the constraint remains undecided for this family
func ClassifyConstraint(c Constraint, r PropertyResult) Feasibility {
	if c.Comparator.Satisfies(r.PrimaryValue(), c.Threshold) {
 return FeasibilityTrue
	}
	if sec, ok := r.SecondaryValue(); ok {
 if !c.Comparator.Satisfies(sec, c.Threshold) {
 return FeasibilityFalse
 }
	}
	return FeasibilityUndecided
}

// ConstraintsResult aggregates the per-constraint outcomes of one
// round of checking into a single three-valued verdict plus the list
// of constraints still undecided. UndecidedIndices feeds the next
// round's property indices: only unresolved constraints are
// re-checked after a split.
type ConstraintsResult struct {
	Feasibility Feasibility
	UndecidedIndices []int
}

// AllSat reports whether every checked constraint was satisfied.
func (r ConstraintsResult) AllSat() bool { return r.Feasibility == FeasibilityTrue }

// OptimalityResult is the outcome of checking the specification's
// optimizing objective against one model.
//
// Improves serves two purposes depending on the caller: at the
// sub-family (MDP) level it answers "can this branch still beat the
// optimum" (a pruning test on the looser MDP bound); at a concrete
// assignment (DTMC) level it answers "does this value actually beat
// the optimum". Both reduce to the same epsilon-gap check against
// whichever bound was computed.
type OptimalityResult struct {
	Value float64
	Improves bool
}

// EvaluateOptimality checks one model's optimality result against the
// objective's currently held optimum.
func EvaluateOptimality(o *Optimality, r PropertyResult) OptimalityResult {
	v := r.PrimaryValue()
	return OptimalityResult{Value: v, Improves: o.ImprovesOptimum(v)}
}

// SpecificationResult is the full verdict for one model: the
// constraints outcome plus, when the specification carries one, the
// optimality outcome.
type SpecificationResult struct {
	Constraints ConstraintsResult
	Optimality *OptimalityResult
}

// Feasible reports whether this model satisfies every constraint and,
// if an optimizing objective is present, still improves on the
// current optimum.
func (r SpecificationResult) Feasible() bool {
	if r.Constraints.Feasibility != FeasibilityTrue {
 return false
	}
	if r.Optimality != nil && !r.Optimality.Improves {
 return false
	}
	return true
}
