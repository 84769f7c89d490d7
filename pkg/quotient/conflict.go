package quotient

// ConflictSet is a subset of hole indices whose joint assignment on a
// refuted sample suffices to force a specific property violation.
type ConflictSet []int

// ConflictGenerator builds a conflict for one failed property on one
// DTMC. A production collaborator would construct a minimal conflict
// from the DTMC and the property's threshold using the model checker's
// internal structures; this core only depends on the interface.
type ConflictGenerator interface {
	Construct(propertyIndex int, relevantHoles []int) ConflictSet
}

// RelevantHolesConflictGenerator is a reference ConflictGenerator: it
// reports every hole relevant to the violated property's reachable
// states as the conflict, with no attempt at minimization. This is
// sound — every assignment excluded this way does share the full set
// of options that caused the violation — but not minimal; a real
// conflict generator prunes far more aggressively by probing which
// holes the violation actually depends on.
type RelevantHolesConflictGenerator struct{}

// NewRelevantHolesConflictGenerator constructs the reference conflict
// generator.
func NewRelevantHolesConflictGenerator() *RelevantHolesConflictGenerator {
	return &RelevantHolesConflictGenerator{}
}

// Construct implements ConflictGenerator.
func (g *RelevantHolesConflictGenerator) Construct(propertyIndex int, relevantHoles []int) ConflictSet {
	return append(ConflictSet(nil), relevantHoles...)
}
