package synth

import (
	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/quotient"
)

// OneByOne enumerates every assignment in the family, model-checking
// each one's DTMC with short-circuit evaluation. It never splits and
// never uses the SMT exclusion machinery, making it the slow but
// trustworthy correctness oracle the other strategies are checked
// against.
type OneByOne struct {
	Context
}

// NewOneByOne constructs the baseline enumeration synthesizer.
func NewOneByOne(ctx Context) *OneByOne { return &OneByOne{Context: ctx} }

// MethodName implements Synthesizer.
func (s *OneByOne) MethodName() string { return "1-by-1" }

// Synthesize implements Synthesizer.
func (s *OneByOne) Synthesize(root family.DesignSpace) (*family.DesignSpace, error) {
	var best *family.DesignSpace

	it := root.AllCombinations()
	for {
 positions, ok := it.Next()
 if !ok {
 break
 }
 assignment := root.ConstructAssignment(positions)
 dtmc, err := s.Quotient.BuildChain(assignment)
 if err != nil {
 return nil, err
 }

 allIndices := make([]int, len(s.Specification.Constraints))
 for i := range allIndices {
 allIndices[i] = i
 }
 analysis, err := quotient.CheckSpecification(s.Checker, dtmc, s.Specification, allIndices, true)
 if err != nil {
 return nil, err
 }

 if !analysis.Specification.Constraints.AllSat() {
 continue
 }
 if !s.Specification.HasOptimality() {
 a := assignment
 return &a, nil
 }
 if analysis.Specification.Optimality.Improves {
 s.Specification.Optimality.UpdateOptimum(analysis.Specification.Optimality.Value)
 a := assignment
 best = &a
 }
	}
	return best, nil
}
