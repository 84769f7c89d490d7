package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyConstraintTrueOnPrimarySat(t *testing.T) {
	c := Constraint{Comparator: GreaterOrEqual, Threshold: 0.9}
	r := PropertyResult{Primary: []float64{0.95}}
	assert.Equal(t, FeasibilityTrue, ClassifyConstraint(c, r))
}

func TestClassifyConstraintFalseOnSecondaryViolation(t *testing.T) {
	c := Constraint{Comparator: GreaterOrEqual, Threshold: 0.9}
	r := PropertyResult{Primary: []float64{0.85}, Secondary: []float64{0.8}}
	assert.Equal(t, FeasibilityFalse, ClassifyConstraint(c, r))
}

func TestClassifyConstraintUndecidedWithoutSecondary(t *testing.T) {
	c := Constraint{Comparator: GreaterOrEqual, Threshold: 0.9}
	r := PropertyResult{Primary: []float64{0.85}}
	assert.Equal(t, FeasibilityUndecided, ClassifyConstraint(c, r))
}

func TestAggregateConstraintsAllTrue(t *testing.T) {
	constraints := []Constraint{
 {Comparator: GreaterOrEqual, Threshold: 0.9},
 {Comparator: LessOrEqual, Threshold: 10},
	}
	results := map[int]PropertyResult{
 0: {Primary: []float64{0.95}},
 1: {Primary: []float64{3}},
	}
	res := AggregateConstraints([]int{0, 1}, constraints, results, false)
	assert.Equal(t, FeasibilityTrue, res.Feasibility)
	assert.Empty(t, res.UndecidedIndices)
}

func TestAggregateConstraintsFalseShortCircuits(t *testing.T) {
	constraints := []Constraint{
 {Comparator: GreaterOrEqual, Threshold: 0.9},
 {Comparator: LessOrEqual, Threshold: 10},
	}
	results := map[int]PropertyResult{
 0: {Primary: []float64{0.5}, Secondary: []float64{0.4}}, // false
 1: {Primary: []float64{3}}, // true, never classified
	}
	res := AggregateConstraints([]int{0, 1}, constraints, results, true)
	assert.Equal(t, FeasibilityFalse, res.Feasibility)
}

func TestAggregateConstraintsUndecidedCollectsIndices(t *testing.T) {
	constraints := []Constraint{
 {Comparator: GreaterOrEqual, Threshold: 0.9},
 {Comparator: LessOrEqual, Threshold: 10},
 {Comparator: GreaterOrEqual, Threshold: 0.5},
	}
	results := map[int]PropertyResult{
 0: {Primary: []float64{0.95}}, // true
 1: {Primary: []float64{15}}, // undecided, no secondary
 2: {Primary: []float64{0.3}}, // undecided, no secondary
	}
	res := AggregateConstraints([]int{0, 1, 2}, constraints, results, false)
	assert.Equal(t, FeasibilityUndecided, res.Feasibility)
	assert.Equal(t, []int{1, 2}, res.UndecidedIndices)
}

func TestSpecificationResultFeasible(t *testing.T) {
	sat := SpecificationResult{Constraints: ConstraintsResult{Feasibility: FeasibilityTrue}}
	assert.True(t, sat.Feasible())

	unsat := SpecificationResult{Constraints: ConstraintsResult{Feasibility: FeasibilityFalse}}
	assert.False(t, unsat.Feasible())

	withOptimalityBlocking := SpecificationResult{
 Constraints: ConstraintsResult{Feasibility: FeasibilityTrue},
 Optimality: &OptimalityResult{Value: 4.0, Improves: false},
	}
	assert.False(t, withOptimalityBlocking.Feasible())
}
