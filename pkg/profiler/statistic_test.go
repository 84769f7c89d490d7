package profiler

import (
	"testing"
	"time"

	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/quotient"
	"github.com/dsynth/quotientsynth/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuotient() *quotient.Quotient {
	m := &quotient.Model{
		NumStates: 3,
		StateChoices: [][]int{{0}, {1}, {2}},
		Successors: [][]quotient.Successor{
			{{State: 1, Probability: 1}},
			{{State: 2, Probability: 1}},
			{{State: 2, Probability: 1}},
		},
		Target: []bool{false, false, true},
	}
	return quotient.NewQuotient(m, &quotient.Coloring{Requirements: make([][]quotient.HoleOption, 3)})
}

func testRoot() family.DesignSpace {
	return family.NewDesignSpace([]family.Hole{
		family.NewHole("h0", []string{"a", "b"}),
		family.NewHole("h1", []string{"x", "y", "z"}),
	})
}

func testSpecification() *spec.Specification {
	return &spec.Specification{
		Constraints: []spec.Constraint{{Formula: "P=? [F goal]", Comparator: spec.GreaterOrEqual, Threshold: 0.5}},
	}
}

func TestNewStatisticAssignsRunID(t *testing.T) {
	s1 := NewStatistic(testQuotient(), testRoot(), testSpecification(), "AR")
	s2 := NewStatistic(testQuotient(), testRoot(), testSpecification(), "AR")
	assert.NotEmpty(t, s1.RunID)
	assert.NotEqual(t, s1.RunID, s2.RunID)
}

func TestStatisticIterationCountersStayUnsetUntilObserved(t *testing.T) {
	s := NewStatistic(testQuotient(), testRoot(), testSpecification(), "AR")
	assert.False(t, s.mdp.has)
	assert.False(t, s.dtmc.has)
	assert.False(t, s.game.has)

	s.IterationMDP(10)
	s.IterationMDP(20)

	assert.True(t, s.mdp.has)
	assert.Equal(t, 2, s.mdp.iterations)
	assert.Equal(t, 30, s.mdp.accumulated)
	assert.InDelta(t, 15.0, s.mdp.average(), 1e-9)
}

func TestStatisticFinishedRecordsFeasibility(t *testing.T) {
	s := NewStatistic(testQuotient(), testRoot(), testSpecification(), "AR")
	stop := s.Start()
	stop()

	s.Finished(nil)
	assignment, ok := s.Assignment()
	assert.False(t, ok)
	assert.Equal(t, 0, assignment.NumHoles())
	assert.Contains(t, s.Summary(), "feasible: no")
}

func TestStatisticFinishedWithAssignmentReportsFeasible(t *testing.T) {
	s := NewStatistic(testQuotient(), testRoot(), testSpecification(), "AR")
	stop := s.Start()
	stop()

	assignment := testRoot().ConstructAssignment([]int{0, 1})
	s.Finished(&assignment)

	got, ok := s.Assignment()
	require.True(t, ok)
	assert.True(t, got.IsAssignment())
	assert.Contains(t, s.Summary(), "feasible: yes")
}

func TestStatisticSummaryReportsOptimumWhenPresent(t *testing.T) {
	specification := testSpecification()
	specification.Optimality = spec.NewOptimality("R{time}=? [F goal]", true, true, 0)
	specification.Optimality.UpdateOptimum(3.5)

	s := NewStatistic(testQuotient(), testRoot(), specification, "AR")
	s.Finished(nil)

	summary := s.Summary()
	assert.Contains(t, summary, "optimal: 3.500000")
	assert.NotContains(t, summary, "feasible:")
}

func TestStatisticSummaryIncludesSuperQuotientSize(t *testing.T) {
	s := NewStatistic(testQuotient(), testRoot(), testSpecification(), "AR")
	summary := s.Summary()
	assert.Contains(t, summary, "super quotient: 3 states / 3 actions")
	assert.Contains(t, summary, "number of holes: 2")
	assert.Contains(t, summary, "family size: 6")
}

func TestStatisticStatusReportsIterationCountsInGameMDPDTMCOrder(t *testing.T) {
	s := NewStatistic(testQuotient(), testRoot(), testSpecification(), "AR")
	s.IterationGame(5)
	s.IterationMDP(7)
	s.IterationDTMC(9)

	status := s.Status()
	assert.Contains(t, status, "iters = (1, 1, 1)")
}

func TestStatisticOnStatusThrottledByPeriod(t *testing.T) {
	s := NewStatistic(testQuotient(), testRoot(), testSpecification(), "AR")
	s.SetStatusPeriod(time.Hour)
	var reports int
	s.OnStatus = func(string) { reports++ }

	stop := s.Start()
	s.IterationMDP(1)
	s.IterationMDP(1)
	stop()

	assert.Equal(t, 1, reports)
}

func TestSafeDivideHandlesZeroDivisor(t *testing.T) {
	assert.InDelta(t, 10.0/ApproxZero, safeDivide(10, 0), 1e-6)
	assert.InDelta(t, 5.0, safeDivide(10, 2), 1e-9)
}
