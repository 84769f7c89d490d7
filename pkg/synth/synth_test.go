package synth

import (
	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/quotient"
	"github.com/dsynth/quotientsynth/pkg/spec"
)

// testQuotient builds the same tiny two-choice quotient used throughout
// pkg/quotient's tests:
//
//	state0 --choice0 (X=0)--> state1 --choice2--> state2 (dead end)
//	state0 --choice1 (X=1)--> state3 (target)
//
// so X=1 is the only satisfying assignment and X=0 never reaches the
// target.
func testQuotient() *quotient.Quotient {
	m := &quotient.Model{
 NumStates: 4,
 InitialState: 0,
 StateChoices: [][]int{{0, 1}, {2}, {}, {}},
 Successors: [][]quotient.Successor{
 {{State: 1, Probability: 1}},
 {{State: 3, Probability: 1}},
 {{State: 2, Probability: 1}},
 },
 Target: []bool{false, false, false, true},
	}
	c := &quotient.Coloring{
 Requirements: [][]quotient.HoleOption{
 {{Hole: 0, Option: 0}},
 {{Hole: 0, Option: 1}},
 nil,
 },
 StateToHoles: [][]int{{0}, {}, {}, {}},
	}
	return quotient.NewQuotient(m, c)
}

func testSpace() family.DesignSpace {
	x := family.NewHole("X", []string{"0", "1"})
	return family.NewDesignSpace([]family.Hole{x})
}

// reachabilitySpecification requires reaching the target with
// probability at least 0.5, which only X=1 satisfies.
func reachabilitySpecification() *spec.Specification {
	return &spec.Specification{
 Constraints: []spec.Constraint{
 {Comparator: spec.GreaterOrEqual, Threshold: 0.5},
 },
	}
}

func testContext(specification *spec.Specification) Context {
	return Context{
 Quotient: testQuotient(),
 Specification: specification,
 Checker: quotient.NewGraphModelChecker(),
	}
}

// rewardAmbiguousQuotient builds a quotient where the same hole X
// drives a reward-minimizing decision at two different states:
//
//	state0 --X=0(r1)--> state1 --X=0(r10)--> state3 (target)
//	state0 --X=0(r1)--> state1 --X=1(r1) --> state3 (target)
//	state0 --X=1(r10)--> state2 --X=0(r1)--> state3 (target)
//	state0 --X=1(r10)--> state2 --X=1(r10)--> state3 (target)
//
// An MDP scheduler minimizing reward is free to pick X=0 at state0 and
// X=1 at state1 independently, reaching the target for a total of 2 —
// a bound no single assignment can realize, since a real program fixes
// X once. The only two concrete assignments cost 11 (X=0) and 20
// (X=1), so the true minimum is 11. A synthesizer that mistakes the
// MDP's bound of 2 for an achievable value can never recognize 11 as
// an improvement and returns no witness at all.
func rewardAmbiguousQuotient() *quotient.Quotient {
	m := &quotient.Model{
 NumStates: 4,
 InitialState: 0,
 StateChoices: [][]int{{0, 1}, {2, 3}, {4, 5}, {}},
 Successors: [][]quotient.Successor{
 {{State: 1, Probability: 1}}, // choice0: state0, X=0, r1
 {{State: 2, Probability: 1}}, // choice1: state0, X=1, r10
 {{State: 3, Probability: 1}}, // choice2: state1, X=0, r10
 {{State: 3, Probability: 1}}, // choice3: state1, X=1, r1
 {{State: 3, Probability: 1}}, // choice4: state2, X=0, r1
 {{State: 3, Probability: 1}}, // choice5: state2, X=1, r10
 },
 Reward: []float64{1, 10, 10, 1, 1, 10},
 Target: []bool{false, false, false, true},
	}
	c := &quotient.Coloring{
 Requirements: [][]quotient.HoleOption{
 {{Hole: 0, Option: 0}},
 {{Hole: 0, Option: 1}},
 {{Hole: 0, Option: 0}},
 {{Hole: 0, Option: 1}},
 {{Hole: 0, Option: 0}},
 {{Hole: 0, Option: 1}},
 },
 StateToHoles: [][]int{{0}, {0}, {0}, {}},
	}
	return quotient.NewQuotient(m, c)
}

// minRewardSpecification carries no constraints, only an unconstrained
// reward-minimizing optimizing objective, so Synthesize must search
// purely on Optimality.Improves.
func minRewardSpecification() *spec.Specification {
	return &spec.Specification{
 Optimality: spec.NewOptimality("R{\"reward\"}min=? [F target]", true, true, 0),
	}
}
