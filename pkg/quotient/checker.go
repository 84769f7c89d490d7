package quotient

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"
)

// CheckResult is the outcome of model-checking one property on one
// model in one scheduler direction: a per-state value vector and, for
// MDPs, the scheduler's chosen choice at each state.
type CheckResult struct {
	Values []float64
	Scheduler []int // Scheduler[s] = chosen choice index at state s, -1 if none
}

// ModelChecker computes a property's value in a given scheduler
// direction over a Model. A production deployment would delegate to an
// external probabilistic model checker; this core only depends on the
// interface.
type ModelChecker interface {
	Check(m *Model, reward, minimizing bool) (CheckResult, error)
}

const (
	valueIterationEpsilon = 1e-9
	valueIterationMaxRounds = 100000
	unreachableRewardPenalty = math.MaxFloat64 / 4
)

// GraphModelChecker is a reference ModelChecker: qualitative
// reachability (which states can reach a target at all) is
// precomputed with lvlath/bfs over the model's transition graph;
// quantitative values are then obtained by Gauss-Seidel value
// iteration, which no graph library in the retrieved set performs, so
// it is implemented directly against the Model.
type GraphModelChecker struct{}

// NewGraphModelChecker constructs the reference model checker.
func NewGraphModelChecker() *GraphModelChecker { return &GraphModelChecker{} }

// Check implements ModelChecker.
func (c *GraphModelChecker) Check(m *Model, reward, minimizing bool) (CheckResult, error) {
	canReach, err := canReachTarget(m)
	if err != nil {
 return CheckResult{}, err
	}

	values := make([]float64, m.NumStates)
	scheduler := make([]int, m.NumStates)
	for s := range scheduler {
 scheduler[s] = -1
	}

	if reward {
 initValues(values, m.Target, 0, unreachableRewardPenalty, canReach)
	} else {
 initValues(values, m.Target, 1, 0, canReach)
	}

	order := sweepOrder(m)

	for round := 0; round < valueIterationMaxRounds; round++ {
 maxDelta := 0.0
 for _, s := range order {
 if m.Target[s] || !canReach[s] {
 continue
 }
 choices := m.StateChoices[s]
 if len(choices) == 0 {
 continue
 }
 best := math.Inf(1)
 if !minimizing {
 best = math.Inf(-1)
 }
 bestChoice := -1
 for _, ch := range choices {
 v := choiceValue(m, ch, values, reward)
 if (minimizing && v < best) || (!minimizing && v > best) {
 best = v
 bestChoice = ch
 }
 }
 delta := math.Abs(best - values[s])
 if delta > maxDelta {
 maxDelta = delta
 }
 values[s] = best
 scheduler[s] = bestChoice
 }
 if maxDelta < valueIterationEpsilon {
 break
 }
	}

	return CheckResult{Values: values, Scheduler: scheduler}, nil
}

func choiceValue(m *Model, choice int, values []float64, reward bool) float64 {
	v := 0.0
	if reward {
 v = m.Reward[choice]
	}
	for _, succ := range m.Successors[choice] {
 v += succ.Probability * values[succ.State]
	}
	return v
}

func initValues(values []float64, target []bool, targetValue, unreachableValue float64, canReach []bool) {
	for s := range values {
 switch {
 case target[s]:
 values[s] = targetValue
 case !canReach[s]:
 values[s] = unreachableValue
 default:
 values[s] = 0
 }
	}
}

const sweepSourceVertex = "__target__"

// sweepOrder ranks states by ascending number of transitions on a
// shortest path to the nearest target, via a single Dijkstra run from a
// synthetic source vertex connected to every target state at zero cost
// over the reverse transition graph. Gauss-Seidel value iteration
// converges in fewer rounds when a state is swept only after the states
// closer to the target it depends on already hold their updated value.
// Falls back to natural state order if
// Dijkstra errors, which only costs convergence speed, not correctness.
func sweepOrder(m *Model) []int {
	natural := make([]int, m.NumStates)
	for i := range natural {
 natural[i] = i
	}

	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	_ = g.AddVertex(sweepSourceVertex)
	for s := 0; s < m.NumStates; s++ {
 _ = g.AddVertex(strconv.Itoa(s))
	}
	for s, choices := range m.StateChoices {
 for _, c := range choices {
 for _, succ := range m.Successors[c] {
 _, _ = g.AddEdge(strconv.Itoa(succ.State), strconv.Itoa(s), 1)
 }
 }
	}
	for s := 0; s < m.NumStates; s++ {
 if m.Target[s] {
 _, _ = g.AddEdge(sweepSourceVertex, strconv.Itoa(s), 0)
 }
	}

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(sweepSourceVertex))
	if err != nil {
 return natural
	}

	order := append([]int(nil), natural...)
	sort.SliceStable(order, func(i, j int) bool {
 return dist[strconv.Itoa(order[i])] < dist[strconv.Itoa(order[j])]
	})
	return order
}

// canReachTarget computes, for every state, whether some path in the
// underlying (non-probabilistic) transition graph reaches a target
// state. States that cannot are fixed at their terminal value (0 for
// probability, a large penalty for reward) rather than iterated.
func canReachTarget(m *Model) ([]bool, error) {
	rev := core.NewGraph(core.WithDirected(true))
	for s := 0; s < m.NumStates; s++ {
 _ = rev.AddVertex(strconv.Itoa(s))
	}
	for s, choices := range m.StateChoices {
 for _, c := range choices {
 for _, succ := range m.Successors[c] {
 _, _ = rev.AddEdge(strconv.Itoa(succ.State), strconv.Itoa(s), 1)
 }
 }
	}

	canReach := make([]bool, m.NumStates)
	for s := 0; s < m.NumStates; s++ {
 if m.Target[s] {
 canReach[s] = true
 }
	}
	for s := 0; s < m.NumStates; s++ {
 if !m.Target[s] {
 continue
 }
 res, err := bfs.BFS(rev, strconv.Itoa(s))
 if err != nil {
 return nil, fmt.Errorf("quotient: target reachability search failed: %w", err)
 }
 for _, id := range res.Order {
 n, _ := strconv.Atoi(id)
 canReach[n] = true
 }
	}
	return canReach, nil
}
