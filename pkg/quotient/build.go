package quotient

import (
	"fmt"
	"strconv"

	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
)

// reachabilityGraph builds a directed core.Graph over the quotient
// model's states, with one edge per (choice, successor) pair whose
// choice passes keep. Vertex IDs are the decimal state indices.
func reachabilityGraph(m *Model, keep func(choice int) bool) *core.Graph {
	g := core.NewGraph(core.WithDirected(true))
	for s := 0; s < m.NumStates; s++ {
 _ = g.AddVertex(strconv.Itoa(s))
	}
	for s, choices := range m.StateChoices {
 for _, c := range choices {
 if !keep(c) {
 continue
 }
 for _, succ := range m.Successors[c] {
 _, _ = g.AddEdge(strconv.Itoa(s), strconv.Itoa(succ.State), 1)
 }
 }
	}
	return g
}

// reachableStates returns, in discovery order, the states reachable
// from initial in the quotient model restricted to choices accepted by
// keep: the sub-MDP's state set is whatever the retained choices can
// reach.
func reachableStates(m *Model, initial int, keep func(choice int) bool) ([]int, error) {
	g := reachabilityGraph(m, keep)
	res, err := bfs.BFS(g, strconv.Itoa(initial))
	if err != nil {
 return nil, fmt.Errorf("quotient: reachability search failed: %w", err)
	}
	out := make([]int, 0, len(res.Order)+1)
	out = append(out, initial)
	for _, id := range res.Order {
 if id == strconv.Itoa(initial) {
 continue
 }
 n, _ := strconv.Atoi(id)
 out = append(out, n)
	}
	return out, nil
}

// buildSubmodel renumbers the quotient states/choices reachable under
// keep into a freestanding Model with its own local indices, recording
// the origin maps back into the quotient.
func buildSubmodel(m *Model, initial int, keep func(choice int) bool) (*Model, error) {
	states, err := reachableStates(m, initial, keep)
	if err != nil {
 return nil, err
	}
	stateIndex := make(map[int]int, len(states))
	for i, s := range states {
 stateIndex[s] = i
	}

	sub := &Model{
 NumStates: len(states),
 InitialState: 0,
 StateChoices: make([][]int, len(states)),
 Target: make([]bool, len(states)),
 QuotientStateMap: append([]int(nil), states...),
	}

	for localState, quotientState := range states {
 sub.Target[localState] = m.Target[quotientState]
 for _, c := range m.StateChoices[quotientState] {
 if !keep(c) {
 continue
 }
 localChoice := len(sub.Successors)
 succs := make([]Successor, 0, len(m.Successors[c]))
 for _, s := range m.Successors[c] {
 succs = append(succs, Successor{State: stateIndex[s.State], Probability: s.Probability})
 }
 sub.Successors = append(sub.Successors, succs)
 if m.Reward != nil {
 sub.Reward = append(sub.Reward, m.Reward[c])
 }
 sub.QuotientChoiceMap = append(sub.QuotientChoiceMap, c)
 sub.StateChoices[localState] = append(sub.StateChoices[localState], localChoice)
 }
	}
	return sub, nil
}

// Build constructs the sub-MDP whose choices are exactly those enabled
// by some assignment in space: the union, over the coloring, of every
// quotient choice compatible with at least one remaining hole option
// per relevant hole.
func (q *Quotient) Build(space family.DesignSpace) (*Model, error) {
	keep := func(choice int) bool { return q.Coloring.enabled(choice, space) }
	return buildSubmodel(q.Model, q.Model.InitialState, keep)
}

// BuildChain constructs the concrete DTMC for one assignment. assignment
// must be a full assignment (family.DesignSpace.IsAssignment); the
// result is guaranteed to have at most one enabled choice per reachable
// state (a state with none is absorbing).
func (q *Quotient) BuildChain(assignment family.DesignSpace) (*Model, error) {
	if !assignment.IsAssignment() {
 return nil, fmt.Errorf("quotient: BuildChain requires a full assignment")
	}
	dtmc, err := q.Build(assignment)
	if err != nil {
 return nil, err
	}
	for s, choices := range dtmc.StateChoices {
 if len(choices) > 1 {
 return nil, fmt.Errorf("quotient: assignment %s is not a valid program: state %d has %d enabled choices", assignment, s, len(choices))
 }
	}
	return dtmc, nil
}
