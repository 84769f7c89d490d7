// Package fsc implements the finite-state controller output format for
// partially observable synthesis and a Monte-Carlo re-simulator used to
// validate one against the POMDP it was synthesized for.
package fsc

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// probabilityTolerance is the maximum deviation of a randomized action
// choice's probabilities from summing to 1
const probabilityTolerance = 1e-9

// ActionChoice is one (node, observation) entry of an FSC's action
// function: either a single deterministic action index, or a
// randomized distribution over action indices.
type ActionChoice struct {
	action int
	distribution map[int]float64
}

// DeterministicAction returns an ActionChoice that always selects
// action.
func DeterministicAction(action int) ActionChoice {
	return ActionChoice{action: action, distribution: nil}
}

// RandomizedAction returns an ActionChoice sampling from distribution,
// a map from action index to probability.
func RandomizedAction(distribution map[int]float64) ActionChoice {
	return ActionChoice{distribution: distribution}
}

// IsDeterministic reports whether this choice always selects one
// action.
func (a ActionChoice) IsDeterministic() bool { return a.distribution == nil }

// Action returns the action index for a deterministic choice. Behavior
// is undefined unless IsDeterministic is true.
func (a ActionChoice) Action() int { return a.action }

// Distribution returns the action-probability map for a randomized
// choice. Behavior is undefined unless IsDeterministic is false.
func (a ActionChoice) Distribution() map[int]float64 { return a.distribution }

// Validate checks that a randomized choice's probabilities sum to 1
// within probabilityTolerance.
func (a ActionChoice) Validate() error {
	if a.IsDeterministic() {
 return nil
	}
	sum := 0.0
	for _, p := range a.distribution {
 sum += p
	}
	if math.Abs(sum-1) > probabilityTolerance {
 return fmt.Errorf("fsc: action distribution sums to %g, want 1±%g", sum, probabilityTolerance)
	}
	return nil
}

// MarshalJSON renders a deterministic choice as a bare action index and
// a randomized choice as a {"action": probability,...} object.
func (a ActionChoice) MarshalJSON() ([]byte, error) {
	if a.IsDeterministic() {
 return json.Marshal(a.action)
	}
	strKeyed := make(map[string]float64, len(a.distribution))
	for action, p := range a.distribution {
 strKeyed[strconv.Itoa(action)] = p
	}
	return json.Marshal(strKeyed)
}

// UnmarshalJSON accepts either a bare integer or an object of
// string-keyed probabilities.
func (a *ActionChoice) UnmarshalJSON(data []byte) error {
	var action int
	if err := json.Unmarshal(data, &action); err == nil {
 *a = DeterministicAction(action)
 return nil
	}
	var strKeyed map[string]float64
	if err := json.Unmarshal(data, &strKeyed); err != nil {
 return fmt.Errorf("fsc: action choice is neither an action index nor a distribution: %w", err)
	}
	distribution := make(map[int]float64, len(strKeyed))
	for key, p := range strKeyed {
 action, err := strconv.Atoi(key)
 if err != nil {
 return fmt.Errorf("fsc: non-integer action key %q: %w", key, err)
 }
 distribution[action] = p
	}
	*a = RandomizedAction(distribution)
	return nil
}

// FSC is a finite-state controller for a POMDP: a fixed number of
// memory nodes, a per-(node, observation) action function, and a
// posterior-unaware memory update function.
type FSC struct {
	NumNodes int
	NumObservations int
	IsDeterministic bool

	// ActionFunction[n][z] is the action choice at memory node n under
	// observation z.
	ActionFunction [][]ActionChoice
	// UpdateFunction[n][z] is the next memory node after observation z
	// is seen at node n.
	UpdateFunction [][]int
}

// New constructs an FSC with numNodes memory nodes over numObservations
// observations, with every entry defaulting to action 0 and self-loop
// memory.
func New(numNodes, numObservations int, deterministic bool) *FSC {
	f := &FSC{NumNodes: numNodes, NumObservations: numObservations, IsDeterministic: deterministic}
	f.ActionFunction = make([][]ActionChoice, numNodes)
	f.UpdateFunction = make([][]int, numNodes)
	for n := range f.ActionFunction {
 f.ActionFunction[n] = make([]ActionChoice, numObservations)
 f.UpdateFunction[n] = make([]int, numObservations)
 for z := range f.ActionFunction[n] {
 f.UpdateFunction[n][z] = n
 }
	}
	return f
}

// Validate checks every action choice's distribution and every update
// entry's node index.
func (f *FSC) Validate() error {
	for n, row := range f.ActionFunction {
 for z, choice := range row {
 if err := choice.Validate(); err != nil {
 return fmt.Errorf("fsc: node %d observation %d: %w", n, z, err)
 }
 }
 for z, next := range f.UpdateFunction[n] {
 if next < 0 || next >= f.NumNodes {
 return fmt.Errorf("fsc: node %d observation %d: update targets out-of-range node %d", n, z, next)
 }
 }
	}
	return nil
}

type wireFSC struct {
	NumNodes int `json:"num_nodes"`
	NumObservations int `json:"num_observations"`
	ActionFunction [][]ActionChoice `json:"action_function"`
	UpdateFunction [][]int `json:"update_function"`
}

// MarshalJSON renders the FSC's wire fields: num_nodes,
// num_observations, action_function, update_function.
func (f *FSC) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireFSC{
 NumNodes: f.NumNodes,
 NumObservations: f.NumObservations,
 ActionFunction: f.ActionFunction,
 UpdateFunction: f.UpdateFunction,
	})
}

// UnmarshalJSON reconstructs an FSC from its wire format, inferring
// IsDeterministic from whether any entry is randomized.
func (f *FSC) UnmarshalJSON(data []byte) error {
	var w wireFSC
	if err := json.Unmarshal(data, &w); err != nil {
 return err
	}
	f.NumNodes = w.NumNodes
	f.NumObservations = w.NumObservations
	f.ActionFunction = w.ActionFunction
	f.UpdateFunction = w.UpdateFunction
	f.IsDeterministic = true
	for _, row := range f.ActionFunction {
 for _, choice := range row {
 if !choice.IsDeterministic() {
 f.IsDeterministic = false
 }
 }
	}
	return nil
}

// String renders the FSC as indented JSON.
func (f *FSC) String() string {
	data, err := json.MarshalIndent(f, "", " ")
	if err != nil {
 return fmt.Sprintf("fsc: <unmarshalable: %v>", err)
	}
	return string(data)
}

// sortedActions returns a choice's action indices in ascending order,
// used by the simulator to sample deterministically given a single
// uniform draw.
func (a ActionChoice) sortedActions() []int {
	if a.IsDeterministic() {
 return []int{a.action}
	}
	actions := make([]int, 0, len(a.distribution))
	for action := range a.distribution {
 actions = append(actions, action)
	}
	sort.Ints(actions)
	return actions
}
