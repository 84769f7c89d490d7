package pomdp

import (
	"encoding/json"
	"fmt"

	"github.com/dsynth/quotientsynth/pkg/quotient"
)

// jsonPOMDP is the explicit wire format LoadObservationPOMDP decodes,
// the POMDP-side counterpart to quotient.JSONBuilder's explicit MDP
// format: both stand in for a real PRISM-like sketch compiler, here
// specialized to the observation-labeled shape ObservationPOMDP needs.
type jsonPOMDP struct {
	InitialState int `json:"initial_state"`
	States []jsonPOMDPState `json:"states"`
}

type jsonPOMDPState struct {
	Observation int `json:"observation"`
	Target bool `json:"target"`
	Actions [][]jsonPOMDPSuccessor `json:"actions"`
}

type jsonPOMDPSuccessor struct {
	State int `json:"state"`
	Probability float64 `json:"probability"`
}

// LoadObservationPOMDP decodes an explicit JSON POMDP description into
// an ObservationPOMDP, validating that every state sharing an
// observation offers the same number of actions (the partial-
// observability constraint ObservationPOMDP's doc comment states) and
// that every successor references an in-range state.
func LoadObservationPOMDP(data []byte) (*ObservationPOMDP, error) {
	var doc jsonPOMDP
	if err := json.Unmarshal(data, &doc); err != nil {
 return nil, fmt.Errorf("pomdp: decoding observation pomdp: %w", err)
	}

	n := len(doc.States)
	if doc.InitialState < 0 || doc.InitialState >= n {
 return nil, fmt.Errorf("pomdp: initial_state %d out of range for %d states", doc.InitialState, n)
	}

	p := &ObservationPOMDP{
 NumStates: n,
 InitialState: doc.InitialState,
 StateObservation: make([]int, n),
 Target: make([]bool, n),
 Successors: make([][][]quotient.Successor, n),
	}

	numActions := map[int]int{}
	for s, st := range doc.States {
 if st.Observation < 0 {
 return nil, fmt.Errorf("pomdp: state %d has negative observation %d", s, st.Observation)
 }
 p.StateObservation[s] = st.Observation
 p.Target[s] = st.Target

 if want, ok := numActions[st.Observation]; ok {
 if len(st.Actions) != want {
 return nil, fmt.Errorf("pomdp: state %d (observation %d) has %d actions, want %d", s, st.Observation, len(st.Actions), want)
 }
 } else {
 numActions[st.Observation] = len(st.Actions)
 }

 actions := make([][]quotient.Successor, len(st.Actions))
 for a, succs := range st.Actions {
 list := make([]quotient.Successor, len(succs))
 for i, succ := range succs {
 if succ.State < 0 || succ.State >= n {
 return nil, fmt.Errorf("pomdp: state %d action %d successor %d references out-of-range state %d", s, a, i, succ.State)
 }
 list[i] = quotient.Successor{State: succ.State, Probability: succ.Probability}
 }
 actions[a] = list
 }
 p.Successors[s] = actions
	}

	maxObs := -1
	for obs := range numActions {
 if obs > maxObs {
 maxObs = obs
 }
	}
	p.NumActions = make([]int, maxObs+1)
	for obs, count := range numActions {
 p.NumActions[obs] = count
	}
	for obs, count := range p.NumActions {
 if count == 0 {
 return nil, fmt.Errorf("pomdp: observation %d has no states defining its action count", obs)
 }
	}

	return p, nil
}
