package pomdp

import (
	"fmt"
	"strconv"

	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/quotient"
)

// ObservationPOMDP is the observation-labeled, memory-free MDP an
// external sketch/properties parser would hand the driver before any
// memory unfolding. States sharing an observation must offer the same
// number of actions, matching the partial-observability constraint
// that a controller cannot tell them apart.
type ObservationPOMDP struct {
	NumStates int
	InitialState int
	StateObservation []int
	NumActions []int // per observation
	Successors [][][]quotient.Successor // Successors[state][action]
	Target []bool
}

// HoleClass records which (observation, memory-node) pair a hole
// belongs to and whether it selects an action or the next memory node.
type HoleClass struct {
	Observation int
	Action bool
	Node int
}

// MemoryModel is the external memory-unfolding collaborator: given a
// per-observation memory size, it builds the resulting quotient MDP
// and design space, classifying every hole, and reports which
// observations' maximum successor memory size grew when one
// observation's memory is enlarged.
type MemoryModel interface {
	NumObservations() int
	Build(memorySize []int) (*quotient.Quotient, family.DesignSpace, []HoleClass, error)
	IncreaseMemorySize(obs int, memorySize []int) (affected []int)
}

// Unfolder is a reference MemoryModel: it builds the product of an
// ObservationPOMDP with per-observation memory by replicating each
// state once per memory value, and coloring the product's choices with
// an action hole and a memory-update hole per (observation, memory
// node) pair. This is the same unfolding a real POMDP-to-MDP memory
// unfolder performs, kept simple enough to run without CGO or an
// external model checker.
//
// Unfolder.IncreaseMemorySize only ever reports the observation whose
// memory was directly increased as affected: a full cross-observation
// successor-memory propagation depends on observation adjacency
// information this reference type does not model, and is left as a
// documented simplification.
type Unfolder struct {
	pomdp *ObservationPOMDP
}

// NewUnfolder wraps p as a MemoryModel.
func NewUnfolder(p *ObservationPOMDP) *Unfolder { return &Unfolder{pomdp: p} }

// NumObservations implements MemoryModel.
func (u *Unfolder) NumObservations() int { return len(u.pomdp.NumActions) }

// IncreaseMemorySize implements MemoryModel.
func (u *Unfolder) IncreaseMemorySize(obs int, memorySize []int) []int {
	memorySize[obs]++
	return []int{obs}
}

// Build implements MemoryModel.
func (u *Unfolder) Build(memorySize []int) (*quotient.Quotient, family.DesignSpace, []HoleClass, error) {
	p := u.pomdp
	numObs := len(p.NumActions)
	if len(memorySize) != numObs {
 return nil, family.DesignSpace{}, nil, fmt.Errorf("pomdp: memorySize has %d entries, want %d", len(memorySize), numObs)
	}

	memOffset := make([]int, p.NumStates)
	total := 0
	for s := 0; s < p.NumStates; s++ {
 memOffset[s] = total
 total += memorySize[p.StateObservation[s]]
	}

	type holeKey struct {
 obs int
 node int
 action bool
	}
	holeIndex := map[holeKey]int{}
	var holes []family.Hole
	var classes []HoleClass

	for obs := 0; obs < numObs; obs++ {
 for node := 0; node < memorySize[obs]; node++ {
 actionLabels := make([]string, p.NumActions[obs])
 for i := range actionLabels {
 actionLabels[i] = strconv.Itoa(i)
 }
 holeIndex[holeKey{obs, node, true}] = len(holes)
 holes = append(holes, family.NewHole(fmt.Sprintf("obs%d_mem%d_action", obs, node), actionLabels))
 classes = append(classes, HoleClass{Observation: obs, Action: true, Node: node})

 updateLabels := make([]string, memorySize[obs])
 for i := range updateLabels {
 updateLabels[i] = strconv.Itoa(i)
 }
 holeIndex[holeKey{obs, node, false}] = len(holes)
 holes = append(holes, family.NewHole(fmt.Sprintf("obs%d_mem%d_update", obs, node), updateLabels))
 classes = append(classes, HoleClass{Observation: obs, Action: false, Node: node})
 }
	}

	model := &quotient.Model{
 NumStates: total,
 InitialState: memOffset[p.InitialState],
 StateChoices: make([][]int, total),
 Target: make([]bool, total),
	}
	stateToHoles := make([][]int, total)
	var requirements [][]quotient.HoleOption

	for s := 0; s < p.NumStates; s++ {
 obs := p.StateObservation[s]
 for m := 0; m < memorySize[obs]; m++ {
 ps := memOffset[s] + m
 model.Target[ps] = p.Target[s]
 actionHole := holeIndex[holeKey{obs, m, true}]
 updateHole := holeIndex[holeKey{obs, m, false}]
 stateToHoles[ps] = []int{actionHole, updateHole}

 for a := 0; a < p.NumActions[obs]; a++ {
 for mPrime := 0; mPrime < memorySize[obs]; mPrime++ {
 choice := len(model.Successors)
 model.StateChoices[ps] = append(model.StateChoices[ps], choice)

 succ := make([]quotient.Successor, 0, len(p.Successors[s][a]))
 for _, sc := range p.Successors[s][a] {
 succ = append(succ, quotient.Successor{
 State: memOffset[sc.State] + mPrime,
 Probability: sc.Probability,
 })
 }
 model.Successors = append(model.Successors, succ)
 requirements = append(requirements, []quotient.HoleOption{
 {Hole: actionHole, Option: a},
 {Hole: updateHole, Option: mPrime},
 })
 }
 }
 }
	}

	coloring := &quotient.Coloring{Requirements: requirements, StateToHoles: stateToHoles}
	q := quotient.NewQuotient(model, coloring)
	space := family.NewDesignSpace(holes)
	return q, space, classes, nil
}
