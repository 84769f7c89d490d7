package pomdp

import (
	"testing"

	"github.com/dsynth/quotientsynth/pkg/quotient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corridorPOMDP is a 2-observation, 4-state obstacle model: state0 and
// state1 share observation 0 (so a memory-1 controller cannot tell them
// apart), and only one of them can safely take each action. Reaching the
// goal (state2) requires taking action 1 at state0 and action 0 at
// state1 — impossible under a single shared action hole, and the
// motivating example for memory injection at observation 0.
func corridorPOMDP() *ObservationPOMDP {
	return &ObservationPOMDP{
 NumStates: 4,
 InitialState: 0,
 StateObservation: []int{0, 0, 1, 1},
 NumActions: []int{2, 1},
 Successors: [][][]quotient.Successor{
 { // state0
 {{State: 3, Probability: 1}}, // action0: dead end
 {{State: 1, Probability: 1}}, // action1: corridor
 },
 { // state1
 {{State: 2, Probability: 1}}, // action0: goal
 {{State: 3, Probability: 1}}, // action1: dead end
 },
 {{{State: 2, Probability: 1}}}, // state2 (goal): self-loop
 {{{State: 3, Probability: 1}}}, // state3 (dead): self-loop
 },
 Target: []bool{false, false, true, false},
	}
}

func TestUnfolderBuildColorsOneActionAndUpdateHolePerMemoryNode(t *testing.T) {
	u := NewUnfolder(corridorPOMDP())
	q, space, classes, err := u.Build([]int{1, 1})
	require.NoError(t, err)

	assert.Equal(t, 4, q.Model.NumStates) // 4 states, 1 memory value each
	assert.Equal(t, 4, space.NumHoles()) // 2 observations * (action + update)
	assert.Len(t, classes, 4)

	assert.Equal(t, HoleClass{Observation: 0, Action: true, Node: 0}, classes[0])
	assert.Equal(t, HoleClass{Observation: 0, Action: false, Node: 0}, classes[1])
	assert.Equal(t, HoleClass{Observation: 1, Action: true, Node: 0}, classes[2])
	assert.Equal(t, HoleClass{Observation: 1, Action: false, Node: 0}, classes[3])

	// obs0 has 2 actions: the action hole has 2 options.
	assert.Equal(t, 2, space.Hole(0).Size())
	// obs0's memory size is 1: the update hole is degenerate (1 option).
	assert.Equal(t, 1, space.Hole(1).Size())
}

func TestUnfolderBuildAtLargerMemorySizeReplicatesStates(t *testing.T) {
	u := NewUnfolder(corridorPOMDP())
	q, space, classes, err := u.Build([]int{2, 1})
	require.NoError(t, err)

	// obs0's 2 states now each get 2 product states (mem0, mem1); obs1's
	// 2 states keep 1 each.
	assert.Equal(t, 6, q.Model.NumStates)
	// obs0 now contributes 2 memory nodes * 2 holes, obs1 still 1 node * 2.
	assert.Equal(t, 6, space.NumHoles())
	assert.Len(t, classes, 6)
}

func TestUnfolderIncreaseMemorySizeGrowsOnlyTargetObservation(t *testing.T) {
	u := NewUnfolder(corridorPOMDP())
	memorySize := []int{1, 1}
	affected := u.IncreaseMemorySize(0, memorySize)

	assert.Equal(t, []int{2, 1}, memorySize)
	assert.Equal(t, []int{0}, affected)
}

func TestUnfolderNumObservations(t *testing.T) {
	u := NewUnfolder(corridorPOMDP())
	assert.Equal(t, 2, u.NumObservations())
}
