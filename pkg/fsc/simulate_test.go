package fsc

import (
	"math/rand"
	"testing"

	"github.com/dsynth/quotientsynth/pkg/pomdp"
	"github.com/dsynth/quotientsynth/pkg/quotient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corridorPOMDP mirrors pkg/pomdp's test fixture: two observations,
// reaching the goal requires action 1 at state0 and action 0 at
// state1.
func corridorPOMDP() *pomdp.ObservationPOMDP {
	return &pomdp.ObservationPOMDP{
 NumStates: 4,
 InitialState: 0,
 StateObservation: []int{0, 0, 1, 1},
 NumActions: []int{2, 1},
 Successors: [][][]quotient.Successor{
 {
 {{State: 3, Probability: 1}},
 {{State: 1, Probability: 1}},
 },
 {
 {{State: 2, Probability: 1}},
 {{State: 3, Probability: 1}},
 },
 {{{State: 2, Probability: 1}}},
 {{{State: 3, Probability: 1}}},
 },
 Target: []bool{false, false, true, false},
	}
}

func TestSimulateDeterministicControllerAlwaysReaches(t *testing.T) {
	// state0 and state1 share observation 0, so only memory lets the
	// controller behave differently at each: node0 takes action1
	// (state0's safe move) and switches to node1, which takes action0
	// (state1's safe move, reaching the goal).
	f := New(2, 2, true)
	f.ActionFunction[0][0] = DeterministicAction(1)
	f.UpdateFunction[0][0] = 1
	f.ActionFunction[1][0] = DeterministicAction(0)

	result, err := Simulate(corridorPOMDP(), f, 20, 5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 20, result.Trials)
	assert.Equal(t, 20, result.Reached)
	assert.InDelta(t, 1.0, result.Value, 1e-9)
}

func TestSimulateDeadEndControllerNeverReaches(t *testing.T) {
	// A single memory node can't tell state0 from state1, so it can only
	// pick one action for observation 0: action0 sends state0 straight
	// to the dead end.
	f := New(1, 2, true)
	f.ActionFunction[0][0] = DeterministicAction(0)

	result, err := Simulate(corridorPOMDP(), f, 10, 5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Reached)
	assert.InDelta(t, 0.0, result.Value, 1e-9)
}

func TestSimulateRejectsObservationMismatch(t *testing.T) {
	f := New(1, 3, true)
	_, err := Simulate(corridorPOMDP(), f, 1, 1, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestSimulateRandomizedActionFollowsItsDistribution(t *testing.T) {
	f := New(1, 2, false)
	f.ActionFunction[0][0] = RandomizedAction(map[int]float64{0: 1, 1: 0})
	f.ActionFunction[0][1] = DeterministicAction(0)

	result, err := Simulate(corridorPOMDP(), f, 50, 5, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	// action 0 at state0 always goes to the dead end (state3).
	assert.Equal(t, 0, result.Reached)
}
