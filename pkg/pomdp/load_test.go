package pomdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadObservationPOMDPDecodesCorridor(t *testing.T) {
	data := []byte(`{
 "initial_state": 0,
 "states": [
 {"observation": 0, "actions": [[{"state": 3, "probability": 1}], [{"state": 1, "probability": 1}]]},
 {"observation": 0, "actions": [[{"state": 2, "probability": 1}], [{"state": 3, "probability": 1}]]},
 {"observation": 1, "target": true, "actions": [[{"state": 2, "probability": 1}]]},
 {"observation": 1, "actions": [[{"state": 3, "probability": 1}]]}
 ]
	}`)

	p, err := LoadObservationPOMDP(data)
	require.NoError(t, err)

	assert.Equal(t, 4, p.NumStates)
	assert.Equal(t, 0, p.InitialState)
	assert.Equal(t, []int{0, 0, 1, 1}, p.StateObservation)
	assert.Equal(t, []int{2, 1}, p.NumActions)
	assert.True(t, p.Target[2])
	assert.Equal(t, 1, p.Successors[0][1][0].State)
}

func TestLoadObservationPOMDPRejectsMismatchedActionCounts(t *testing.T) {
	data := []byte(`{
 "initial_state": 0,
 "states": [
 {"observation": 0, "actions": [[{"state": 0, "probability": 1}]]},
 {"observation": 0, "actions": [[{"state": 0, "probability": 1}], [{"state": 1, "probability": 1}]]}
 ]
	}`)
	_, err := LoadObservationPOMDP(data)
	assert.Error(t, err)
}

func TestLoadObservationPOMDPRejectsOutOfRangeSuccessor(t *testing.T) {
	data := []byte(`{
 "initial_state": 0,
 "states": [
 {"observation": 0, "actions": [[{"state": 5, "probability": 1}]]}
 ]
	}`)
	_, err := LoadObservationPOMDP(data)
	assert.Error(t, err)
}

func TestLoadObservationPOMDPRejectsOutOfRangeInitialState(t *testing.T) {
	data := []byte(`{"initial_state": 2, "states": [{"observation": 0, "actions": [[]]}]}`)
	_, err := LoadObservationPOMDP(data)
	assert.Error(t, err)
}

func TestLoadObservationPOMDPRejectsInvalidJSON(t *testing.T) {
	_, err := LoadObservationPOMDP([]byte(`not json`))
	assert.Error(t, err)
}
