package fsc

import (
	"fmt"

	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/pomdp"
)

// FromAssignment reads a concrete assignment over a pomdp.MemoryModel's
// holes back into an FSC. classes and memorySize must be the values
// pomdp.Unfolder.Build returned alongside the space assignment was
// drawn from.
//
// Unfolder classes a hole per (observation, memory node) pair, so the
// resulting controller's per-node action/update choice only varies with
// observation at nodes that pair actually unfolded; nodes beyond an
// observation's memorySize are left at New's self-loop/action-0
// default, since the driver never visits them for that observation.
func FromAssignment(classes []pomdp.HoleClass, memorySize []int, assignment family.DesignSpace) (*FSC, error) {
	if assignment.NumHoles() != len(classes) {
 return nil, fmt.Errorf("fsc: assignment has %d holes, classes describe %d", assignment.NumHoles(), len(classes))
	}

	numObservations := len(memorySize)
	numNodes := 0
	for _, m := range memorySize {
 if m > numNodes {
 numNodes = m
 }
	}

	f := New(numNodes, numObservations, true)
	for h, c := range classes {
 hole := assignment.Hole(h)
 if !hole.IsFixed() {
 return nil, fmt.Errorf("fsc: hole %d (%s) is not fixed in assignment", h, hole.Name())
 }
 option := hole.FixedOption()
 if c.Node >= numNodes {
 continue
 }
 if c.Action {
 f.ActionFunction[c.Node][c.Observation] = DeterministicAction(option)
 } else {
 f.UpdateFunction[c.Node][c.Observation] = option
 }
	}
	return f, nil
}
