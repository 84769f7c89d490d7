package fsc

import (
	"fmt"
	"math/rand"

	"github.com/dsynth/quotientsynth/pkg/pomdp"
	"github.com/dsynth/quotientsynth/pkg/quotient"
)

// SimulationResult summarizes a Monte-Carlo re-simulation of an FSC
// against a POMDP.
type SimulationResult struct {
	Trials int
	Reached int
	// Value is Reached/Trials, the re-simulated reachability-probability
	// estimate.
	Value float64
}

// Simulate runs trials independent rollouts of f controlling p, each
// for at most maxSteps transitions starting at f's memory node 0 and
// p's initial state, and reports the fraction of rollouts that reached
// a target state. This is a Monte-Carlo estimate, not exact
// probabilistic model checking of the FSC-POMDP product.
func Simulate(p *pomdp.ObservationPOMDP, f *FSC, trials, maxSteps int, rng *rand.Rand) (SimulationResult, error) {
	if got, want := f.NumObservations, numObservations(p); got != want {
 return SimulationResult{}, fmt.Errorf("fsc: controller has %d observations, pomdp has %d", got, want)
	}

	result := SimulationResult{Trials: trials}
	for t := 0; t < trials; t++ {
 if rollout(p, f, maxSteps, rng) {
 result.Reached++
 }
	}
	if trials > 0 {
 result.Value = float64(result.Reached) / float64(trials)
	}
	return result, nil
}

func numObservations(p *pomdp.ObservationPOMDP) int {
	max := -1
	for _, z := range p.StateObservation {
 if z > max {
 max = z
 }
	}
	return max + 1
}

func rollout(p *pomdp.ObservationPOMDP, f *FSC, maxSteps int, rng *rand.Rand) bool {
	state := p.InitialState
	node := 0
	for step := 0; step < maxSteps; step++ {
 if p.Target[state] {
 return true
 }
 obs := p.StateObservation[state]
 action := sampleAction(f.ActionFunction[node][obs], rng)
 state = sampleSuccessor(p.Successors[state][action], rng)
 node = f.UpdateFunction[node][obs]
	}
	return p.Target[state]
}

func sampleAction(choice ActionChoice, rng *rand.Rand) int {
	if choice.IsDeterministic() {
 return choice.Action()
	}
	actions := choice.sortedActions()
	u := rng.Float64()
	cumulative := 0.0
	for _, a := range actions {
 cumulative += choice.distribution[a]
 if u <= cumulative {
 return a
 }
	}
	return actions[len(actions)-1]
}

func sampleSuccessor(successors []quotient.Successor, rng *rand.Rand) int {
	u := rng.Float64()
	cumulative := 0.0
	for _, s := range successors {
 cumulative += s.Probability
 if u <= cumulative {
 return s.State
 }
	}
	return successors[len(successors)-1].State
}
