package pomdp

import (
	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/quotient"
	"github.com/dsynth/quotientsynth/pkg/spec"
	"github.com/dsynth/quotientsynth/pkg/synth"
)

// SynthesizerFactory builds the inner synthesizer the driver runs
// against each iteration's restricted design space.
type SynthesizerFactory func(ctx synth.Context) synth.Synthesizer

// Driver implements the POMDP memory-refinement loop: start with
// memory size 1 everywhere, repeatedly score every hole, inject memory
// at the highest-scoring action hole's observation, and stop once the
// optimum can no longer improve or no hole scores positively.
//
// The driver assumes the specification carries an optimizing
// objective.
type Driver struct {
	Model MemoryModel
	Specification *spec.Specification
	Checker quotient.ModelChecker
	NewSynthesizer SynthesizerFactory
	MaxIterations int
}

// NewDriver constructs a POMDP refinement driver with the default
// 3-iteration cap.
func NewDriver(model MemoryModel, specification *spec.Specification, checker quotient.ModelChecker, newSynth SynthesizerFactory) *Driver {
	return &Driver{Model: model, Specification: specification, Checker: checker, NewSynthesizer: newSynth, MaxIterations: 3}
}

// Result is the outcome of a refinement run.
type Result struct {
	Best *family.DesignSpace
	Iterations int
	MemorySize []int
}

func allConstraintIndices(s *spec.Specification) []int {
	out := make([]int, len(s.Constraints))
	for i := range out {
 out[i] = i
	}
	return out
}

// Run executes the memory-injection loop.
func (d *Driver) Run() (Result, error) {
	if !d.Specification.HasOptimality() {
 return Result{}, family.NewValidationError("pomdp: Driver requires a specification with an optimality objective")
	}

	numObs := d.Model.NumObservations()
	memorySize := make([]int, numObs)
	for i := range memorySize {
 memorySize[i] = 1
	}

	actionTrees := make([]*HoleTree, numObs)
	memoryTrees := make([]*HoleTree, numObs)

	maxIter := d.MaxIterations
	if maxIter <= 0 {
 maxIter = 3
	}

	var best *family.DesignSpace
	var iter int
	for ; iter < maxIter; iter++ {
 q, space, classes, err := d.Model.Build(memorySize)
 if err != nil {
 return Result{}, err
 }
 if iter == 0 {
 initTrees(classes, space, actionTrees, memoryTrees)
 }
 space = restrictFromTrees(space, classes, actionTrees, memoryTrees)

 model, err := q.Build(space)
 if err != nil {
 return Result{}, err
 }
 analysis, err := quotient.CheckSpecification(d.Checker, model, d.Specification, allConstraintIndices(d.Specification), false)
 if err != nil {
 return Result{}, err
 }

 // the symmetry-free quotient's optimizing bound no longer beats
 // the held optimum, so no further memory can help.
 if analysis.Specification.Optimality != nil && !analysis.Specification.Optimality.Improves {
 break
 }

 ctx := synth.Context{Quotient: q, Specification: d.Specification, Checker: d.Checker}
 witness, err := d.NewSynthesizer(ctx).Synthesize(space)
 if err != nil {
 return Result{}, err
 }
 if witness != nil {
 best = witness
 }

 scores := HoleScores(q, model, analysis)
 actionScores := map[int]float64{}
 for h, s := range scores {
 if classes[h].Action {
 actionScores[h] = s
 }
 }
 selectedHole, ok := TopScoringHole(actionScores)
 if !ok {
 break
 }

 result, ok := primarySelectionResult(analysis)
 if !ok {
 break
 }
 selection := q.SchedulerSelection(model, result)
 selectedOptions := selection[selectedHole]
 if len(selectedOptions) < 2 {
 break
 }

 class := classes[selectedHole]
 newIndices := actionTrees[class.Observation].Split(class.Node, selectedOptions)
 affected := d.Model.IncreaseMemorySize(class.Observation, memorySize)
 for _, obs := range affected {
 if memoryTrees[obs] != nil {
 memoryTrees[obs].UpdateMemoryUpdates(class.Node, newIndices)
 }
 }
	}

	return Result{Best: best, Iterations: iter, MemorySize: memorySize}, nil
}

// primarySelectionResult picks the scheduler result the hole-injection
// decision is taken from: the optimality objective's check result.
func primarySelectionResult(analysis quotient.AnalysisResult) (quotient.CheckResult, bool) {
	if analysis.OptimalityCheck != nil {
 return *analysis.OptimalityCheck, true
	}
	return quotient.CheckResult{}, false
}

// initTrees seeds one HoleTree per observation per hole kind, rooted at
// that hole's full option set, the first time memory size 1 is built.
func initTrees(classes []HoleClass, space family.DesignSpace, actionTrees, memoryTrees []*HoleTree) {
	for h, c := range classes {
 if c.Node != 0 {
 continue
 }
 tree := NewHoleTree(space.Hole(h).Options())
 if c.Action {
 actionTrees[c.Observation] = tree
 } else {
 memoryTrees[c.Observation] = tree
 }
	}
}

// restrictFromTrees applies every tree node's current option subset to
// its corresponding hole. A hole whose (observation, node) pair has no
// matching tree node yet — a memory value created after the tree was
// last updated — is left at its full default option range.
func restrictFromTrees(space family.DesignSpace, classes []HoleClass, actionTrees, memoryTrees []*HoleTree) family.DesignSpace {
	for h, c := range classes {
 var tree *HoleTree
 if c.Action {
 tree = actionTrees[c.Observation]
 } else {
 tree = memoryTrees[c.Observation]
 }
 if tree == nil || c.Node >= tree.NumNodes() {
 continue
 }
 width := space.Hole(h).OptionSet().Width()
 subset := family.NewOptionSet(width, tree.Node(c.Node))
 space = space.Subholes(h, subset)
	}
	return space
}
