package quotient

import (
	"fmt"
	"sort"

	"github.com/dsynth/quotientsynth/pkg/family"
)

// SchedulerSelection reads, per hole, the distinct options the
// scheduler committed to across all states of sub. A hole with more
// than one distinct option is inconsistent: different members of the
// family would need different options to realize this scheduler, so
// the sub-family cannot yet be collapsed to a single verdict on that
// hole.
func (q *Quotient) SchedulerSelection(sub *Model, result CheckResult) map[int][]int {
	seen := map[int]map[int]bool{}
	for _, choiceLocal := range result.Scheduler {
 if choiceLocal < 0 {
 continue
 }
 quotientChoice := sub.QuotientChoiceMap[choiceLocal]
 for _, req := range q.Coloring.Requirements[quotientChoice] {
 if seen[req.Hole] == nil {
 seen[req.Hole] = map[int]bool{}
 }
 seen[req.Hole][req.Option] = true
 }
	}
	out := map[int][]int{}
	for h, set := range seen {
 opts := make([]int, 0, len(set))
 for o := range set {
 opts = append(opts, o)
 }
 sort.Ints(opts)
 out[h] = opts
	}
	return out
}

// IsConsistent reports whether every hole in selection has exactly one
// scheduled option, meaning the scheduler represents a single concrete
// choice for every relevant hole.
func IsConsistent(selection map[int][]int) bool {
	for _, opts := range selection {
 if len(opts) > 1 {
 return false
 }
	}
	return true
}

// SchedulerScores assigns each inconsistent hole a score proportional
// to how much the scheduler's decision mattered where that hole's
// options diverged: the summed gap between the chosen choice's value
// and the best value achievable by a different choice available at the
// same state, with each state weighted uniformly.
func (q *Quotient) SchedulerScores(sub *Model, result CheckResult, selection map[int][]int, minimizing bool) map[int]float64 {
	scores := map[int]float64{}
	for s, choiceLocal := range result.Scheduler {
 if choiceLocal < 0 {
 continue
 }
 choices := sub.StateChoices[s]
 if len(choices) < 2 {
 continue
 }
 chosenValue := choiceValue(sub, choiceLocal, result.Values, sub.Reward != nil)
 altBest := chosenValue
 found := false
 for _, alt := range choices {
 if alt == choiceLocal {
 continue
 }
 v := choiceValue(sub, alt, result.Values, sub.Reward != nil)
 if !found {
 altBest, found = v, true
 continue
 }
 if (minimizing && v < altBest) || (!minimizing && v > altBest) {
 altBest = v
 }
 }
 if !found {
 continue
 }
 gap := chosenValue - altBest
 if gap < 0 {
 gap = -gap
 }
 quotientChoice := sub.QuotientChoiceMap[choiceLocal]
 for _, req := range q.Coloring.Requirements[quotientChoice] {
 if len(selection[req.Hole]) > 1 {
 scores[req.Hole] += gap
 }
 }
	}
	return scores
}

// MaxScoreHoles returns the inconsistent hole(s) with the maximum
// score, for splitter tie-breaking.
func MaxScoreHoles(scores map[int]float64) []int {
	best := -1.0
	var holes []int
	for h, s := range scores {
 switch {
 case s > best:
 best = s
 holes = []int{h}
 case s == best:
 holes = append(holes, h)
 }
	}
	sort.Ints(holes)
	return holes
}

// Split chooses the highest-scoring inconsistent hole and partitions
// its current options into the scheduler-preferred subset versus the
// rest, producing disjoint sub-families that cover space.
func (q *Quotient) Split(space family.DesignSpace, selection map[int][]int, scores map[int]float64) ([]family.DesignSpace, int, error) {
	splitters := MaxScoreHoles(scores)
	if len(splitters) == 0 {
 return nil, -1, fmt.Errorf("quotient: split called with no inconsistent hole")
	}
	splitter := splitters[0]

	hole := space.Hole(splitter)
	width := hole.OptionSet().Width()
	var preferred []int
	for _, o := range selection[splitter] {
 if hole.Contains(o) {
 preferred = append(preferred, o)
 }
	}
	preferredSet := family.NewOptionSet(width, preferred)
	rest := hole.OptionSet().Without(preferredSet)

	var subsets []family.OptionSet
	if preferredSet.Empty() || rest.Empty() {
 // degenerate scheduler preference: fall back to a half split
 opts := hole.Options()
 mid := len(opts) / 2
 subsets = []family.OptionSet{
 family.NewOptionSet(width, opts[:mid]),
 family.NewOptionSet(width, opts[mid:]),
 }
	} else {
 subsets = []family.OptionSet{preferredSet, rest}
	}

	return space.Split(splitter, subsets), splitter, nil
}
