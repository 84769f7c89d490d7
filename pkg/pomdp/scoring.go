package pomdp

import "github.com/dsynth/quotientsynth/pkg/quotient"

// HoleScores sums, for every hole, its inconsistency score across
// every property checked on model — every constraint plus the
// optimality objective when present.
func HoleScores(q *quotient.Quotient, model *quotient.Model, analysis quotient.AnalysisResult) map[int]float64 {
	total := map[int]float64{}
	accumulate := func(result quotient.CheckResult) {
 selection := q.SchedulerSelection(model, result)
 for h, s := range q.SchedulerScores(model, result, selection, false) {
 total[h] += s
 }
	}
	for _, result := range analysis.CheckResults {
 accumulate(result)
	}
	if analysis.OptimalityCheck != nil {
 accumulate(*analysis.OptimalityCheck)
	}
	return total
}

// TopScoringHole picks the highest-scoring hole in scores, after
// discarding any hole scoring at most 1% of the maximum. ok is false
// when no hole survives the filter.
func TopScoringHole(scores map[int]float64) (hole int, ok bool) {
	max := 0.0
	for _, s := range scores {
 if s > max {
 max = s
 }
	}
	if max <= 0 {
 return 0, false
	}

	best, bestScore := 0, -1.0
	found := false
	for h, s := range scores {
 if s/max <= 0.01 {
 continue
 }
 if !found || s > bestScore || (s == bestScore && h < best) {
 best, bestScore, found = h, s, true
 }
	}
	return best, found
}
