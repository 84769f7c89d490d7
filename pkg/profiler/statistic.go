package profiler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/quotient"
	"github.com/dsynth/quotientsynth/pkg/spec"
	"github.com/google/uuid"
)

// ApproxZero stands in for a divisor that is exactly zero, so summary
// percentages degrade to a very large (not infinite or NaN) estimate
// instead of panicking or reporting garbage.
const ApproxZero = 0.000001

// safeDivide divides dividend by divisor, substituting ApproxZero for
// an exactly-zero divisor.
func safeDivide(dividend, divisor float64) float64 {
	if divisor == 0 {
 return dividend / ApproxZero
	}
	return dividend / divisor
}

// counter accumulates one model-checking kind's iteration count and
// total model size, reporting "not applicable" (has == false) until its
// first observation.
type counter struct {
	has bool
	iterations int
	accumulated int
}

func (c *counter) observe(size int) {
	c.has = true
	c.iterations++
	c.accumulated += size
}

func (c *counter) average() float64 {
	return safeDivide(float64(c.accumulated), float64(c.iterations))
}

// Statistic accumulates one synthesis run's timing and per-iteration
// counters and renders them as progress and summary reports. It is an
// explicit value built by the caller, not a process-wide singleton. No
// synthesizer in pkg/synth reports to it: the iteration counters and the
// explored count stay at zero unless the caller invokes IterationDTMC,
// IterationMDP, IterationGame or ReportExplored itself.
type Statistic struct {
	RunID string
	MethodName string

	quotient *quotient.Quotient
	root family.DesignSpace
	specification *spec.Specification

	timer Timer

	dtmc counter
	mdp counter
	game counter

	feasible bool
	hasAssignment bool
	assignment family.DesignSpace

	statusPeriod time.Duration
	statusHorizon time.Duration

	// explored is the number of family-size units ruled out or resolved
	// so far, as last reported via ReportExplored; maybeReportStatus
	// reads this instead of requiring every iteration call site to pass
	// it through.
	explored int64

	// OnStatus, if set, is invoked with a progress line at most once per
	// StatusPeriod of elapsed wall time, in place of printing directly
	// to stdout.
	OnStatus func(string)
}

// ReportExplored updates the number of family-size units the
// synthesizer has ruled out or resolved so far. Only explicit calls
// update it; no synthesizer in pkg/synth calls it.
func (s *Statistic) ReportExplored(explored int64) { s.explored = explored }

// NewStatistic constructs a Statistic for one synthesis run over q,
// rooted at root, checked against specification, identified by
// methodName. A fresh run ID is minted via uuid.
func NewStatistic(q *quotient.Quotient, root family.DesignSpace, specification *spec.Specification, methodName string) *Statistic {
	return &Statistic{
 RunID: uuid.New().String(),
 MethodName: methodName,
 quotient: q,
 root: root,
 specification: specification,
 statusPeriod: 3 * time.Second,
	}
}

// SetStatusPeriod overrides the default 3-second status throttle.
func (s *Statistic) SetStatusPeriod(d time.Duration) { s.statusPeriod = d }

// Start begins timing the run and returns a guard; call via
// defer stat.Start()() around the synthesis loop so the timer always
// stops, even if the loop returns early or panics.
func (s *Statistic) Start() func() { return s.timer.Start() }

// IterationDTMC records one CEGIS iteration that checked a DTMC of the
// given number of states.
func (s *Statistic) IterationDTMC(size int) {
	s.dtmc.observe(size)
	s.maybeReportStatus()
}

// IterationMDP records one AR iteration that checked an MDP of the
// given number of states.
func (s *Statistic) IterationMDP(size int) {
	s.mdp.observe(size)
	s.maybeReportStatus()
}

// IterationGame records one game-abstraction iteration (the POMDP
// memory-refinement driver's per-round unfolded product) of the given
// number of states.
func (s *Statistic) IterationGame(size int) {
	s.game.observe(size)
	s.maybeReportStatus()
}

func (s *Statistic) maybeReportStatus() {
	if s.OnStatus == nil {
 return
	}
	elapsed := s.timer.Read()
	if elapsed <= s.statusHorizon {
 return
	}
	s.OnStatus(s.status())
	s.statusHorizon = elapsed + s.statusPeriod
}

// status renders one progress line: elapsed/estimated time, percentage
// explored, per-kind iteration counts, and the current optimum if any.
func (s *Statistic) status() string {
	var b strings.Builder
	b.WriteString("> ")

	total := s.root.Size().Int64()
	fractionExplored := safeDivide(float64(s.explored), float64(total))
	b.WriteString(fmt.Sprintf("progress %.3f%%", fractionExplored*100))

	elapsed := s.timer.Read()
	b.WriteString(fmt.Sprintf(", elapsed %ds", int(elapsed.Seconds())))

	estimateSeconds := safeDivide(elapsed.Seconds(), fractionExplored)
	b.WriteString(fmt.Sprintf(", estimated %ds", int(estimateSeconds)))
	if hrs := estimateSeconds / 3600; hrs > 1 {
 b.WriteString(fmt.Sprintf(" (%.1f hrs)", hrs))
	}

	var iters []string
	if s.game.has {
 iters = append(iters, strconv.Itoa(s.game.iterations))
	}
	if s.mdp.has {
 iters = append(iters, strconv.Itoa(s.mdp.iterations))
	}
	if s.dtmc.has {
 iters = append(iters, strconv.Itoa(s.dtmc.iterations))
	}
	b.WriteString(", iters = (" + strings.Join(iters, ", ") + ")")

	if s.specification.HasOptimality() {
 if optimum, ok := s.specification.Optimality.Optimum(); ok {
 b.WriteString(fmt.Sprintf(", opt = %.3f", optimum))
 }
	}
	return b.String()
}

// Status renders the current progress line.
func (s *Statistic) Status() string { return s.status() }

// NewFSCFound records that the search improved on the current optimum;
// kept as an explicit hook for a caller that wants to log or checkpoint
// on improvement without threading that logic through the search loop.
func (s *Statistic) NewFSCFound(value float64, assignment family.DesignSpace) {}

// Finished stops the timer and records the final verdict: whether
// assignment (nil if none) was feasible.
func (s *Statistic) Finished(assignment *family.DesignSpace) {
	s.timer.stop()
	s.feasible = assignment != nil
	s.hasAssignment = assignment != nil
	if assignment != nil {
 s.assignment = *assignment
	}
}

// Summary renders the full end-of-run report: specification, timing,
// design-space size, explored fraction, per-kind iteration stats, and
// the final verdict.
func (s *Statistic) Summary() string {
	var b strings.Builder
	const sep = "--------------------\n"

	b.WriteString(sep)
	b.WriteString("synthesis summary\n")

	for i, c := range s.specification.Constraints {
 b.WriteString(fmt.Sprintf("constraint %d: %s\n", i+1, c))
	}
	if s.specification.HasOptimality() {
 b.WriteString(fmt.Sprintf("optimality objective: %s\n", s.specification.Optimality))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("method: %s, synthesis time: %.2fs\n", s.MethodName, s.timer.Read().Seconds()))

	superStates, superActions := 0, 0
	if s.quotient != nil && s.quotient.Model != nil {
 superStates = s.quotient.Model.NumStates
 superActions = s.quotient.Model.NumChoices()
	}
	b.WriteString(fmt.Sprintf(
 "number of holes: %d, family size: %s, super quotient: %d states / %d actions\n",
 s.root.NumHoles(), s.root.Size().String(), superStates, superActions,
	))

	total := s.root.Size().Int64()
	percentExplored := int(safeDivide(float64(s.explored), float64(total)) * 100)
	b.WriteString(fmt.Sprintf("explored: %d%%\n\n", percentExplored))

	if s.game.has {
 b.WriteString(fmt.Sprintf("game stats: avg model size: %.0f, iterations: %d\n", s.game.average(), s.game.iterations))
	}
	if s.mdp.has {
 b.WriteString(fmt.Sprintf("AR stats: avg MDP size: %.0f, iterations: %d\n", s.mdp.average(), s.mdp.iterations))
	}
	if s.dtmc.has {
 b.WriteString(fmt.Sprintf("CEGIS stats: avg DTMC size: %.0f, iterations: %d\n", s.dtmc.average(), s.dtmc.iterations))
	}
	b.WriteString("\n")

	if optimum, ok := s.optimum(); ok {
 b.WriteString(fmt.Sprintf("optimal: %.6f\n", optimum))
	} else if s.feasible {
 b.WriteString("feasible: yes\n")
	} else {
 b.WriteString("feasible: no\n")
	}

	b.WriteString(sep)
	return b.String()
}

// Assignment returns the final hole assignment found, if the run was
// feasible.
func (s *Statistic) Assignment() (family.DesignSpace, bool) {
	return s.assignment, s.hasAssignment
}

func (s *Statistic) optimum() (float64, bool) {
	if s.specification == nil || !s.specification.HasOptimality() {
 return 0, false
	}
	return s.specification.Optimality.Optimum()
}

// String renders the end-of-run summary report.
func (s *Statistic) String() string { return s.Summary() }
