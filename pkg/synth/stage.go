package synth

import "time"

// StageController arbitrates time between AR and CEGIS for Hybrid,
// rebalancing based on measured pruning efficiency.
type StageController struct {
	membersTotal float64
	prunedAR float64
	prunedCegis float64

	arStart time.Time
	arElapsed time.Duration
	cegisStart time.Time
	cegisElapsed time.Duration

	// CegisEfficiency is the multiplier deriving how long CEGIS may run
	// relative to AR's last measured time: t_cegis < t_ar * efficiency.
	CegisEfficiency float64

	// StrategyEqual keeps CegisEfficiency constant instead of
	// recomputing it from pruning rates.
	StrategyEqual bool
}

// NewStageController constructs a controller for a family of the given
// total member count.
func NewStageController(membersTotal float64) *StageController {
	return &StageController{membersTotal: membersTotal, CegisEfficiency: 10}
}

// StartAR stops the CEGIS timer and resumes the AR timer.
func (s *StageController) StartAR() {
	s.stopCegis()
	s.arStart = now()
}

// StartCegis stops the AR timer and resumes the CEGIS timer.
func (s *StageController) StartCegis() {
	s.stopAR()
	s.cegisStart = now()
}

func (s *StageController) stopAR() {
	if !s.arStart.IsZero() {
 s.arElapsed += now().Sub(s.arStart)
 s.arStart = time.Time{}
	}
}

func (s *StageController) stopCegis() {
	if !s.cegisStart.IsZero() {
 s.cegisElapsed += now().Sub(s.cegisStart)
 s.cegisStart = time.Time{}
	}
}

func (s *StageController) arTime() time.Duration {
	if s.arStart.IsZero() {
 return s.arElapsed
	}
	return s.arElapsed + now().Sub(s.arStart)
}

func (s *StageController) cegisTime() time.Duration {
	if s.cegisStart.IsZero() {
 return s.cegisElapsed
	}
	return s.cegisElapsed + now().Sub(s.cegisStart)
}

// PruneAR records that a fraction of the family was pruned by AR.
func (s *StageController) PruneAR(pruned float64) {
	if s.membersTotal > 0 {
 s.prunedAR += pruned / s.membersTotal
	}
}

// PruneCegis records that a fraction of the family was pruned by CEGIS.
func (s *StageController) PruneCegis(pruned float64) {
	if s.membersTotal > 0 {
 s.prunedCegis += pruned / s.membersTotal
	}
}

// CegisStep reports whether CEGIS's time budget on the current family
// has expired. On expiry it recomputes CegisEfficiency from the
// pruning rates observed so far, unless StrategyEqual is set.
func (s *StageController) CegisStep() bool {
	if float64(s.cegisTime()) < float64(s.arTime())*s.CegisEfficiency {
 return false
	}
	s.stopCegis()

	if s.StrategyEqual {
 return true
	}
	switch {
	case s.prunedAR == 0 && s.prunedCegis == 0:
 s.CegisEfficiency = 1
	case s.prunedAR == 0 && s.prunedCegis > 0:
 s.CegisEfficiency = 2
	case s.prunedAR > 0 && s.prunedCegis == 0:
 s.CegisEfficiency = 0.5
	default:
 successCegis := s.prunedCegis / s.cegisTime().Seconds()
 successAR := s.prunedAR / s.arTime().Seconds()
 s.CegisEfficiency = successCegis / successAR
	}
	return true
}

// now is a seam so tests can stub wall-clock time; production code
// always uses the real clock.
var now = time.Now
