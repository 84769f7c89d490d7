package family

import "math/big"

// Excluder is the CEGIS-facing view of a design space: it hands out
// assignments one at a time and remembers which generalizations of
// past assignments have been excluded by a conflict.
type Excluder interface {
	// PickAssignment returns the next assignment consistent with every
	// exclusion recorded so far, or ok=false once the family is
	// exhausted.
	PickAssignment() (assignment DesignSpace, ok bool)

	// ExcludeAssignment forbids every assignment that agrees with
	// assignment on exactly the holes in conflictHoles. Returns a
	// pruning estimate: the number of assignments thereby eliminated.
	ExcludeAssignment(assignment DesignSpace, conflictHoles []int) *big.Int
}

// conflict is a frozen (hole -> option) partial assignment that has
// been proven to cause a specification violation.
type conflict map[int]int

// matches reports whether pos (a full set of per-hole option picks)
// agrees with c on every hole c mentions.
func (c conflict) matches(pos []int) bool {
	for hole, option := range c {
 if pos[hole] != option {
 return false
 }
	}
	return true
}

// BitsetExcluder realizes SMT-backed conflict exclusion directly over
// each hole's bitset, since every hole's domain already is a small
// finite set. It enumerates assignments in a fixed mixed-radix order
// over the root design space's option lists and skips any candidate
// matching a recorded conflict.
type BitsetExcluder struct {
	space DesignSpace
	optionLists [][]int // per hole, its options at construction time, ascending
	cursor []int // current position into optionLists, one per hole
	started bool
	exhausted bool
	conflicts []conflict
}

// NewBitsetExcluder seeds the exclusion oracle over space (normally the
// family a CEGIS loop is currently working on).
func NewBitsetExcluder(space DesignSpace) *BitsetExcluder {
	lists := make([][]int, space.NumHoles())
	for i, h := range space.Holes() {
 lists[i] = h.Options()
	}
	return &BitsetExcluder{
 space: space,
 optionLists: lists,
 cursor: make([]int, space.NumHoles()),
	}
}

func (e *BitsetExcluder) advance() bool {
	if !e.started {
 e.started = true
 for _, list := range e.optionLists {
 if len(list) == 0 {
 return false
 }
 }
 return true
	}
	i := len(e.cursor) - 1
	for i >= 0 {
 e.cursor[i]++
 if e.cursor[i] < len(e.optionLists[i]) {
 return true
 }
 e.cursor[i] = 0
 i--
	}
	return false
}

func (e *BitsetExcluder) currentOptions() []int {
	opts := make([]int, len(e.cursor))
	for i, pos := range e.cursor {
 opts[i] = e.optionLists[i][pos]
	}
	return opts
}

func (e *BitsetExcluder) isBanned(opts []int) bool {
	for _, c := range e.conflicts {
 if c.matches(opts) {
 return true
 }
	}
	return false
}

// PickAssignment implements Excluder.
func (e *BitsetExcluder) PickAssignment() (DesignSpace, bool) {
	if e.exhausted {
 return DesignSpace{}, false
	}
	if len(e.optionLists) == 0 {
 if !e.started {
 e.started = true
 e.exhausted = true
 return e.space, true
 }
 e.exhausted = true
 return DesignSpace{}, false
	}
	for {
 if !e.advance() {
 e.exhausted = true
 return DesignSpace{}, false
 }
 opts := e.currentOptions()
 if e.isBanned(opts) {
 continue
 }
 return e.space.ConstructAssignment(e.cursor), true
	}
}

// ExcludeAssignment implements Excluder.
func (e *BitsetExcluder) ExcludeAssignment(assignment DesignSpace, conflictHoles []int) *big.Int {
	c := make(conflict, len(conflictHoles))
	for _, hole := range conflictHoles {
 c[hole] = assignment.Hole(hole).FixedOption()
	}
	e.conflicts = append(e.conflicts, c)

	estimate := big.NewInt(1)
	inConflict := make(map[int]bool, len(conflictHoles))
	for _, h := range conflictHoles {
 inConflict[h] = true
	}
	for i, h := range e.space.Holes() {
 if !inConflict[i] {
 estimate.Mul(estimate, big.NewInt(int64(h.Size())))
 }
	}
	return estimate
}
