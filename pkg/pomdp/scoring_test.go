package pomdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopScoringHolePicksMax(t *testing.T) {
	h, ok := TopScoringHole(map[int]float64{0: 1.0, 1: 5.0, 2: 2.0})
	assert.True(t, ok)
	assert.Equal(t, 1, h)
}

func TestTopScoringHoleFiltersBelowOnePercentOfMax(t *testing.T) {
	h, ok := TopScoringHole(map[int]float64{0: 100.0, 1: 0.5})
	assert.True(t, ok)
	assert.Equal(t, 0, h)
}

func TestTopScoringHoleTieBreaksTowardSmallerIndex(t *testing.T) {
	h, ok := TopScoringHole(map[int]float64{3: 2.0, 1: 2.0, 2: 2.0})
	assert.True(t, ok)
	assert.Equal(t, 1, h)
}

func TestTopScoringHoleNoPositiveScores(t *testing.T) {
	_, ok := TopScoringHole(map[int]float64{0: 0, 1: 0})
	assert.False(t, ok)
}

func TestTopScoringHoleEmpty(t *testing.T) {
	_, ok := TopScoringHole(map[int]float64{})
	assert.False(t, ok)
}
