package family

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoleFullDomain(t *testing.T) {
	h := NewHole("X", []string{"0", "1", "2"})
	require.Equal(t, 3, h.Size())
	assert.Equal(t, []int{0, 1, 2}, h.Options())
	assert.Equal(t, "1", h.Label(1))
	assert.False(t, h.IsFixed())
}

func TestHoleRestrictNeverGrows(t *testing.T) {
	h := NewHole("Y", []string{"a", "b", "c", "d"})
	h = h.RestrictToOptions([]int{1, 2})
	assert.Equal(t, []int{1, 2}, h.Options())

	// restricting to a superset of the original full domain must not
	// grow the hole back past its current options
	grown := h.RestrictToOptions([]int{0, 1, 2, 3})
	assert.Equal(t, []int{1, 2}, grown.Options())
}

func TestHoleFixed(t *testing.T) {
	h := NewHole("Z", []string{"lo", "hi"})
	h = h.RestrictToOptions([]int{1})
	require.True(t, h.IsFixed())
	assert.Equal(t, 1, h.FixedOption())
	assert.Equal(t, "hi", h.Label(h.FixedOption()))
}
