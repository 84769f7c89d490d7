package family

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullOptionSet(t *testing.T) {
	s := FullOptionSet(5)
	require.Equal(t, 5, s.Count())
	for i := 0; i < 5; i++ {
		assert.True(t, s.Contains(i))
	}
	assert.False(t, s.Contains(5))
	assert.False(t, s.Contains(-1))
}

func TestOptionSetIntersectUnion(t *testing.T) {
	a := NewOptionSet(8, []int{0, 1, 2, 3})
	b := NewOptionSet(8, []int{2, 3, 4, 5})

	inter := a.Intersect(b)
	assert.Equal(t, []int{2, 3}, inter.Options())

	union := a.Union(b)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, union.Options())

	without := a.Without(b)
	assert.Equal(t, []int{0, 1}, without.Options())
}

func TestOptionSetSingleton(t *testing.T) {
	s := NewOptionSet(4, []int{2})
	require.True(t, s.IsSingleton())
	assert.Equal(t, 2, s.SingletonValue())
}

func TestOptionSetEqualAndEmpty(t *testing.T) {
	a := NewOptionSet(4, []int{1, 2})
	b := NewOptionSet(4, []int{2, 1})
	assert.True(t, a.Equal(b))

	empty := NewOptionSet(4, nil)
	assert.True(t, empty.Empty())
	assert.False(t, a.Empty())
}

func TestOptionSetWideAcrossWords(t *testing.T) {
	// exercise the >64-bit word boundary
	s := FullOptionSet(130)
	assert.Equal(t, 130, s.Count())
	assert.True(t, s.Contains(129))
	assert.False(t, s.Contains(130))

	r := s.Without(NewOptionSet(130, []int{64, 65, 129}))
	assert.Equal(t, 127, r.Count())
	assert.False(t, r.Contains(129))
}
