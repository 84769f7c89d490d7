package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneByOneFindsTheOnlySatisfyingAssignment(t *testing.T) {
	ctx := testContext(reachabilitySpecification())
	s := NewOneByOne(ctx)

	witness, err := s.Synthesize(testSpace())
	require.NoError(t, err)
	require.NotNil(t, witness)
	assert.Equal(t, "X=1", witness.String())
}

func TestOneByOneReturnsNilWhenNoAssignmentSatisfies(t *testing.T) {
	specification := reachabilitySpecification()
	specification.Constraints[0].Threshold = 1.5 // unsatisfiable
	ctx := testContext(specification)
	s := NewOneByOne(ctx)

	witness, err := s.Synthesize(testSpace())
	require.NoError(t, err)
	assert.Nil(t, witness)
}

func TestOneByOneMethodName(t *testing.T) {
	assert.Equal(t, "1-by-1", NewOneByOne(testContext(reachabilitySpecification())).MethodName())
}
