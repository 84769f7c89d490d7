package pomdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHoleTreeSplitExcludesOneOptionPerChild(t *testing.T) {
	tree := NewHoleTree([]int{0, 1})
	newIndices := tree.Split(0, []int{0, 1})

	assert.Equal(t, []int{1}, newIndices)
	assert.Equal(t, []int{1}, tree.Node(0))
	assert.Equal(t, []int{0}, tree.Node(1))
	assert.Equal(t, 2, tree.NumNodes())
}

func TestHoleTreeSplitWithThreeInconsistentOptions(t *testing.T) {
	tree := NewHoleTree([]int{0, 1, 2})
	newIndices := tree.Split(0, []int{0, 1, 2})

	assert.Equal(t, []int{1, 2}, newIndices)
	assert.Equal(t, []int{1, 2}, tree.Node(0))
	assert.Equal(t, []int{0, 2}, tree.Node(1))
	assert.Equal(t, []int{0, 1}, tree.Node(2))
}

func TestHoleTreeSplitKeepsNonConflictingOptions(t *testing.T) {
	// A node whose option set is wider than the inconsistent subset keeps
	// the options the scheduler never disagreed about.
	tree := NewHoleTree([]int{0, 1, 2, 3})
	newIndices := tree.Split(0, []int{1, 2})

	assert.Equal(t, []int{1}, newIndices)
	assert.Equal(t, []int{0, 2, 3}, tree.Node(0))
	assert.Equal(t, []int{0, 1, 3}, tree.Node(1))
}

func TestHoleTreeUpdateMemoryUpdatesExtendsMatchingNodes(t *testing.T) {
	tree := NewHoleTree([]int{0})
	tree.UpdateMemoryUpdates(0, []int{1, 2})

	assert.Equal(t, []int{0, 1, 2}, tree.Node(0))
}

func TestHoleTreeUpdateMemoryUpdatesSkipsNonMatchingNodes(t *testing.T) {
	tree := NewHoleTree([]int{5})
	tree.UpdateMemoryUpdates(0, []int{1})

	assert.Equal(t, []int{5}, tree.Node(0))
}

func TestHoleTreeString(t *testing.T) {
	tree := NewHoleTree([]int{0, 1})
	assert.Equal(t, "[[0 1]]", tree.String())
}
