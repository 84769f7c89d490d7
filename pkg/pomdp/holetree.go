// Package pomdp implements the memory-refinement driver that wraps an
// inner AR/Hybrid synthesizer to build finite-state controllers for
// partially observable models, iteratively injecting memory at the
// observation whose scheduler disagreement scores highest.
package pomdp

import "fmt"

// HoleTree tracks how a single hole's option set fragments across
// memory nodes as the driver breaks symmetry between previously tied
// options. There are no parent pointers: nodes are addressed by index
// into a flat arena.
type HoleTree struct {
	nodes [][]int
}

// NewHoleTree creates a single-node tree rooted at the given option set.
func NewHoleTree(options []int) *HoleTree {
	root := append([]int(nil), options...)
	return &HoleTree{nodes: [][]int{root}}
}

// NumNodes returns the number of tree nodes.
func (t *HoleTree) NumNodes() int { return len(t.nodes) }

// Node returns the option subset currently held at tree node i.
func (t *HoleTree) Node(i int) []int { return t.nodes[i] }

// String renders every node's option subset, comma-separated.
func (t *HoleTree) String() string {
	return fmt.Sprintf("%v", t.nodes)
}

// Split breaks tree node mem into one child per option in
// inconsistentOptions — the options the scheduler disagreed about
// across the family. Each child is the parent's option set with
// exactly one of those options removed, breaking the permutation
// symmetry among them; the first child replaces mem in place, the rest
// are appended and their new indices returned.
func (t *HoleTree) Split(mem int, inconsistentOptions []int) []int {
	old := t.nodes[mem]
	children := make([][]int, 0, len(inconsistentOptions))
	for _, opt := range inconsistentOptions {
 children = append(children, removeOption(old, opt))
	}

	t.nodes[mem] = children[0]
	newIndices := make([]int, 0, len(children)-1)
	for _, child := range children[1:] {
 newIndices = append(newIndices, len(t.nodes))
 t.nodes = append(t.nodes, child)
	}
	return newIndices
}

// UpdateMemoryUpdates widens every node whose option list already
// contains mem to also include newIndices: a memory-update hole that
// could transition to mem must keep working once mem's sibling memory
// values newIndices exist too.
func (t *HoleTree) UpdateMemoryUpdates(mem int, newIndices []int) {
	for i, options := range t.nodes {
 if containsInt(options, mem) {
 t.nodes[i] = append(options, newIndices...)
 }
	}
}

func removeOption(options []int, remove int) []int {
	out := make([]int, 0, len(options))
	for _, o := range options {
 if o != remove {
 out = append(out, o)
 }
	}
	return out
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
 if v == needle {
 return true
 }
	}
	return false
}
