package toposort_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemoseq/rcpsp/toposort"
)

func TestSort_OrdersByPrecedence(t *testing.T) {
	succ := map[int][]int{0: {1, 2}, 1: {3}, 2: {3}, 3: {}}
	order, err := toposort.Sort([]int{0, 1, 2, 3}, func(u int) []int { return succ[u] })
	require.NoError(t, err)

	pos := make(map[int]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	assert.Less(t, pos[0], pos[1])
	assert.Less(t, pos[0], pos[2])
	assert.Less(t, pos[1], pos[3])
	assert.Less(t, pos[2], pos[3])
}

func TestSort_DetectsCycle(t *testing.T) {
	succ := map[int][]int{0: {1}, 1: {0}}
	_, err := toposort.Sort([]int{0, 1}, func(u int) []int { return succ[u] })
	assert.ErrorIs(t, err, toposort.ErrCycle)
}

func TestSort_Deterministic(t *testing.T) {
	succ := map[int][]int{0: {}, 1: {}, 2: {}}
	a, err := toposort.Sort([]int{2, 0, 1}, func(u int) []int { return succ[u] })
	require.NoError(t, err)
	b, err := toposort.Sort([]int{0, 1, 2}, func(u int) []int { return succ[u] })
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
