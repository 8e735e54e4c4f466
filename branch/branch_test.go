package branch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemoseq/rcpsp/branch"
	"github.com/chemoseq/rcpsp/distmatrix"
	"github.com/chemoseq/rcpsp/model"
	"github.com/chemoseq/rcpsp/scheme"
)

func twoDisjunctions(t *testing.T) (*model.Instance, *scheme.Scheme) {
	t.Helper()
	acts := map[int]model.Activity{
		0: {ID: 0, Duration: 0},
		1: {ID: 1, Duration: 4},
		2: {ID: 2, Duration: 1},
		3: {ID: 3, Duration: 1},
		4: {ID: 4, Duration: 0},
	}
	inst, err := model.New(acts, nil)
	require.NoError(t, err)
	s := scheme.New(inst, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 4}, {2, 4}, {3, 4}}, [][2]int{{1, 2}, {2, 3}})
	return inst, s
}

func TestSelectDisjunctionWeighted_PrefersLargestCommitment(t *testing.T) {
	inst, s := twoDisjunctions(t)
	m := distmatrix.BuildFrom(s)
	require.NoError(t, m.FloydWarshall())
	heads, _ := m.HeadsTails(inst.Source, inst.Sink)

	p, ok := branch.SelectDisjunctionWeighted(s, heads)
	require.True(t, ok)
	// |r_1 - r_2| + (4+1) = 0 + 5 = 5 beats {2,3}'s 0 + (1+1) = 2.
	assert.Equal(t, scheme.Pair{Lo: 1, Hi: 2}, p)
}

func TestSelectDisjunction_PrefersSmallestSum(t *testing.T) {
	_, s := twoDisjunctions(t)
	p, ok := branch.SelectDisjunction(s)
	require.True(t, ok)
	assert.Equal(t, scheme.Pair{Lo: 2, Hi: 3}, p)
}

func TestCreateBranches_OppositeOrientationsRemoveDisjunction(t *testing.T) {
	_, s := twoDisjunctions(t)
	root := branch.Root(s)

	fwd, rev, err := branch.CreateBranches(root, scheme.Pair{Lo: 1, Hi: 2})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 4}, fwd.Scheme.Successors(1))
	assert.Equal(t, []int{0, 2}, rev.Scheme.Predecessors(1))
	assert.False(t, fwd.Scheme.InD(1, 2))
	assert.False(t, rev.Scheme.InD(1, 2))
	assert.Equal(t, "1->2", fwd.Label)
	assert.Equal(t, "2->1", rev.Label)
	assert.Equal(t, []string{"1->2"}, fwd.Path())
}

func TestCreateBranches_ParentUnaffected(t *testing.T) {
	_, s := twoDisjunctions(t)
	root := branch.Root(s)

	_, _, err := branch.CreateBranches(root, scheme.Pair{Lo: 1, Hi: 2})
	require.NoError(t, err)

	assert.True(t, s.InD(1, 2))
}
