package psgs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemoseq/rcpsp/model"
	"github.com/chemoseq/rcpsp/psgs"
	"github.com/chemoseq/rcpsp/scheme"
)

func TestRun_SingleActivity(t *testing.T) {
	acts := map[int]model.Activity{
		0: {ID: 0, Duration: 0},
		1: {ID: 1, Duration: 3},
		2: {ID: 2, Duration: 0},
	}
	inst, err := model.New(acts, nil)
	require.NoError(t, err)
	s := scheme.New(inst, [][2]int{{0, 1}, {1, 2}}, nil)

	cron, makespan, err := psgs.Run(s, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, makespan)
	assert.Equal(t, 0, cron[0])
	assert.Equal(t, 0, cron[1])
	assert.Equal(t, 3, cron[2])
}

func twoActivityInstance(t *testing.T, durA, durB int) (*model.Instance, [][2]int) {
	t.Helper()
	acts := map[int]model.Activity{
		0: {ID: 0, Duration: 0},
		1: {ID: 1, Duration: durA},
		2: {ID: 2, Duration: durB},
		3: {ID: 3, Duration: 0},
	}
	inst, err := model.New(acts, nil)
	require.NoError(t, err)
	precedences := [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}
	return inst, precedences
}

func TestRun_TwoParallelActivities(t *testing.T) {
	inst, prec := twoActivityInstance(t, 4, 2)
	s := scheme.New(inst, prec, nil)

	cron, makespan, err := psgs.Run(s, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, makespan)
	assert.Equal(t, 0, cron[1])
	assert.Equal(t, 0, cron[2])
}

func TestRun_TwoIncompatibleActivities(t *testing.T) {
	inst, prec := twoActivityInstance(t, 4, 2)
	s := scheme.New(inst, prec, [][2]int{{1, 2}})

	cron, makespan, err := psgs.Run(s, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, makespan)
	assert.Equal(t, 0, cron[1])
	assert.Equal(t, 4, cron[2])
}

func TestRun_ResourceContention(t *testing.T) {
	acts := map[int]model.Activity{
		0: {ID: 0, Duration: 0},
		1: {ID: 1, Duration: 3, Demand: map[string]int{"R1": 1}},
		2: {ID: 2, Duration: 3, Demand: map[string]int{"R1": 1}},
		3: {ID: 3, Duration: 0},
	}
	inst, err := model.New(acts, map[string]model.Resource{"R1": {Name: "R1", Capacity: 1}})
	require.NoError(t, err)
	s := scheme.New(inst, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, nil)

	cron, makespan, err := psgs.Run(s, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, makespan)
	assert.Equal(t, 0, cron[1])
	assert.Equal(t, 3, cron[2])
}

func TestRun_DeadlockOnUnsatisfiableDemand(t *testing.T) {
	acts := map[int]model.Activity{
		0: {ID: 0, Duration: 0},
		1: {ID: 1, Duration: 1, Demand: map[string]int{"R1": 2}},
		2: {ID: 2, Duration: 0},
	}
	inst, err := model.New(acts, map[string]model.Resource{"R1": {Name: "R1", Capacity: 1}})
	require.NoError(t, err)
	s := scheme.New(inst, [][2]int{{0, 1}, {1, 2}}, nil)

	_, _, err = psgs.Run(s, nil)
	assert.ErrorIs(t, err, psgs.ErrResourceDeadlock)
}
