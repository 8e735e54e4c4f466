package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemoseq/rcpsp/model"
)

func tinyActivities() map[int]model.Activity {
	return map[int]model.Activity{
		1: {ID: 1, Duration: 0, Demand: map[string]int{}},
		2: {ID: 2, Duration: 3, Demand: map[string]int{"R1": 1}},
		3: {ID: 3, Duration: 0, Demand: map[string]int{}},
	}
}

func TestNew_DerivesSourceAndSink(t *testing.T) {
	inst, err := model.New(tinyActivities(), map[string]model.Resource{"R1": {Name: "R1", Capacity: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, inst.Source)
	assert.Equal(t, 3, inst.Sink)
	assert.Equal(t, []int{1, 2, 3}, inst.IDs())
	assert.Equal(t, []int{2}, inst.RealActivityIDs())
}

func TestNew_RejectsEmpty(t *testing.T) {
	_, err := model.New(map[int]model.Activity{}, nil)
	assert.ErrorIs(t, err, model.ErrEmptyActivitySet)
}

func TestNew_RejectsNegativeDuration(t *testing.T) {
	acts := tinyActivities()
	acts[2] = model.Activity{ID: 2, Duration: -1}
	_, err := model.New(acts, nil)
	assert.ErrorIs(t, err, model.ErrNegativeDuration)
}

func TestNew_RejectsNegativeDemand(t *testing.T) {
	acts := tinyActivities()
	acts[2] = model.Activity{ID: 2, Duration: 1, Demand: map[string]int{"R1": -1}}
	_, err := model.New(acts, nil)
	assert.ErrorIs(t, err, model.ErrNegativeDemand)
}

func TestNew_RejectsNegativeCapacity(t *testing.T) {
	_, err := model.New(tinyActivities(), map[string]model.Resource{"R1": {Name: "R1", Capacity: -2}})
	assert.ErrorIs(t, err, model.ErrNegativeCapacity)
}

func TestActivity_DemandFor_MissingIsZero(t *testing.T) {
	a := model.Activity{ID: 1, Duration: 1, Demand: map[string]int{"R1": 2}}
	assert.Equal(t, 2, a.DemandFor("R1"))
	assert.Equal(t, 0, a.DemandFor("R9"))
}
