package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemoseq/rcpsp/generator"
	"github.com/chemoseq/rcpsp/model"
)

func TestGenerate_Deterministic(t *testing.T) {
	opts := generator.Options{Patients: 3, Seed: 42}

	res1, inc1, err := generator.Generate(opts)
	require.NoError(t, err)
	res2, inc2, err := generator.Generate(opts)
	require.NoError(t, err)

	assert.Equal(t, res1, res2)
	assert.Equal(t, inc1, inc2)
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	res1, _, err := generator.Generate(generator.Options{Patients: 3, Seed: 1})
	require.NoError(t, err)
	res2, _, err := generator.Generate(generator.Options{Patients: 3, Seed: 2})
	require.NoError(t, err)

	assert.NotEqual(t, res1.Activities, res2.Activities)
}

func TestGenerate_ProducesValidInstance(t *testing.T) {
	res, incompat, err := generator.Generate(generator.Options{Patients: 4, Seed: 7})
	require.NoError(t, err)
	require.NotEmpty(t, incompat)

	inst, err := model.New(res.Activities, res.Resources)
	require.NoError(t, err)

	// 4 patients * 4 activities/patient + source + sink.
	assert.Len(t, inst.Activities, 4*4+2)
	assert.Equal(t, 0, inst.Source)
}

func TestGenerate_RejectsNonPositivePatients(t *testing.T) {
	_, _, err := generator.Generate(generator.Options{Patients: 0})
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "folfiri_25_patients.sm", generator.FileName(25))
}
