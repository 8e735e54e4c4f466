package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleSM = `PRECEDENCE RELATIONS:
1        1       1           2
2        1       0
REQUESTS/DURATIONS:
1     1     0         0   0   0   0
2     1     0         0   0   0   0
RESOURCEAVAILABILITIES:
1 1 1 1
`

func TestLoadInstance_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.sm")
	require.NoError(t, os.WriteFile(path, []byte(sampleSM), 0o644))

	v := viper.New()
	v.Set("instance", path)

	inst, precedences, incompat, perPatient, err := loadInstance(v, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, inst.Activities, 2)
	assert.Len(t, precedences, 1)
	assert.Nil(t, incompat)
	assert.Equal(t, 0, perPatient)
}

func TestLoadInstance_FromPatients(t *testing.T) {
	v := viper.New()
	v.Set("patients", 5)

	inst, _, incompat, perPatient, err := loadInstance(v, zap.NewNop())
	require.NoError(t, err)

	assert.NotEmpty(t, incompat)
	assert.Equal(t, 4, perPatient)
	assert.NotNil(t, inst)
}

func TestLoadInstance_RejectsUnsupportedPatientCount(t *testing.T) {
	v := viper.New()
	v.Set("patients", 7)

	_, _, _, _, err := loadInstance(v, zap.NewNop())
	assert.Error(t, err)
}

func TestPromptPatientCount_ParsesInput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString("25\n")
	require.NoError(t, err)
	w.Close()

	n, err := promptPatientCount(r, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 25, n)
}

func TestPromptPatientCount_RejectsNonInteger(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString("not-a-number\n")
	require.NoError(t, err)
	w.Close()

	_, err = promptPatientCount(r, io.Discard)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "integer"))
}
