package instance_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/chemoseq/rcpsp/instance"
)

const sample = `************************************************************************
PRECEDENCE RELATIONS:
jobnr    #modes  #successors   successors
1        1       2           2   3
2        1       1           4
3        1       1           4
4        1       0
************************************************************************
REQUESTS/DURATIONS:
jobnr mode duration  R1  R2  R3  R4
1     1     0         0   0   0   0
2     1     3         1   0   0   0
3     1     2         0   1   0   0
4     1     0         0   0   0   0
************************************************************************
RESOURCEAVAILABILITIES:
  R1    R2    R3    R4
   1     1     1     1
************************************************************************
`

func TestParse_ValidInstance(t *testing.T) {
	res, err := instance.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Len(t, res.Activities, 4)
	assert.Equal(t, 3, res.Activities[2].Duration)
	assert.Equal(t, 1, res.Activities[2].DemandFor("R1"))
	assert.ElementsMatch(t, [][2]int{{1, 2}, {1, 3}, {2, 4}, {3, 4}}, res.Precedences)
	assert.Equal(t, 1, res.Resources["R1"].Capacity)
}

func TestParse_AggregatesMalformedLines(t *testing.T) {
	bad := `PRECEDENCE RELATIONS:
1 1 notanumber 2
REQUESTS/DURATIONS:
1 1 x 0 0 0 0
RESOURCEAVAILABILITIES:
1 1 1 1
`
	_, err := instance.Parse(strings.NewReader(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, instance.ErrMalformedLine)
	assert.GreaterOrEqual(t, len(multierr.Errors(err)), 2)
}

func TestParse_MissingSectionReported(t *testing.T) {
	_, err := instance.Parse(strings.NewReader("PRECEDENCE RELATIONS:\n1 1 0\n"))
	assert.ErrorIs(t, err, instance.ErrMissingSection)
}
