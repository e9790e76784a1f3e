package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_Golden(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestRun_ExpectationFailureReported(t *testing.T) {
	one := 1
	scenario := &Scenario{
		Name:     "wrong-count",
		Document: "Prišel je s prijateljem.",
		Flow: []Step{
			{Op: "scan", Expect: &Expect{Count: &one}},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan count 0, want 1")
}

func TestRun_FinalDocumentAsserted(t *testing.T) {
	wrong := "nekaj drugega"
	scenario := &Scenario{
		Name:          "wrong-final",
		Document:      "Grem s Ljubljane.",
		Flow:          []Step{{Op: "scan"}, {Op: "accept_all"}},
		FinalDocument: &wrong,
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "final document")
}

func TestRun_TraceCapturesQueueStates(t *testing.T) {
	scenario := &Scenario{
		Name:     "trace-shape",
		Document: "Grem s Ljubljane in s bratom.",
		Flow:     []Step{{Op: "scan"}, {Op: "accept_one"}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, result.Trace, 2)

	scan := result.Trace[0]
	assert.Equal(t, "scan", scan.Op)
	assert.Equal(t, 2, scan.Count)
	assert.Equal(t, 2, scan.QueueLen)
	require.Len(t, scan.Queue, 2)
	assert.Equal(t, "Ljubljane", scan.Queue[0].NextWord)

	accept := result.Trace[1]
	assert.Equal(t, "accept_one", accept.Op)
	require.NotNil(t, accept.Applied)
	assert.True(t, *accept.Applied)
	assert.Equal(t, 1, accept.QueueLen)

	assert.Equal(t, "Grem z Ljubljane in s bratom.", result.FinalDocument)
	assert.Equal(t, 1, result.FinalQueueLen)
}
