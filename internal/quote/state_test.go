package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateString(t *testing.T) {
	names := map[State]string{
		Start:              "Start",
		WeightPending:      "WeightPending",
		WeightAccepted:     "WeightAccepted",
		DimensionsPending:  "DimensionsPending",
		DimensionsAccepted: "DimensionsAccepted",
		Priced:             "Priced",
		Failed:             "Failed",
		State(42):          "State(42)",
	}
	for state, name := range names {
		assert.Equal(t, name, state.String())
	}
}

func TestStateTerminal(t *testing.T) {
	assert.True(t, Priced.Terminal())
	assert.True(t, Failed.Terminal())
	assert.False(t, DimensionsAccepted.Terminal())
	assert.False(t, Start.Terminal())
}
