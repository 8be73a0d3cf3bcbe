package quote

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packagexpress/internal/errors"
	"packagexpress/internal/models"
	"packagexpress/internal/output"
)

func fixedID() string { return "quote-test" }

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithIDGenerator(fixedID)}, opts...)...)
}

// fill drives the engine through all four measurements and the dimension check
func fill(t *testing.T, e *Engine, weight, width, height, length string) error {
	t.Helper()

	if _, err := e.SetWeight(weight); err != nil {
		return err
	}
	return fillDimensions(t, e, width, height, length)
}

// fillDimensions sets width, height and length then runs the combined check
func fillDimensions(t *testing.T, e *Engine, width, height, length string) error {
	t.Helper()

	values := []string{width, height, length}
	for i, axis := range models.Axes() {
		_, err := e.SetDimension(axis, values[i])
		require.NoError(t, err)
	}
	return e.FinalizeDimensions()
}

func TestNewEngine(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, Start, e.State())
	assert.Equal(t, models.DefaultLimits(), e.Limits())

	q := e.Quote()
	assert.Equal(t, "quote-test", q.ID)
	assert.True(t, q.Valid)
	assert.Nil(t, q.Cost)
	assert.Empty(t, q.Error)
}

func TestNewEngineAssignsUniqueIDs(t *testing.T) {
	a := NewEngine().Quote().ID
	b := NewEngine().Quote().ID

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestEnginePricesQuote(t *testing.T) {
	tests := []struct {
		name                          string
		weight, width, height, length string
		expectedCost                  float64
	}{
		{
			name:   "reference example",
			weight: "10", width: "2", height: "3", length: "4",
			expectedCost: 2.4,
		},
		{
			name:   "weight at limit",
			weight: "50", width: "1", height: "1", length: "1",
			expectedCost: 0.5,
		},
		{
			name:   "dimensions at limit",
			weight: "1", width: "20", height: "20", length: "10",
			expectedCost: 40,
		},
		{
			name:   "fractional values",
			weight: "2.5", width: "1.5", height: "2", length: "4",
			expectedCost: 0.3,
		},
		{
			name:   "zero weight",
			weight: "0", width: "5", height: "5", length: "5",
			expectedCost: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			require.NoError(t, fill(t, e, tt.weight, tt.width, tt.height, tt.length))
			assert.Equal(t, DimensionsAccepted, e.State())

			cost, err := e.ComputeCost()
			require.NoError(t, err)
			assert.InDelta(t, tt.expectedCost, cost, 1e-9)
			assert.Equal(t, Priced, e.State())

			q := e.Quote()
			require.NotNil(t, q.Cost)
			assert.InDelta(t, tt.expectedCost, *q.Cost, 1e-9)
			assert.True(t, q.Valid)
			assert.NoError(t, q.CheckInvariants())
		})
	}
}

func TestEngineCostIsNotRounded(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, fill(t, e, "1", "1", "1", "1.234"))

	cost, err := e.ComputeCost()
	require.NoError(t, err)
	assert.InDelta(t, 0.01234, cost, 1e-12)
	assert.Equal(t, "0.01", output.FormatCost(cost))
}

func TestEngineRejectsHeavyPackage(t *testing.T) {
	e := newTestEngine()

	weight, err := e.SetWeight("60")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.LimitErrorType))
	assert.False(t, errors.IsRetryable(err))
	assert.Equal(t, 60.0, weight)
	assert.Equal(t, Failed, e.State())

	q := e.Quote()
	assert.False(t, q.Valid)
	assert.Equal(t, output.TooHeavy, q.Error)
	assert.Nil(t, q.Cost)
	assert.NoError(t, q.CheckInvariants())

	// a failed run accepts nothing further
	_, err = e.SetDimension(models.Width, "1")
	assert.True(t, errors.IsErrorType(err, errors.StateErrorType))
	_, err = e.SetWeight("10")
	assert.True(t, errors.IsErrorType(err, errors.StateErrorType))
}

func TestEngineRejectsBigPackage(t *testing.T) {
	e := newTestEngine()

	err := fill(t, e, "10", "20", "20", "11")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.LimitErrorType))
	assert.Equal(t, Failed, e.State())

	q := e.Quote()
	assert.False(t, q.Valid)
	assert.Equal(t, output.TooBig, q.Error)
	assert.Nil(t, q.Cost)
	assert.Equal(t, 51.0, q.TotalDimensions())

	_, err = e.ComputeCost()
	assert.True(t, errors.IsErrorType(err, errors.StateErrorType))
	assert.Nil(t, e.Quote().Cost)
}

func TestEngineLimitBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		weight      string
		dims        [3]string
		expectLimit bool
		expectState State
	}{
		{name: "weight equal to limit", weight: "50", dims: [3]string{"1", "1", "1"}, expectState: DimensionsAccepted},
		{name: "weight just over limit", weight: "50.0001", expectLimit: true, expectState: Failed},
		{name: "sum equal to limit", weight: "1", dims: [3]string{"10", "20", "20"}, expectState: DimensionsAccepted},
		{name: "sum just over limit", weight: "1", dims: [3]string{"10", "20", "20.01"}, expectLimit: true, expectState: Failed},
		{name: "single huge axis", weight: "1", dims: [3]string{"49", "0", "0"}, expectState: DimensionsAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()

			_, err := e.SetWeight(tt.weight)
			if err == nil {
				err = fillDimensions(t, e, tt.dims[0], tt.dims[1], tt.dims[2])
			}

			if tt.expectLimit {
				assert.True(t, errors.IsErrorType(err, errors.LimitErrorType), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectState, e.State())
		})
	}
}

func TestEngineParseFailureDoesNotAdvance(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Start())

	for i := 0; i < 25; i++ {
		_, err := e.SetWeight("heavy")
		require.Error(t, err)
		assert.True(t, errors.IsRetryable(err))
		assert.Equal(t, WeightPending, e.State())
	}

	_, err := e.SetWeight("10")
	require.NoError(t, err)
	assert.Equal(t, WeightAccepted, e.State())

	for _, bad := range []string{"", "abc", "1,5", "-3"} {
		_, err := e.SetDimension(models.Width, bad)
		assert.True(t, errors.IsRetryable(err), "input %q", bad)
		next, ok := e.NextAxis()
		assert.True(t, ok)
		assert.Equal(t, models.Width, next)
		assert.Equal(t, WeightAccepted, e.State(), "input %q", bad)
	}
	assert.Equal(t, 0.0, e.Quote().Width)

	_, err = e.SetDimension(models.Width, "2")
	require.NoError(t, err)
	assert.Equal(t, DimensionsPending, e.State())

	_, err = e.SetDimension(models.Height, "tall")
	assert.True(t, errors.IsRetryable(err))
	assert.Equal(t, DimensionsPending, e.State())
	next, ok := e.NextAxis()
	assert.True(t, ok)
	assert.Equal(t, models.Height, next)
}

func TestEngineEnforcesAxisOrder(t *testing.T) {
	e := newTestEngine()
	_, err := e.SetWeight("10")
	require.NoError(t, err)

	_, err = e.SetDimension(models.Height, "3")
	assert.True(t, errors.IsErrorType(err, errors.StateErrorType))

	_, err = e.SetDimension(models.Width, "2")
	require.NoError(t, err)

	err = e.FinalizeDimensions()
	assert.True(t, errors.IsErrorType(err, errors.StateErrorType))

	_, err = e.SetDimension(models.Height, "3")
	require.NoError(t, err)
	_, err = e.SetDimension(models.Length, "4")
	require.NoError(t, err)

	_, err = e.SetDimension(models.Length, "4")
	assert.True(t, errors.IsErrorType(err, errors.StateErrorType))

	_, ok := e.NextAxis()
	assert.False(t, ok)
	require.NoError(t, e.FinalizeDimensions())
}

func TestEngineOperationsOutOfOrder(t *testing.T) {
	e := newTestEngine()

	_, err := e.SetDimension(models.Width, "1")
	assert.True(t, errors.IsErrorType(err, errors.StateErrorType))

	assert.True(t, errors.IsErrorType(e.FinalizeDimensions(), errors.StateErrorType))

	_, err = e.ComputeCost()
	assert.True(t, errors.IsErrorType(err, errors.StateErrorType))

	require.NoError(t, e.Start())
	assert.True(t, errors.IsErrorType(e.Start(), errors.StateErrorType))
	assert.Equal(t, WeightPending, e.State())
}

func TestEngineCustomLimits(t *testing.T) {
	e := newTestEngine(WithLimits(models.Limits{MaxWeight: 5, MaxDimensions: 10}))

	_, err := e.SetWeight("6")
	assert.True(t, errors.IsErrorType(err, errors.LimitErrorType))
}

func TestEngineInvalidLimitsFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name   string
		limits models.Limits
	}{
		{name: "zero weight limit", limits: models.Limits{MaxWeight: 0, MaxDimensions: 50}},
		{name: "negative dimensions limit", limits: models.Limits{MaxWeight: 50, MaxDimensions: -1}},
		{name: "zero value", limits: models.Limits{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

			e := newTestEngine(WithLimits(tt.limits), WithLogger(logger))

			assert.Equal(t, models.DefaultLimits(), e.Limits())
			assert.Contains(t, buf.String(), "ignoring invalid limits")

			// a weight of 10 would fail against the rejected limits
			_, err := e.SetWeight("10")
			assert.NoError(t, err)
		})
	}
}

func TestEngineQuoteReturnsCopy(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, fill(t, e, "10", "2", "3", "4"))
	_, err := e.ComputeCost()
	require.NoError(t, err)

	q := e.Quote()
	*q.Cost = 999
	q.Weight = 1

	again := e.Quote()
	assert.InDelta(t, 2.4, *again.Cost, 1e-9)
	assert.Equal(t, 10.0, again.Weight)
}

func TestEngineLogsWithQuoteID(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	e := newTestEngine(WithLogger(logger))
	_, err := e.SetWeight("60")
	require.Error(t, err)

	assert.Contains(t, buf.String(), "weight over limit")
	assert.Contains(t, buf.String(), "quote-test")
}
