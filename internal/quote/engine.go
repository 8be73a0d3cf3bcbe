// Package quote validates package measurements and prices a shipment.
//
// An Engine owns one Quote for one run. Values are supplied in a fixed order
// (weight, width, height, length) and the engine rejects operations that
// arrive out of order. Malformed numbers produce retryable PARSE errors and
// leave the engine where it was; exceeding a limit produces a terminal LIMIT
// error and moves the engine to Failed.
package quote

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"packagexpress/internal/errors"
	"packagexpress/internal/models"
	"packagexpress/internal/output"
)

// Engine builds and prices a single quote
type Engine struct {
	limits models.Limits
	logger *log.Logger
	newID  func() string

	quote    *models.Quote
	state    State
	nextAxis int
}

// Option configures an Engine
type Option func(*Engine)

// WithLimits overrides the shipping limits. Limits that fail Validate are
// replaced by the defaults when the engine is built.
func WithLimits(limits models.Limits) Option {
	return func(e *Engine) {
		e.limits = limits
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithIDGenerator replaces the quote ID source
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

// NewEngine creates an engine holding a fresh quote
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		limits: models.DefaultLimits(),
		logger: log.New(io.Discard),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.quote = models.NewQuote(e.newID())
	e.logger = e.logger.With("quote_id", e.quote.ID)
	e.state = Start

	if err := e.limits.Validate(); err != nil {
		e.logger.Warn("ignoring invalid limits, using defaults", "err", err)
		e.limits = models.DefaultLimits()
	}
	return e
}

// State returns the current lifecycle state
func (e *Engine) State() State {
	return e.state
}

// Limits returns the limits this engine validates against
func (e *Engine) Limits() models.Limits {
	return e.limits
}

// Quote returns a copy of the quote in its current form
func (e *Engine) Quote() models.Quote {
	q := *e.quote
	if e.quote.Cost != nil {
		cost := *e.quote.Cost
		q.Cost = &cost
	}
	return q
}

// NextAxis returns the dimension the engine expects next
func (e *Engine) NextAxis() (models.Axis, bool) {
	axes := models.Axes()
	if e.nextAxis >= len(axes) {
		return 0, false
	}
	return axes[e.nextAxis], true
}

// Start moves the engine to WeightPending
func (e *Engine) Start() error {
	if e.state != Start {
		return errors.StateErrorf("cannot start quote in state %s", e.state)
	}
	e.state = WeightPending
	e.logger.Debug("quote started", "max_weight", e.limits.MaxWeight, "max_dimensions", e.limits.MaxDimensions)
	return nil
}

// SetWeight parses and stores the package weight.
// A weight above the limit invalidates the quote and returns a LIMIT error.
func (e *Engine) SetWeight(raw string) (float64, error) {
	if e.state == Start {
		e.state = WeightPending
	}
	if e.state != WeightPending {
		return 0, errors.StateErrorf("cannot set weight in state %s", e.state)
	}

	weight, err := ParseMeasurement(raw)
	if err != nil {
		e.logger.Debug("weight rejected", "input", raw, "err", err)
		return 0, err
	}

	e.quote.Weight = weight
	e.state = WeightAccepted

	if !withinLimit(weight, e.limits.MaxWeight) {
		e.fail(output.TooHeavy)
		e.logger.Info("weight over limit", "weight", weight, "max_weight", e.limits.MaxWeight)
		return weight, errors.LimitError(output.TooHeavy).
			WithContext("weight", weight).
			WithContext("maxWeight", e.limits.MaxWeight)
	}

	e.logger.Debug("weight accepted", "weight", weight)
	return weight, nil
}

// SetDimension parses and stores one dimension. Axes must arrive as width, height, length.
// No per-axis limit applies; the combined check happens in FinalizeDimensions.
func (e *Engine) SetDimension(axis models.Axis, raw string) (float64, error) {
	if e.state != WeightAccepted && e.state != DimensionsPending {
		return 0, errors.StateErrorf("cannot set %s in state %s", axis, e.state)
	}

	expected, ok := e.NextAxis()
	if !ok {
		return 0, errors.StateErrorf("all dimensions already set, got %s", axis)
	}
	if axis != expected {
		return 0, errors.StateErrorf("expected %s, got %s", expected, axis)
	}
	value, err := ParseMeasurement(raw)
	if err != nil {
		e.logger.Debug("dimension rejected", "axis", axis.String(), "input", raw, "err", err)
		return 0, err
	}
	e.state = DimensionsPending

	e.quote.SetDimension(axis, value)
	e.nextAxis++
	e.logger.Debug("dimension accepted", "axis", axis.String(), "value", value)
	return value, nil
}

// FinalizeDimensions checks the combined size once width, height and length are set
func (e *Engine) FinalizeDimensions() error {
	if e.state != DimensionsPending {
		return errors.StateErrorf("cannot finalize dimensions in state %s", e.state)
	}
	if next, ok := e.NextAxis(); ok {
		return errors.StateErrorf("cannot finalize dimensions before %s is set", next)
	}

	total := e.quote.TotalDimensions()
	if !withinLimit(total, e.limits.MaxDimensions) {
		e.fail(output.TooBig)
		e.logger.Info("dimensions over limit", "total", total, "max_dimensions", e.limits.MaxDimensions)
		return errors.LimitError(output.TooBig).
			WithContext("totalDimensions", total).
			WithContext("maxDimensions", e.limits.MaxDimensions)
	}

	e.state = DimensionsAccepted
	e.logger.Debug("dimensions accepted", "total", total)
	return nil
}

// ComputeCost prices the quote: width*height*length*weight/100, unrounded
func (e *Engine) ComputeCost() (float64, error) {
	if e.state != DimensionsAccepted {
		return 0, errors.StateErrorf("cannot compute cost in state %s", e.state)
	}

	q := e.quote
	cost := (q.Width * q.Height * q.Length * q.Weight) / models.CostDivisor
	q.SetCost(cost)
	e.state = Priced

	e.logger.Debug("quote priced", "cost", cost)
	return cost, nil
}

func (e *Engine) fail(reason string) {
	e.quote.Invalidate(reason)
	e.state = Failed
}
