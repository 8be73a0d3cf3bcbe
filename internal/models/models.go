package models

import (
	"fmt"
	"strings"
)

// Shipping limits applied by Package Express.
const (
	// DefaultMaxWeight is the heaviest package accepted
	DefaultMaxWeight = 50.0
	// DefaultMaxDimensions is the largest accepted width+height+length
	DefaultMaxDimensions = 50.0
	// CostDivisor scales the product of the measurements into a price
	CostDivisor = 100.0
)

// Axis identifies one of the three package dimensions
type Axis int

const (
	// Width is collected first
	Width Axis = iota
	// Height is collected second
	Height
	// Length is collected last
	Length
)

// Axes returns the dimensions in the order they are collected
func Axes() []Axis {
	return []Axis{Width, Height, Length}
}

// String returns the lower-case axis name used in prompts
func (a Axis) String() string {
	switch a {
	case Width:
		return "width"
	case Height:
		return "height"
	case Length:
		return "length"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// ParseAxis converts a name such as "Height" to an Axis
func ParseAxis(name string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "width":
		return Width, nil
	case "height":
		return Height, nil
	case "length":
		return Length, nil
	default:
		return 0, fmt.Errorf("unknown axis '%s'", name)
	}
}

// Limits holds the thresholds a quote is validated against
type Limits struct {
	MaxWeight     float64 `json:"maxWeight"`
	MaxDimensions float64 `json:"maxDimensions"`
}

// DefaultLimits returns the Package Express shipping limits
func DefaultLimits() Limits {
	return Limits{
		MaxWeight:     DefaultMaxWeight,
		MaxDimensions: DefaultMaxDimensions,
	}
}

// Validate checks that the limits themselves are usable
func (l Limits) Validate() error {
	if l.MaxWeight <= 0 {
		return fmt.Errorf("max weight must be positive, got %g", l.MaxWeight)
	}
	if l.MaxDimensions <= 0 {
		return fmt.Errorf("max dimensions must be positive, got %g", l.MaxDimensions)
	}
	return nil
}

// Quote is the record of one package's measurements, validity and computed cost
type Quote struct {
	ID     string   `json:"id"`
	Weight float64  `json:"weight"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Length float64  `json:"length"`
	Cost   *float64 `json:"cost,omitempty"`
	Valid  bool     `json:"valid"`
	Error  string   `json:"error,omitempty"`
}

// NewQuote returns an empty, valid quote
func NewQuote(id string) *Quote {
	return &Quote{ID: id, Valid: true}
}

// Dimension returns the measurement stored for an axis
func (q *Quote) Dimension(axis Axis) float64 {
	switch axis {
	case Width:
		return q.Width
	case Height:
		return q.Height
	case Length:
		return q.Length
	default:
		return 0
	}
}

// SetDimension stores the measurement for an axis
func (q *Quote) SetDimension(axis Axis, value float64) {
	switch axis {
	case Width:
		q.Width = value
	case Height:
		q.Height = value
	case Length:
		q.Length = value
	}
}

// TotalDimensions returns width+height+length
func (q *Quote) TotalDimensions() float64 {
	return q.Width + q.Height + q.Length
}

// Invalidate marks the quote as failed with a user-facing reason
func (q *Quote) Invalidate(reason string) {
	q.Valid = false
	q.Error = reason
	q.Cost = nil
}

// SetCost records the computed cost
func (q *Quote) SetCost(cost float64) {
	q.Cost = &cost
}

// CheckInvariants verifies that Cost, Valid and Error agree with each other
func (q *Quote) CheckInvariants() error {
	if q.Valid && q.Error != "" {
		return fmt.Errorf("valid quote carries error '%s'", q.Error)
	}
	if !q.Valid && q.Error == "" {
		return fmt.Errorf("invalid quote has no error message")
	}
	if !q.Valid && q.Cost != nil {
		return fmt.Errorf("invalid quote has a cost")
	}
	return nil
}

// Outcome is how a quote run ended
type Outcome int

const (
	// Incomplete means the run stopped before reaching a result
	Incomplete Outcome = iota
	// Priced means a cost was computed and reported
	Priced
	// TooHeavy means the weight limit was exceeded
	TooHeavy
	// TooBig means the combined dimensions limit was exceeded
	TooBig
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case Incomplete:
		return "incomplete"
	case Priced:
		return "priced"
	case TooHeavy:
		return "too_heavy"
	case TooBig:
		return "too_big"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}
