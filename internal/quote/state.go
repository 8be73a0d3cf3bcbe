package quote

import "fmt"

// State is the position of an Engine in the quote lifecycle
type State int

const (
	// Start is the state of a freshly created engine
	Start State = iota
	// WeightPending waits for a numeric weight
	WeightPending
	// WeightAccepted holds a weight within the limit
	WeightAccepted
	// DimensionsPending collects width, height and length in order
	DimensionsPending
	// DimensionsAccepted holds three dimensions within the combined limit
	DimensionsAccepted
	// Priced is terminal: the cost has been computed
	Priced
	// Failed is terminal: a limit was exceeded
	Failed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Start:
		return "Start"
	case WeightPending:
		return "WeightPending"
	case WeightAccepted:
		return "WeightAccepted"
	case DimensionsPending:
		return "DimensionsPending"
	case DimensionsAccepted:
		return "DimensionsAccepted"
	case Priced:
		return "Priced"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further operations are accepted
func (s State) Terminal() bool {
	return s == Priced || s == Failed
}
