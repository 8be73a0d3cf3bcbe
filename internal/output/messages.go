package output

import (
	"fmt"

	"packagexpress/internal/models"
)

// User-facing messages. These are part of the interactive contract and must not change.
const (
	Welcome      = "Welcome to Package Express. Please follow the instructions below."
	WeightPrompt = "Please enter the package weight:"
	InvalidInput = "Invalid input. Please enter a numeric value."
	TooHeavy     = "Package too heavy to be shipped via Package Express. Have a good day."
	TooBig       = "Package too big to be shipped via Package Express."
	ThankYou     = "Thank you!"

	quoteFormat     = "Your estimated total for shipping this package is: $%.2f"
	dimensionPrompt = "Please enter the package %s:"
)

// PromptFor returns the prompt asking for one dimension
func PromptFor(axis models.Axis) string {
	return fmt.Sprintf(dimensionPrompt, axis)
}

// FormatCost renders a cost with exactly two decimals
func FormatCost(cost float64) string {
	return fmt.Sprintf("%.2f", cost)
}

// FormatQuote returns the line announcing the estimated total
func FormatQuote(cost float64) string {
	return fmt.Sprintf(quoteFormat, cost)
}
