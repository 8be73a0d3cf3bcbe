package quote

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"packagexpress/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseMeasurement converts user text into a non-negative, finite number.
// Surrounding whitespace is ignored. Every failure is a retryable parse error.
func ParseMeasurement(raw string) (float64, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, errors.ParseError("no value entered")
	}

	// strconv also accepts hex floats and digit separators; plain decimals only here
	if strings.ContainsAny(text, "xXpP_") {
		return 0, errors.ParseError("value is not a decimal number").
			WithContext("input", raw)
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.ParseErrorWithCause("value is not a number", err).
			WithContext("input", raw)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.ParseError("value must be a finite number").
			WithContext("input", raw)
	}

	if err := validate.Var(value, "gte=0"); err != nil {
		return 0, errors.ParseErrorWithCause("value must not be negative", err).
			WithContext("input", raw)
	}

	return value, nil
}

// withinLimit reports whether value <= limit. Equal to the limit is accepted.
func withinLimit(value, limit float64) bool {
	tag := "lte=" + strconv.FormatFloat(limit, 'f', -1, 64)
	return validate.Var(value, tag) == nil
}
