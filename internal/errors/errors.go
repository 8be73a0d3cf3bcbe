package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ParseErrorType represents malformed numeric input; the caller re-prompts
	ParseErrorType ErrorType = "PARSE"
	// LimitErrorType represents a weight or size limit being exceeded
	LimitErrorType ErrorType = "LIMIT"
	// StateErrorType represents an engine operation called out of order
	StateErrorType ErrorType = "STATE"
	// InputErrorType represents a failure reading or writing the console
	InputErrorType ErrorType = "INPUT"
	// ConfigErrorType represents invalid runtime configuration
	ConfigErrorType ErrorType = "CONFIG"
)

// QuoteError is the base error type for all application errors
type QuoteError struct {
	Type        ErrorType
	Message     string
	Context     map[string]interface{}
	Cause       error
	Suggestions []string
}

// Error implements the error interface
func (e *QuoteError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("[%s]", e.Type))
	parts = append(parts, e.Message)

	if len(e.Context) > 0 {
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(e.contextPairs("="), ", ")))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("caused by: %v", e.Cause))
	}

	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause error
func (e *QuoteError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error type
func (e *QuoteError) Is(target error) bool {
	if targetErr, ok := target.(*QuoteError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *QuoteError) WithContext(key string, value interface{}) *QuoteError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion to help resolve the error
func (e *QuoteError) WithSuggestion(suggestion string) *QuoteError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// GetSuggestions returns formatted suggestions for resolving the error
func (e *QuoteError) GetSuggestions() string {
	if len(e.Suggestions) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString("Suggestions:\n")
	for i, suggestion := range e.Suggestions {
		result.WriteString(fmt.Sprintf("  %d. %s\n", i+1, suggestion))
	}
	return result.String()
}

// contextPairs renders the context map in key order so messages are stable
func (e *QuoteError) contextPairs(sep string) []string {
	keys := make([]string, 0, len(e.Context))
	for key := range e.Context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s%s%v", key, sep, e.Context[key]))
	}
	return pairs
}

// ParseError creates a new retryable parse error
func ParseError(message string) *QuoteError {
	return &QuoteError{
		Type:    ParseErrorType,
		Message: message,
	}
}

// ParseErrorWithCause creates a new parse error with a cause
func ParseErrorWithCause(message string, cause error) *QuoteError {
	return &QuoteError{
		Type:    ParseErrorType,
		Message: message,
		Cause:   cause,
	}
}

// LimitError creates a new limit-exceeded error. The message is shown to the user verbatim.
func LimitError(message string) *QuoteError {
	return &QuoteError{
		Type:    LimitErrorType,
		Message: message,
	}
}

// StateError creates a new state error
func StateError(message string) *QuoteError {
	return &QuoteError{
		Type:    StateErrorType,
		Message: message,
	}
}

// StateErrorf creates a new state error with formatting
func StateErrorf(format string, args ...interface{}) *QuoteError {
	return &QuoteError{
		Type:    StateErrorType,
		Message: fmt.Sprintf(format, args...),
	}
}

// InputError creates a new console input error
func InputError(message string) *QuoteError {
	return &QuoteError{
		Type:    InputErrorType,
		Message: message,
	}
}

// InputErrorWithCause creates a new console input error with a cause
func InputErrorWithCause(message string, cause error) *QuoteError {
	return &QuoteError{
		Type:    InputErrorType,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError creates a new configuration error
func ConfigError(message string) *QuoteError {
	return &QuoteError{
		Type:    ConfigErrorType,
		Message: message,
	}
}

// ConfigErrorWithCause creates a new configuration error with a cause
func ConfigErrorWithCause(message string, cause error) *QuoteError {
	return &QuoteError{
		Type:    ConfigErrorType,
		Message: message,
		Cause:   cause,
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *QuoteError {
	if err == nil {
		return nil
	}

	// Keep the original type unless one is given explicitly
	if quoteErr, ok := err.(*QuoteError); ok && errorType == "" {
		wrapped := &QuoteError{
			Type:        quoteErr.Type,
			Message:     message,
			Cause:       quoteErr,
			Suggestions: append([]string(nil), quoteErr.Suggestions...),
		}
		if quoteErr.Context != nil {
			wrapped.Context = make(map[string]interface{}, len(quoteErr.Context))
			for k, v := range quoteErr.Context {
				wrapped.Context[k] = v
			}
		}
		return wrapped
	}

	return &QuoteError{
		Type:    errorType,
		Message: message,
		Cause:   err,
	}
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if quoteErr, ok := err.(*QuoteError); ok {
		return quoteErr.Type == errorType
	}
	return false
}

// GetErrorType returns the error type of an error, or empty string if not a QuoteError
func GetErrorType(err error) ErrorType {
	if quoteErr, ok := err.(*QuoteError); ok {
		return quoteErr.Type
	}
	return ""
}

// IsRetryable reports whether the caller should ask for the value again.
// Only parse errors are retryable; limit errors end the run.
func IsRetryable(err error) bool {
	return IsErrorType(err, ParseErrorType)
}

// FormatErrorForUser formats an error in a user-friendly way
func FormatErrorForUser(err error) string {
	if err == nil {
		return ""
	}

	quoteErr, ok := err.(*QuoteError)
	if !ok {
		return fmt.Sprintf("Error: %v\n", err)
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Error: %s\n", quoteErr.Message))

	if len(quoteErr.Context) > 0 {
		result.WriteString("Details:\n")
		for _, pair := range quoteErr.contextPairs(": ") {
			result.WriteString(fmt.Sprintf("  %s\n", pair))
		}
	}

	if len(quoteErr.Suggestions) > 0 {
		result.WriteString("\n")
		result.WriteString(quoteErr.GetSuggestions())
	}

	return result.String()
}

// GetExitCode returns an appropriate exit code based on error type.
// Limit errors are a normal way for a run to end and map to 0.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	quoteErr, ok := err.(*QuoteError)
	if !ok {
		return 1
	}

	switch quoteErr.Type {
	case LimitErrorType:
		return 0
	case InputErrorType:
		return 1
	case ConfigErrorType:
		return 2
	case StateErrorType:
		return 3
	default:
		return 1
	}
}
