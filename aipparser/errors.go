package aipparser

import "fmt"

// FormatError is returned for any structural violation of the AIP grammar.
type FormatError struct {
	Message string
	Line    int // 1-based line in the raw input, 0 when not tied to a line
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func (e *FormatError) Unwrap() error { return e.Cause }

func formatErrorf(line int, format string, args ...any) *FormatError {
	return &FormatError{Message: fmt.Sprintf(format, args...), Line: line}
}
