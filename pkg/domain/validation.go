package domain

import (
	"errors"
	"fmt"
)

// ValidationError describes one preference that failed validation.
type ValidationError struct {
	Path  Path
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("setting %q: %v", e.Path.String(), e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// AggregateError collects multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
