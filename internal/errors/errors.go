// Package errors provides sentinel errors and wrapping helpers shared by the
// locator, the CLI and the MCP tools.
package errors

import (
	"errors"
	"fmt"
)

// Wrap creates a new error by wrapping an existing error with additional context.
// It returns nil when err is nil.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Error classes. Package specific sentinels wrap one of these so callers that
// only care about the class can test with Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
)

// Sentinel derives a new sentinel error belonging to class. The returned
// error matches both itself and class under Is.
func Sentinel(class error, msg string) error {
	return &sentinel{msg: msg, class: class}
}

type sentinel struct {
	msg   string
	class error
}

func (s *sentinel) Error() string { return s.msg }

func (s *sentinel) Unwrap() error { return s.class }

// Validation returns an ErrValidation-class error with the given message.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Configuration returns an ErrConfiguration-class error wrapping cause.
func Configuration(message string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrConfiguration, message)
	}
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, message, cause)
}
