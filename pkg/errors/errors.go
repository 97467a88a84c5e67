// Package errors provides custom error types for the reconciliation system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the reconciliation system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTicketLogUnusable indicates that no header row could be located in
	// the downtime ticket log, which is fatal for the whole batch
	ErrTicketLogUnusable = errors.New("ticket log unusable")

	// ErrEmptyTable indicates that a table contains no data rows
	ErrEmptyTable = errors.New("empty table")
)

// StructuralError reports that a required column could not be discovered in a
// source table, or that the discovery tokens matched more than one column.
type StructuralError struct {
	Source    string   // which fault source or table was being processed
	Column    string   // semantic name of the column category (e.g. "start date")
	Tokens    []string // the discovery tokens that were searched for
	Ambiguous bool     // true when more than one header matched
	Err       error
}

// Error implements the error interface
func (e *StructuralError) Error() string {
	if e.Ambiguous {
		return fmt.Sprintf("ambiguous %s column in %s: tokens %v match more than one header", e.Column, e.Source, e.Tokens)
	}
	return fmt.Sprintf("missing %s column in %s: no header contains tokens %v", e.Column, e.Source, e.Tokens)
}

// Is implements errors.Is support
func (e *StructuralError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Unwrap implements errors.Unwrap
func (e *StructuralError) Unwrap() error {
	return e.Err
}

// NewStructuralError creates a new StructuralError
func NewStructuralError(source, column string, tokens []string, ambiguous bool) *StructuralError {
	return &StructuralError{
		Source:    source,
		Column:    column,
		Tokens:    tokens,
		Ambiguous: ambiguous,
	}
}

// SourceError wraps a failure that is fatal for one fault source but must not
// block the other sources from producing results.
type SourceError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	return fmt.Sprintf("cannot process source %s: %v", e.Source, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError
func NewSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "date", "time", etc.
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStructural checks if an error is a structural (missing/ambiguous column) error
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// AsStructural is errors.As specialized for StructuralError
func AsStructural(err error, target **StructuralError) bool {
	return errors.As(err, target)
}

// IsTicketLogUnusable checks if an error means the downtime log had no header
func IsTicketLogUnusable(err error) bool {
	return errors.Is(err, ErrTicketLogUnusable)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapSource wraps an error as a SourceError
func WrapSource(source string, err error) error {
	if err == nil {
		return nil
	}
	return NewSourceError(source, err)
}
