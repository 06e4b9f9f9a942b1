// Package errors provides custom error types for the devtasks system.
// These errors let commands tell an environment problem apart from a
// failed check, and map every failure to a process exit code.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the devtasks system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEnvironment indicates a required external tool is missing or unusable
	ErrEnvironment = errors.New("environment error")

	// ErrMismatch indicates the recorded license manifest is out of date
	ErrMismatch = errors.New("license manifest mismatch")

	// ErrMalformedManifest indicates the recorded license manifest is corrupt
	ErrMalformedManifest = errors.New("malformed license manifest")

	// ErrCheckFailed indicates a wrapped check reported issues
	ErrCheckFailed = errors.New("check failed")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// Exit codes returned by the devtasks binary.
const (
	// ExitOK is returned when every check passed.
	ExitOK = 0
	// ExitFailure is the generic failure status.
	ExitFailure = 1
	// ExitMisspell is returned when misspell reports findings.
	ExitMisspell = 2
)

// ExitCoder is implemented by errors that carry their own exit status.
type ExitCoder interface {
	ExitCode() int
}

// ExitCode maps an error to the process exit status.
// nil maps to ExitOK, errors that implement ExitCoder report their own
// status, and anything else maps to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitFailure
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// EnvironmentError indicates a required external tool is missing or
// could not be run. It is never retried.
type EnvironmentError struct {
	Tool    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *EnvironmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("environment error: %s: %s: %v", e.Tool, e.Message, e.Err)
	}
	return fmt.Sprintf("environment error: %s: %s", e.Tool, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *EnvironmentError) Is(target error) bool {
	return target == ErrEnvironment
}

// NewEnvironmentError creates a new EnvironmentError
func NewEnvironmentError(tool, message string, err error) *EnvironmentError {
	return &EnvironmentError{Tool: tool, Message: message, Err: err}
}

// MismatchError reports a license manifest that differs from the
// discovered license list.
type MismatchError struct {
	File    string
	Missing []string // discovered but not recorded
	Extra   []string // recorded but no longer discovered
}

// Error implements the error interface
func (e *MismatchError) Error() string {
	return fmt.Sprintf("licenses are not up-to-date in %s: %d missing, %d extra",
		e.File, len(e.Missing), len(e.Extra))
}

// Is implements errors.Is support
func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// ExitCode implements ExitCoder
func (e *MismatchError) ExitCode() int {
	return ExitFailure
}

// MalformedEntryError reports a manifest row that breaks the manifest
// invariants, such as an empty license field.
type MalformedEntryError struct {
	File    string
	Line    int
	Origin  string
	Message string
}

// Error implements the error interface
func (e *MalformedEntryError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: entry %q %s", e.File, e.Line, e.Origin, e.Message)
	}
	return fmt.Sprintf("line %d: entry %q %s", e.Line, e.Origin, e.Message)
}

// Is implements errors.Is support
func (e *MalformedEntryError) Is(target error) bool {
	return target == ErrMalformedManifest
}

// CheckError reports findings from a wrapped check such as golint or
// misspell.
type CheckError struct {
	Check  string
	Issues []string
	Code   int
}

// Error implements the error interface
func (e *CheckError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s found issues", e.Check)
	}
	return fmt.Sprintf("%s found issues:\n%s", e.Check, strings.Join(e.Issues, "\n"))
}

// Is implements errors.Is support
func (e *CheckError) Is(target error) bool {
	return target == ErrCheckFailed
}

// ExitCode implements ExitCoder
func (e *CheckError) ExitCode() int {
	if e.Code == 0 {
		return ExitFailure
	}
	return e.Code
}

// NewCheckError creates a new CheckError with the default exit code.
func NewCheckError(check string, issues []string) *CheckError {
	return &CheckError{Check: check, Issues: issues, Code: ExitFailure}
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

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "yaml", etc.
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
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
	Operation string // "read", "write", "create", "delete", "open", "close"
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

// ProcessError represents an error from an external process or command
type ProcessError struct {
	Operation string // What operation was being performed
	Command   string // The command that was executed
	Output    string // Stdout/stderr output from the process
	ExitCode  int    // Exit code if available
	Err       error  // Underlying error
}

// Error implements the error interface
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("process error during %s (command: %s): %v\nOutput: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("process error during %s (command: %s): %v", e.Operation, e.Command, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewProcessError creates a new ProcessError
func NewProcessError(operation, command, output string, err error) *ProcessError {
	return &ProcessError{
		Operation: operation,
		Command:   command,
		Output:    output,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsEnvironment checks if an error is an environment error
func IsEnvironment(err error) bool {
	return errors.Is(err, ErrEnvironment)
}

// IsMismatch checks if an error is a license manifest mismatch
func IsMismatch(err error) bool {
	return errors.Is(err, ErrMismatch)
}

// IsMalformedManifest checks if an error reports a corrupt manifest
func IsMalformedManifest(err error) bool {
	return errors.Is(err, ErrMalformedManifest)
}

// IsCheckFailed checks if an error reports findings from a wrapped check
func IsCheckFailed(err error) bool {
	return errors.Is(err, ErrCheckFailed)
}

// IsNotExist checks if an error reports a missing file
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

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
