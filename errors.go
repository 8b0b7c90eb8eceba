package mediaforge

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimedOut is returned when a long-running operation exceeds its deadline.
var ErrTimedOut = errors.New("operation timed out")

// ErrorCategory classifies errors by how they should be handled.
type ErrorCategory string

const (
	// ErrorTransient indicates the error is temporary and the operation can be retried.
	// Examples: rate limits, temporary network issues, server overload.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates the error is not recoverable through retry.
	// Examples: invalid API key, insufficient permissions, model not found.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput indicates the caller provided invalid input that must be corrected.
	// Examples: malformed request, invalid parameters, oversized payloads.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is an error that provides information about how it should be handled.
type CategorizedError interface {
	error
	Category() ErrorCategory
	Retryable() bool // convenience: returns true if Category == ErrorTransient
	StatusCode() int // HTTP status code if applicable, 0 otherwise
}

// Error is a categorized error with metadata for error handling decisions.
type Error struct {
	Msg   string
	Cat   ErrorCategory
	Code  int   // HTTP status code, 0 if not applicable
	Cause error // underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// Retryable returns true if the error is transient and can be retried.
func (e *Error) Retryable() bool {
	return e.Cat == ErrorTransient
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// NewTransientError creates a transient error that can be retried.
func NewTransientError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Code: statusCode, Cause: cause}
}

// NewPermanentError creates a permanent error that should not be retried.
func NewPermanentError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorPermanent, Code: statusCode, Cause: cause}
}

// NewUserInputError creates an error indicating invalid user input.
func NewUserInputError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorUserInput, Code: statusCode, Cause: cause}
}

// IsTransient returns true if the error is categorized as transient.
// It checks if the error or any wrapped error implements CategorizedError.
func IsTransient(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorTransient
	}
	return false
}

// IsPermanent returns true if the error is categorized as permanent.
func IsPermanent(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorPermanent
	}
	return false
}

// IsUserInput returns true if the error is categorized as user input error.
func IsUserInput(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorUserInput
	}
	return false
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// ArgumentError reports a tool parameter that violates a documented constraint.
// It is never retried and is surfaced to the caller immediately.
type ArgumentError struct {
	Field  string // the offending parameter
	Reason string // the violated constraint, including the allowed set where applicable
}

// Error returns a formatted message naming the field and constraint.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// Category returns ErrorUserInput.
func (e *ArgumentError) Category() ErrorCategory { return ErrorUserInput }

// Retryable always returns false for argument errors.
func (e *ArgumentError) Retryable() bool { return false }

// StatusCode returns 400.
func (e *ArgumentError) StatusCode() int { return 400 }

// NewArgumentError creates an ArgumentError for the given field.
func NewArgumentError(field, reason string) *ArgumentError {
	return &ArgumentError{Field: field, Reason: reason}
}

// IsInvalidArgument reports whether err is (or wraps) an ArgumentError.
func IsInvalidArgument(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// PayloadTooLargeError reports a downloaded payload exceeding the configured cap.
type PayloadTooLargeError struct {
	Limit int64 // maximum allowed bytes
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload exceeds %d bytes", e.Limit)
}

// Category returns ErrorUserInput.
func (e *PayloadTooLargeError) Category() ErrorCategory { return ErrorUserInput }

// Retryable always returns false.
func (e *PayloadTooLargeError) Retryable() bool { return false }

// StatusCode returns 413.
func (e *PayloadTooLargeError) StatusCode() int { return 413 }

// OperationError reports a long-running operation that completed with an
// embedded provider error. It is terminal for the candidate that submitted it.
type OperationError struct {
	Name   string // operation handle
	Reason string // provider-reported failure reason
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %s failed: %s", e.Name, e.Reason)
}

// MalformedResponseError reports a provider response that matched none of the
// known shapes.
type MalformedResponseError struct {
	What string // which response could not be decoded
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed provider response: %s", e.What)
}

// DownloadError reports a failed artifact download after a successful generation.
type DownloadError struct {
	URL    string
	Status int   // HTTP status, 0 for transport failures
	Err    error // underlying error, nil when Status is set
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download failed for %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("download failed for %s: status %d", e.URL, e.Status)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// StorageError reports a sink failure after a successful generation. It is
// surfaced distinctly so callers know the expensive generation itself succeeded
// and must not be re-run.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// AttemptRecord captures one failed candidate attempt for diagnostics.
type AttemptRecord struct {
	Model string    // candidate identifier
	Err   error     // failure for this candidate
	At    time.Time // when the attempt failed
}

// AllCandidatesError is returned when every candidate in a fallback list has
// been exhausted without success. It carries the per-candidate attempt records,
// with the last attempt's reason surfaced in the message.
type AllCandidatesError struct {
	Attempts []AttemptRecord
}

// Error formats the exhaustion message with the last attempt's reason.
func (e *AllCandidatesError) Error() string {
	if len(e.Attempts) == 0 {
		return "all candidates failed"
	}
	last := e.Attempts[len(e.Attempts)-1]
	return fmt.Sprintf("all %d candidates failed, last (%s): %v", len(e.Attempts), last.Model, last.Err)
}

// Unwrap returns the last attempt's error.
func (e *AllCandidatesError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

// Last returns the final attempt record, or a zero record if none exist.
func (e *AllCandidatesError) Last() AttemptRecord {
	if len(e.Attempts) == 0 {
		return AttemptRecord{}
	}
	return e.Attempts[len(e.Attempts)-1]
}
