package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound is the sentinel error for lookups that found nothing.
	ErrObjectNotFound = errors.New("object not found")

	// ErrValueIsInvalid is the sentinel error for values that fail validation.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsRequired is the sentinel error for missing required values.
	ErrValueIsRequired = errors.New("value is required")

	// ErrFetchFailed is the sentinel error for snapshot or authoritative-write
	// requests that never reached the server or came back non-2xx.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrPayloadIsMalformed is the sentinel error for push events whose payload
	// is missing required fields. Such events are logged and dropped, never
	// surfaced to the stream consumer.
	ErrPayloadIsMalformed = errors.New("payload is malformed")
)

// sanitize flattens a value into a single log-safe line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%s", v), "\n", " ")
}

// ObjectNotFoundError indicates that an object could not be found by its identifier.
// Carries the parameter name and the identifier that was looked up, plus an
// optional underlying cause.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a named value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// FetchError indicates that a request to the order backend failed at the
// transport level or returned a non-success status. Snapshot failures carrying
// this error surface to the caller; event-path failures are logged and swallowed.
type FetchError struct {
	Endpoint string
	Cause    error
}

// NewFetchError creates a FetchError for the given endpoint.
func NewFetchError(endpoint string, cause error) *FetchError {
	return &FetchError{Endpoint: endpoint, Cause: cause}
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrFetchFailed, e.Endpoint, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrFetchFailed, e.Endpoint)
}

func (e *FetchError) Unwrap() error {
	return ErrFetchFailed
}

// MalformedPayloadError indicates that an incoming push event is missing a
// required field and cannot be applied.
type MalformedPayloadError struct {
	Topic     string
	ParamName string
	Cause     error
}

// NewMalformedPayloadError creates a MalformedPayloadError for a topic and the
// missing or invalid field.
func NewMalformedPayloadError(topic, paramName string) *MalformedPayloadError {
	return &MalformedPayloadError{Topic: topic, ParamName: paramName}
}

// NewMalformedPayloadErrorWithCause creates a MalformedPayloadError wrapping a
// decode failure.
func NewMalformedPayloadErrorWithCause(topic, paramName string, cause error) *MalformedPayloadError {
	return &MalformedPayloadError{Topic: topic, ParamName: paramName, Cause: cause}
}

func (e *MalformedPayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: topic is: %s, param is: %s (cause: %s)",
			ErrPayloadIsMalformed, e.Topic, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: topic is: %s, param is: %s", ErrPayloadIsMalformed, e.Topic, e.ParamName)
}

func (e *MalformedPayloadError) Unwrap() error {
	return ErrPayloadIsMalformed
}
