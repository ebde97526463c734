// Package errs provides standardized error types for the order board application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - FetchError: For when a snapshot read or authoritative write fails to reach the server
//   - MalformedPayloadError: For when a push event payload is missing required fields
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrFetchFailed)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Stale references (an event naming an order or item that is not held locally)
// are deliberately not represented here: they are handled as silent no-ops at
// the store boundary, not as errors.
package errs
