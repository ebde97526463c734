package kernel

import (
	"orderboard/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrCorrelationIDIsNotConstructed indicates a CorrelationID that was not
// created through one of the constructor functions. This error is returned when
// validating a zero-value CorrelationID.
var ErrCorrelationIDIsNotConstructed = errs.NewValueIsRequiredError(
	"CorrelationID must be created via NewCorrelationID or CorrelationIDFromString",
)

// CorrelationID is a value object that ties an authoritative write to all push
// events it causes, for tracing across clients. It wraps the
// github.com/google/uuid implementation to provide domain-specific behavior and
// ensure immutability.
//
// The zero value of CorrelationID is invalid and must be constructed using
// NewCorrelationID or CorrelationIDFromString. Incoming events may legitimately
// omit a correlation id; such absence is modeled as the zero value and checked
// with IsZero, never by passing an invalid id around.
type CorrelationID struct {
	id uuid.UUID
}

// NewCorrelationID generates a new random correlation id (UUID version 4).
// This is how a client mints the id attached to a request it originates.
func NewCorrelationID() CorrelationID {
	return CorrelationID{id: uuid.New()}
}

// CorrelationIDFromString parses a correlation id from its string
// representation, as carried in the X-Request-Id header and event payloads.
// Returns a ValueIsInvalidError if the string is not a valid UUID.
func CorrelationIDFromString(s string) (CorrelationID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return CorrelationID{}, errs.NewValueIsInvalidErrorWithCause("correlationId", err)
	}
	return CorrelationID{id: parsed}, nil
}

// String returns the canonical string form of the correlation id.
// The zero value renders as the empty string so that optional ids serialize
// naturally.
func (c CorrelationID) String() string {
	if c.IsZero() {
		return ""
	}
	return c.id.String()
}

// IsZero reports whether the correlation id is the zero value, i.e. absent.
func (c CorrelationID) IsZero() bool {
	return c.id == uuid.UUID{}
}

// IsEqual compares two correlation ids for equality.
func (c CorrelationID) IsEqual(other CorrelationID) bool {
	return c.id == other.id
}

// Validate checks that the correlation id was properly constructed.
// Returns ErrCorrelationIDIsNotConstructed for the zero value.
func (c CorrelationID) Validate() error {
	if c.IsZero() {
		return ErrCorrelationIDIsNotConstructed
	}
	return nil
}
