// Package kernel provides core domain primitives for the order board system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - CorrelationID: A value object tying an authoritative write to every push event it causes
//   - Session: The restaurant/location context a board instance is constructed with
//   - ConstructorGuard: A defensive programming pattern to ensure proper object construction
//
// These primitives enforce domain invariants and validation rules. They are
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
