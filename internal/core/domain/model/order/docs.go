// Package order provides domain entities and business logic for in-flight order
// management on the order board. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root holding identity, customer data, items, and lifecycle status
//   - Item: A line item routed to kitchen stations by its tag set
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Order status follows a defined workflow: Created -> Accepted -> ReadyForPickup -> Completed
//   - Completed is terminal; no further transitions are accepted
//   - An item cannot be completed without having been started; when that would be
//     violated, the started time is back-filled
//   - Reaching ReadyForPickup closes out all still-open items, reflecting the
//     business rule that pickup implies kitchen work is done even if individual
//     item events were missed
//
// Transition enforcement is split deliberately: ChangeStatus validates the
// workflow for user-driven mutations, while ApplyStatus applies whatever a push
// event carries, because convergence across clients is last-write-wins.
package order
