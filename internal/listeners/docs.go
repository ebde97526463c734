// Package listeners wires the push-event stream into the in-memory order view.
//
// A listener owns one display surface's subscriptions: the dashboard listener
// converges the full board, a station listener converges one kitchen station's
// tag-filtered slice. Both follow the same consumption contract: handlers are
// total (malformed payloads are logged and dropped, stale references are silent
// no-ops), re-subscription replaces handlers instead of stacking them, and
// teardown cancels pending side effects so a closed surface cannot print.
package listeners
