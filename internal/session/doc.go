// Package session implements the mismatch-queue lifecycle over one open
// document.
//
// A Session scans the document for single-letter preposition candidates,
// judges each against the phonetic rule, and keeps the disagreements in an
// ordered queue that the caller resolves one at a time or in bulk.
//
// ARCHITECTURE:
//
// Scan protocol:
//  1. Clear the flags left by the previous scan (idempotent)
//  2. Reset the queue
//  3. Whole-word search for every configured preposition letter
//  4. Merge hits into document order, keep exact single-letter tokens
//  5. Judge each token's following word with the rule engine
//  6. Flag every mismatch and focus the first one
//
// Resolution protocol: AcceptOne replaces the head token's text with its
// suggestion and clears its flag; RejectOne clears the flag only. Both pop
// the head and refocus the new head. AcceptAll/RejectAll resolve the whole
// queue in document order.
//
// The queue is spliced in place rather than re-scanned after each single
// resolution. That is sound only because the Document Access contract
// guarantees tracked locations stay addressable across edits made
// elsewhere; the trade is one full document search saved per click against
// trusting the host's range tracking.
//
// Scan is single-flight: a scan requested while one is in flight is
// dropped silently. Everything else runs to completion before the caller
// can issue the next operation, so only Scan carries the guard.
//
// Document Access failures never escape raw: each operation wraps them in
// an *OpError and leaves the session recoverable (a fresh Scan rebuilds
// ground truth from the current document).
package session
