// Package document defines the boundary to the host that owns the open
// document, and provides an in-memory plain-text implementation of it.
//
// The proofing core never touches document content directly. It talks to an
// Access implementation through opaque Location handles and a small set of
// search/read/write/flag operations. Every Access call is a suspension
// point: the host batches requests, and a value read before Sync may be
// stale after it, so callers re-read rather than cache across syncs.
//
// Location handles are owned by the Access that produced them. The
// implementation must keep a handle addressable and correct across edits
// made elsewhere in the document through the same Access (the tracked-range
// guarantee). The core stores handles but never inspects them; it has no
// notion of character offsets.
//
// TextDocument is the in-process implementation used by the CLI and the
// test suites. A word-processor host would supply its own Access backed by
// the host document API.
package document
