package document

import "context"

// Scope selects which parts of the document are searched.
type Scope int

const (
	// ScopeBody searches the main body only.
	ScopeBody Scope = iota + 1
	// ScopeFull searches the body plus headers, footers, and tables.
	ScopeFull
)

// String returns the scope's configuration spelling.
func (s Scope) String() string {
	switch s {
	case ScopeBody:
		return "body"
	case ScopeFull:
		return "full"
	}
	return "unknown"
}

// DefaultDelimiters bound the next-word lookup: whitespace and sentence
// punctuation end a word-like span.
const DefaultDelimiters = " \n.,;?!"

// Location is an opaque handle to a tracked span of the document.
//
// Handles are created and owned by an Access implementation; callers store
// and pass them back but never look inside. A handle stays valid across
// edits made elsewhere through the same Access.
type Location interface {
	isLocation()
}

// Access is the capability the host supplies for the open document.
//
// All methods take a context because each call crosses the host boundary
// and may be arbitrarily slow. Mutating calls (SetHighlight, ReplaceText,
// SelectAndFocus) are queued and take effect only at the next Sync; reads
// observe committed state, so callers must Sync before reading anything
// that depends on writes issued in the same batch.
type Access interface {
	// SearchWholeWord finds every whole-word, case-insensitive occurrence
	// of word within the scope, in document order.
	SearchWholeWord(ctx context.Context, scope Scope, word string) ([]Location, error)

	// TextAt returns the current committed text at a location.
	TextAt(ctx context.Context, loc Location) (string, error)

	// NextWordAfter returns the next word-like span after loc, bounded by
	// the given delimiter runes. Returns (nil, nil) when no word follows
	// (end of part or document).
	NextWordAfter(ctx context.Context, loc Location, delimiters string) (Location, error)

	// SetHighlight applies a visual flag at loc, or clears it when color
	// is empty. Clearing an unflagged location is a no-op.
	SetHighlight(ctx context.Context, loc Location, color string) error

	// ReplaceText substitutes the text at loc with newText.
	ReplaceText(ctx context.Context, loc Location, newText string) error

	// SelectAndFocus moves the user's selection to loc. Best-effort UX
	// cue; correctness never depends on it.
	SelectAndFocus(ctx context.Context, loc Location) error

	// Compare orders two locations by document position: negative when a
	// precedes b, zero when they coincide, positive when a follows b.
	Compare(a, b Location) (int, error)

	// Sync commits all mutations queued since the previous Sync, in the
	// order they were issued.
	Sync(ctx context.Context) error
}
