package session

import (
	"github.com/roach88/predlog/internal/document"
	"github.com/roach88/predlog/internal/rules"
)

// Token is a located occurrence of a candidate preposition.
type Token struct {
	// Text is the literal grapheme found, case preserved.
	Text string

	// Location is the tracked handle owned by the Document Access.
	Location document.Location

	// NextWord is the trimmed text of the word following the token.
	// Empty when nothing follows (end of paragraph or document).
	NextWord string
}

// Mismatch pairs a token with the correction the rule engine demands.
// A Mismatch exists only when the suggestion differs from the token text.
type Mismatch struct {
	Token Token

	// Suggestion is the replacement letter, case matched to the original.
	Suggestion string
}

// ScanResult reports the outcome of one scan pass.
type ScanResult struct {
	// Count is the number of mismatches queued.
	Count int

	// First is the head of the queue, nil when Count is zero. It gives
	// the caller enough to act on the first entry without another call.
	First *Mismatch
}

// Config selects which agreement rules apply and how flags look.
type Config struct {
	// Pairs lists the enabled preposition pairs. Must not be empty.
	Pairs []rules.Pair

	// Scope selects which document parts are searched.
	Scope document.Scope

	// Highlight is the flag color applied to queued mismatches.
	Highlight string
}

// DefaultConfig checks the s/z pair in the body with a yellow flag.
func DefaultConfig() Config {
	return Config{
		Pairs:     []rules.Pair{rules.PairSZ},
		Scope:     document.ScopeBody,
		Highlight: "yellow",
	}
}
