package rules

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Pair identifies which agreement rule governs a candidate preposition.
type Pair int

const (
	// PairSZ is the s/z instrumental pair.
	PairSZ Pair = iota + 1
	// PairKH is the k/h directional pair.
	PairKH
)

// String returns the pair's short name ("sz" or "kh").
func (p Pair) String() string {
	switch p {
	case PairSZ:
		return "sz"
	case PairKH:
		return "kh"
	}
	return "unknown"
}

// Letters returns the two preposition letters governed by the pair,
// lowercase, in conventional order.
func (p Pair) Letters() []string {
	switch p {
	case PairSZ:
		return []string{"s", "z"}
	case PairKH:
		return []string{"k", "h"}
	}
	return nil
}

// PairFor returns the pair a preposition letter belongs to.
// The lookup is case-insensitive. Returns (0, false) for anything that is
// not one of the four candidate letters.
func PairFor(letter string) (Pair, bool) {
	switch strings.ToLower(letter) {
	case "s", "z":
		return PairSZ, true
	case "k", "h":
		return PairKH, true
	}
	return 0, false
}

// unvoiced is the set of Slovene unvoiced consonants. A following word
// starting with one of these takes "s"; every other first sound takes "z".
var unvoiced = map[rune]struct{}{
	'c': {}, 'č': {}, 'f': {}, 'h': {}, 'k': {},
	'p': {}, 's': {}, 'š': {}, 't': {},
}

// digitSound maps a decimal digit to the first sound of its Slovene number
// word (1 = "ena", 2 = "dva", 3 = "tri", 4 = "štiri", 5 = "pet",
// 6 = "šest", 7 = "sedem", 8 = "osem", 9 = "devet", 0 = "nič").
var digitSound = map[rune]rune{
	'1': 'e', '2': 'd', '3': 't', '4': 'š', '5': 'p',
	'6': 'š', '7': 's', '8': 'o', '9': 'd', '0': 'n',
}

// Expected returns the phonetically correct preposition letter for the
// given following word, lowercase.
//
// The word is NFC-normalized before inspection so that accented letters
// built from combining marks compare equal to their precomposed forms.
// Leading punctuation, symbols, and whitespace are skipped; the decision
// is made on the first letter or decimal digit found.
//
// Returns ("", false) when the word contains no letter or digit at all.
// That is a routine "no opinion" outcome, not an error: the caller skips
// the candidate.
func Expected(nextWord string, pair Pair) (string, bool) {
	first, ok := firstSound(nextWord)
	if !ok {
		return "", false
	}

	switch pair {
	case PairSZ:
		if _, uv := unvoiced[first]; uv {
			return "s", true
		}
		return "z", true

	case PairKH:
		if first == 'k' || first == 'g' {
			return "h", true
		}
		return "k", true
	}

	return "", false
}

// firstSound extracts the first pronounceable sound of a word: the first
// letter, lowercased, or the mapped first sound of the first decimal digit.
func firstSound(word string) (rune, bool) {
	for _, r := range norm.NFC.String(word) {
		if mapped, ok := digitSound[r]; ok {
			return mapped, true
		}
		if unicode.IsLetter(r) {
			return unicode.ToLower(r), true
		}
	}
	return 0, false
}

// Suggestion returns the expected letter with its case matched to the
// original token: an uppercase original yields an uppercase suggestion.
func Suggestion(original, expected string) string {
	for _, r := range original {
		if unicode.IsUpper(r) {
			return strings.ToUpper(expected)
		}
		break
	}
	return expected
}
