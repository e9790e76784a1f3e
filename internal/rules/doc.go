// Package rules implements the phonetic agreement rule for Slovene
// single-letter prepositions.
//
// Slovene has two preposition pairs whose correct variant depends on the
// first sound of the following word:
//
//   - s/z ("with", "from"): "s" before unvoiced consonants, "z" otherwise
//   - k/h ("towards"): "h" before k and g, "k" otherwise
//
// The package is a leaf: pure functions over strings, no document access,
// no state. Callers feed it the raw text of the word following a candidate
// preposition; the package normalizes it, finds the first pronounceable
// sound, and returns the expected preposition letter.
//
// Words that start with a digit are judged by the first sound of the
// digit's Slovene number word ("7" is "sedem", so it behaves like "s").
// Only the first sound matters, so this is a fixed ten-entry table rather
// than a number-to-words pipeline.
package rules
