package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpected_UnvoicedTakesS(t *testing.T) {
	// Every unvoiced consonant as the first sound must yield "s".
	for _, word := range []string{"cesta", "človek", "fant", "hiša", "klop", "prijateljem", "sestro", "šolo", "teto"} {
		got, ok := Expected(word, PairSZ)
		require.True(t, ok, "word %q should produce a verdict", word)
		assert.Equal(t, "s", got, "word %q", word)
	}
}

func TestExpected_VoicedTakesZ(t *testing.T) {
	for _, word := range []string{"bratom", "gore", "Ljubljane", "mamo", "riba", "vode", "zemljo", "žogo", "avtom", "očetom"} {
		got, ok := Expected(word, PairSZ)
		require.True(t, ok, "word %q should produce a verdict", word)
		assert.Equal(t, "z", got, "word %q", word)
	}
}

func TestExpected_DigitsUseSlovenNumberSound(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"1", "z"},      // ena -> e, voiced
		{"2", "z"},      // dva -> d
		{"3", "s"},      // tri -> t, unvoiced
		{"4", "s"},      // štiri -> š
		{"5", "s"},      // pet -> p
		{"6", "s"},      // šest -> š
		{"7 let", "s"},  // sedem -> s
		{"8", "z"},      // osem -> o
		{"9", "z"},      // devet -> d
		{"0", "z"},      // nič -> n
		{"100", "z"},    // only the first digit is inspected: 1 -> e
	}

	for _, tt := range tests {
		got, ok := Expected(tt.word, PairSZ)
		require.True(t, ok, "word %q should produce a verdict", tt.word)
		assert.Equal(t, tt.want, got, "word %q", tt.word)
	}
}

func TestExpected_LeadingPunctuationSkipped(t *testing.T) {
	got, ok := Expected("\"šolo\"", PairSZ)
	require.True(t, ok)
	assert.Equal(t, "s", got)

	got, ok = Expected("(Ljubljano)", PairSZ)
	require.True(t, ok)
	assert.Equal(t, "z", got)
}

func TestExpected_NoLetterOrDigit(t *testing.T) {
	for _, word := range []string{"", ".", "...", "—", "\"\"", "   ", "?!"} {
		_, ok := Expected(word, PairSZ)
		assert.False(t, ok, "word %q should yield no opinion", word)
	}
}

func TestExpected_CombiningMarksNormalized(t *testing.T) {
	// "s" + U+030C (combining caron) composes to "š", which is unvoiced.
	got, ok := Expected("šola", PairSZ)
	require.True(t, ok)
	assert.Equal(t, "s", got)

	// "z" + U+030C composes to "ž", which is voiced.
	got, ok = Expected("žoga", PairSZ)
	require.True(t, ok)
	assert.Equal(t, "z", got)
}

func TestExpected_CaseInsensitiveFirstLetter(t *testing.T) {
	got, ok := Expected("Ljubljane", PairSZ)
	require.True(t, ok)
	assert.Equal(t, "z", got)

	got, ok = Expected("Šola", PairSZ)
	require.True(t, ok)
	assert.Equal(t, "s", got)
}

func TestExpected_KHPair(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"gradu", "h"},
		{"kovaču", "h"},
		{"Gorici", "h"},
		{"mizi", "k"},
		{"oknu", "k"},
		{"hiši", "k"},
	}
	for _, tt := range tests {
		got, ok := Expected(tt.word, PairKH)
		require.True(t, ok, "word %q", tt.word)
		assert.Equal(t, tt.want, got, "word %q", tt.word)
	}
}

func TestPairFor(t *testing.T) {
	for letter, want := range map[string]Pair{
		"s": PairSZ, "S": PairSZ, "z": PairSZ, "Z": PairSZ,
		"k": PairKH, "K": PairKH, "h": PairKH, "H": PairKH,
	} {
		got, ok := PairFor(letter)
		require.True(t, ok, "letter %q", letter)
		assert.Equal(t, want, got, "letter %q", letter)
	}

	_, ok := PairFor("x")
	assert.False(t, ok)
	_, ok = PairFor("")
	assert.False(t, ok)
}

func TestPairLetters(t *testing.T) {
	assert.Equal(t, []string{"s", "z"}, PairSZ.Letters())
	assert.Equal(t, []string{"k", "h"}, PairKH.Letters())
}

func TestSuggestion_CasePreserved(t *testing.T) {
	assert.Equal(t, "Z", Suggestion("S", "z"))
	assert.Equal(t, "z", Suggestion("s", "z"))
	assert.Equal(t, "H", Suggestion("K", "h"))
	assert.Equal(t, "h", Suggestion("k", "h"))
}
