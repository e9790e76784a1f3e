package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMismatchQueue_FIFO(t *testing.T) {
	var q mismatchQueue
	q.push(Mismatch{Token: Token{Text: "s", NextWord: "Ljubljane"}, Suggestion: "z"})
	q.push(Mismatch{Token: Token{Text: "k", NextWord: "gradu"}, Suggestion: "h"})

	require.Equal(t, 2, q.len())

	m, ok := q.popHead()
	require.True(t, ok)
	assert.Equal(t, "Ljubljane", m.Token.NextWord)

	m, ok = q.popHead()
	require.True(t, ok)
	assert.Equal(t, "gradu", m.Token.NextWord)

	_, ok = q.popHead()
	assert.False(t, ok)
}

func TestMismatchQueue_HeadDoesNotRemove(t *testing.T) {
	var q mismatchQueue
	q.push(Mismatch{Token: Token{Text: "s"}, Suggestion: "z"})

	m, ok := q.head()
	require.True(t, ok)
	assert.Equal(t, "s", m.Token.Text)
	assert.Equal(t, 1, q.len())
}

func TestMismatchQueue_Reset(t *testing.T) {
	var q mismatchQueue
	q.push(Mismatch{Token: Token{Text: "s"}, Suggestion: "z"})
	q.reset()

	assert.Equal(t, 0, q.len())
	_, ok := q.head()
	assert.False(t, ok)
}

func TestMismatchQueue_AllReturnsCopy(t *testing.T) {
	var q mismatchQueue
	q.push(Mismatch{Token: Token{Text: "s"}, Suggestion: "z"})

	all := q.all()
	all[0].Suggestion = "mutated"

	m, _ := q.head()
	assert.Equal(t, "z", m.Suggestion)
}
