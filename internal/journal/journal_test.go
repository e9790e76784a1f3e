package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_RecordAndRead(t *testing.T) {
	ctx := context.Background()
	j, err := Open(InMemory)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordScan(ctx, "sess-1", "gen-1", 2))
	require.NoError(t, j.RecordResolution(ctx, "sess-1", "accept", "s", "z"))
	require.NoError(t, j.RecordResolution(ctx, "sess-1", "reject", "k", "h"))

	events, err := j.Events(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "scan", events[0].Kind)
	assert.Equal(t, "gen-1", events[0].Generation)
	assert.Equal(t, 2, events[0].Mismatches)

	assert.Equal(t, "accept", events[1].Kind)
	assert.Equal(t, "s", events[1].TokenText)
	assert.Equal(t, "z", events[1].Suggestion)

	assert.Equal(t, "reject", events[2].Kind)

	// Sequence is strictly increasing.
	assert.Less(t, events[0].Seq, events[1].Seq)
	assert.Less(t, events[1].Seq, events[2].Seq)
}

func TestJournal_FilterBySession(t *testing.T) {
	ctx := context.Background()
	j, err := Open(InMemory)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordScan(ctx, "sess-1", "gen-1", 0))
	require.NoError(t, j.RecordScan(ctx, "sess-2", "gen-2", 1))

	events, err := j.Events(ctx, "sess-2")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "sess-2", events[0].SessionID)

	all, err := j.Events(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestJournal_ReopenResumesSequence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordScan(ctx, "sess-1", "gen-1", 3))
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordResolution(ctx, "sess-1", "accept", "s", "z"))

	events, err := j.Events(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Greater(t, events[1].Seq, events[0].Seq)
}

func TestJournal_EmptyRead(t *testing.T) {
	ctx := context.Background()
	j, err := Open(InMemory)
	require.NoError(t, err)
	defer j.Close()

	events, err := j.Events(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, events)
}
