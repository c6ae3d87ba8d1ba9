package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestWriteEventAndReadSummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.WriteEvent(ctx, "conclave completed task: tidy readme", EventEvent, 6))
	require.NoError(t, store.WriteEvent(ctx, "user prefers short summaries", EventPreference, 4))

	summary, err := store.ReadSummary(ctx)
	require.NoError(t, err)
	assert.Contains(t, summary, "Recent events:")
	assert.Contains(t, summary, "conclave completed task: tidy readme")
	assert.Contains(t, summary, "[preference] user prefers short summaries")
}

func TestWriteEventAppendsDailyLog(t *testing.T) {
	store := openTestStore(t)
	fixed := time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	require.NoError(t, store.WriteEvent(context.Background(), "note", EventEvent, 6))

	data, err := os.ReadFile(filepath.Join(store.dir, "logs", "2026-08-26.md"))
	require.NoError(t, err)
	assert.Equal(t, "- 14:30 [event] note\n", string(data))
}

func TestWriteEventRejectsUnknownType(t *testing.T) {
	store := openTestStore(t)
	err := store.WriteEvent(context.Background(), "x", EventType("rumor"), 5)
	assert.ErrorContains(t, err, "invalid event type")
}

func TestWriteEventClampsImportance(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.WriteEvent(ctx, "low", EventFact, -3))
	require.NoError(t, store.WriteEvent(ctx, "high", EventFact, 40))

	rows, err := store.db.Query(`SELECT content, importance FROM memory_entries ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close() //nolint:errcheck

	got := map[string]int{}
	for rows.Next() {
		var content string
		var importance int
		require.NoError(t, rows.Scan(&content, &importance))
		got[content] = importance
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]int{"low": 1, "high": 10}, got)
}

func TestReadSummaryIncludesCuratedMemory(t *testing.T) {
	store := openTestStore(t)
	curated := "# Memory\n\n## Preferences\n\n- keep answers short\n- *markdown* stripped\n"
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, "MEMORY.md"), []byte(curated), 0o644))

	summary, err := store.ReadSummary(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary, "Preferences")
	assert.Contains(t, summary, "keep answers short")
	assert.Contains(t, summary, "markdown stripped")
	assert.NotContains(t, summary, "*markdown*")
}

func TestReadSummaryEmptyStore(t *testing.T) {
	store := openTestStore(t)
	summary, err := store.ReadSummary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestExtractText(t *testing.T) {
	src := []byte("# Title\n\nFirst paragraph with [a link](https://example.com).\n\n- item one\n- item two\n")
	got := ExtractText(src)
	assert.Contains(t, got, "Title")
	assert.Contains(t, got, "First paragraph with a link.")
	assert.Contains(t, got, "item one")
	assert.NotContains(t, got, "](")
	assert.NotContains(t, got, "\n\n\n")
}
