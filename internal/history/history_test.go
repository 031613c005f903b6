package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport serves a mutable in-memory history.
type fakeTransport struct {
	entries []map[string]any
	listErr error

	deleted   []string
	deleteErr error
}

func (f *fakeTransport) ListHistory(context.Context) ([]map[string]any, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeTransport) DeleteHistory(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.entries[:0]
	for _, e := range f.entries {
		if entryID(e) != id {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func entryID(e map[string]any) string {
	id, _ := e["id"].(string)
	return id
}

func entry(id, fileName string, fusion float64) map[string]any {
	return map[string]any{
		"id":           id,
		"fileName":     fileName,
		"fusion_score": fusion,
		"video_score":  fusion,
		"audio_score":  0.0,
		"text_score":   0.0,
		"timestamp":    "2025-11-03T10:30:00Z",
	}
}

func TestListNormalizesEntries(t *testing.T) {
	transport := &fakeTransport{entries: []map[string]any{
		entry("a1", "clip.mp4", 82),
		entry("b2", "speech.wav", 35),
	}}
	store := NewStore(transport)

	records := store.List(context.Background())
	require.Len(t, records, 2)

	assert.Equal(t, "a1", records[0].ID)
	assert.Equal(t, "clip.mp4", records[0].Report.FileName)
	assert.Equal(t, 82.0, records[0].Report.FusionScore)
	assert.Equal(t, transport.entries[0], records[0].Raw)

	assert.Equal(t, "b2", records[1].ID)
	assert.Equal(t, 35.0, records[1].Report.FusionScore)
}

// A transport failure degrades to an empty list instead of surfacing an
// error: history views always stay renderable.
func TestListTransportErrorDegradesToEmpty(t *testing.T) {
	store := NewStore(&fakeTransport{listErr: errors.New("connection refused")})

	records := store.List(context.Background())
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestListSkipsUnrecognizableEntries(t *testing.T) {
	transport := &fakeTransport{entries: []map[string]any{
		entry("a1", "clip.mp4", 82),
		{"id": "junk", "note": "no score fields at all"},
		entry("c3", "other.mp4", 55),
	}}
	store := NewStore(transport)

	records := store.List(context.Background())
	require.Len(t, records, 2)
	assert.Equal(t, "a1", records[0].ID)
	assert.Equal(t, "c3", records[1].ID)
}

// Deleting never mutates a list the caller already holds; the follow-up
// fetch reflects the removal.
func TestRemoveThenRefresh(t *testing.T) {
	transport := &fakeTransport{entries: []map[string]any{
		entry("a1", "clip.mp4", 82),
		entry("b2", "speech.wav", 35),
	}}
	store := NewStore(transport)

	before := store.List(context.Background())
	require.Len(t, before, 2)

	require.NoError(t, store.Remove(context.Background(), "a1"))
	assert.Equal(t, []string{"a1"}, transport.deleted)

	// The earlier snapshot is untouched.
	assert.Len(t, before, 2)

	after := store.List(context.Background())
	require.Len(t, after, 1)
	assert.Equal(t, "b2", after[0].ID)
}

func TestRemovePropagatesTransportError(t *testing.T) {
	failure := errors.New("404 not found")
	store := NewStore(&fakeTransport{deleteErr: failure})

	assert.ErrorIs(t, store.Remove(context.Background(), "a1"), failure)
}

func TestLatest(t *testing.T) {
	t.Run("most recent entry's raw payload", func(t *testing.T) {
		newest := entry("a1", "clip.mp4", 82)
		transport := &fakeTransport{entries: []map[string]any{
			newest,
			entry("b2", "speech.wav", 35),
		}}
		store := NewStore(transport)

		assert.Equal(t, newest, store.Latest(context.Background()))
	})

	t.Run("nil when history is empty", func(t *testing.T) {
		store := NewStore(&fakeTransport{})
		assert.Nil(t, store.Latest(context.Background()))
	})

	t.Run("nil when transport is down", func(t *testing.T) {
		store := NewStore(&fakeTransport{listErr: errors.New("down")})
		assert.Nil(t, store.Latest(context.Background()))
	})
}
