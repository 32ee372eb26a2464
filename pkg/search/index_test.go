package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedIndex(t *testing.T) *HistoryIndex {
	t.Helper()
	idx, err := OpenMemOnly()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	docs := []HistoryDoc{
		{ID: "1", UserID: 1, Operation: "translate", SourceText: "hello world", TranslatedText: "你好世界", SourceLang: "en", TargetLang: "zh", CreatedAt: time.Now()},
		{ID: "2", UserID: 1, Operation: "ocr", SourceText: "invoice total amount", TranslatedText: "", SourceLang: "en", TargetLang: "", CreatedAt: time.Now()},
		{ID: "3", UserID: 2, Operation: "translate", SourceText: "hello again", TranslatedText: "再次你好", SourceLang: "en", TargetLang: "zh", CreatedAt: time.Now()},
	}
	for _, d := range docs {
		require.NoError(t, idx.Index(context.Background(), d))
	}
	return idx
}

func TestSearchScopedToUser(t *testing.T) {
	idx := seedIndex(t)

	res, err := idx.Search(context.Background(), 1, "hello", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Total)
	assert.Equal(t, "1", res.Hits[0].ID)

	res, err = idx.Search(context.Background(), 2, "hello", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Total)
	assert.Equal(t, "3", res.Hits[0].ID)
}

func TestSearchMatchesTranslatedText(t *testing.T) {
	idx := seedIndex(t)

	res, err := idx.Search(context.Background(), 1, "世界", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Total)
}

func TestSearchNoMatch(t *testing.T) {
	idx := seedIndex(t)

	res, err := idx.Search(context.Background(), 1, "nonexistent", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Hits)
}

func TestDeleteRemovesDoc(t *testing.T) {
	idx := seedIndex(t)

	require.NoError(t, idx.Delete(context.Background(), "2"))
	res, err := idx.Search(context.Background(), 1, "invoice", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestClosedIndexRejects(t *testing.T) {
	idx := seedIndex(t)
	require.NoError(t, idx.Close())

	err := idx.Index(context.Background(), HistoryDoc{ID: "9"})
	assert.ErrorIs(t, err, ErrClosed)
	_, err = idx.Search(context.Background(), 1, "hello", 0, 10)
	assert.ErrorIs(t, err, ErrClosed)
}
