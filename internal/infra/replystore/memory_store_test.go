package replystore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/legalmitra/legalmitra/internal/domain/chat"
)

func TestMemoryStore_SaveAndGetReply(t *testing.T) {
	store := NewMemoryStore()
	record := chat.CachedReply{
		Canonical:       "what is dowry law",
		Question:        "What is dowry law?",
		Reply:           "Dowry is illegal.",
		MatchedQuestion: "What is dowry law?",
		CreatedAt:       time.Now(),
	}
	require.NoError(t, store.SaveReply(context.Background(), record, 0))

	got, ok, err := store.GetReply(context.Background(), "what is dowry law")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, record.Reply, got.Reply)

	_, ok, err = store.GetReply(context.Background(), "unknown")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStore_ReplyExpires(t *testing.T) {
	store := NewMemoryStore()
	record := chat.CachedReply{Canonical: "q", Reply: "a"}
	require.NoError(t, store.SaveReply(context.Background(), record, time.Nanosecond))

	time.Sleep(5 * time.Millisecond)
	_, ok, err := store.GetReply(context.Background(), "q")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStore_TopQueries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.IncrementQuery(ctx, "what is dowry law", "What is dowry law?"))
	}
	require.NoError(t, store.IncrementQuery(ctx, "how to file an fir", "How to file an FIR?"))

	top, err := store.TopQueries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, chat.TrendingQuery{Query: "What is dowry law?", Count: 3}, top[0])

	top, err = store.TopQueries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
}

func TestMemoryStore_IgnoresEmptyCanonical(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.IncrementQuery(context.Background(), "", "display"))
	top, err := store.TopQueries(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, top)
}
