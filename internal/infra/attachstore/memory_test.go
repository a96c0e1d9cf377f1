package attachstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.Zero(t, store.Len())
	require.NoError(t, store.Put(ctx, "uploads/abc", []byte("pdf-bytes"), "application/pdf"))
	require.Equal(t, 1, store.Len())

	data, mimeType, ok := store.Get(ctx, "uploads/abc")
	require.True(t, ok)
	require.Equal(t, []byte("pdf-bytes"), data)
	require.Equal(t, "application/pdf", mimeType)

	_, _, ok = store.Get(ctx, "uploads/missing")
	require.False(t, ok)
}

func TestMemoryStore_PutCopiesPayload(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("original")
	require.NoError(t, store.Put(ctx, "k", payload, "text/plain"))
	payload[0] = 'X'

	data, _, ok := store.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, []byte("original"), data)
}
