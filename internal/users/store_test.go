package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Insert(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	a := &User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, store.Insert(ctx, a))
	assert.Equal(t, int64(1), a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	assert.ErrorIs(t, store.Insert(ctx, &User{Username: "alice", Email: "new@example.com"}), ErrUsernameTaken)
	assert.ErrorIs(t, store.Insert(ctx, &User{Username: "alice2", Email: "alice@example.com"}), ErrEmailTaken)
}

func TestMemoryStore_InsertReportsUsernameBeforeEmail(t *testing.T) {
	ctx := context.Background()

	// Map order is random, so repeat with fresh stores.
	for i := 0; i < 50; i++ {
		store := NewMemoryStore()
		require.NoError(t, store.Insert(ctx, &User{Username: "alice", Email: "x@example.com"}))
		require.NoError(t, store.Insert(ctx, &User{Username: "bob", Email: "b@example.com"}))

		err := store.Insert(ctx, &User{Username: "bob", Email: "x@example.com"})
		require.ErrorIs(t, err, ErrUsernameTaken, "attempt %d", i)
	}
}

func TestMemoryStore_ListPaging(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, name := range []string{"ann", "ben", "cat"} {
		require.NoError(t, store.Insert(ctx, &User{Username: name, Email: name + "@example.com"}))
	}

	got, err := store.List(ctx, ListQuery{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ben", got[0].Username)

	got, err = store.List(ctx, ListQuery{Skip: 5, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}
