package notes

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// countingStore records how many writes reach the wrapped store.
type countingStore struct {
	Store
	updates int
}

func (c *countingStore) Update(ctx context.Context, n *Note) error {
	c.updates++
	return c.Store.Update(ctx, n)
}

func TestService_Create(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		note, err := svc.Create(ctx, CreateNoteInput{UserID: 1, Title: "Groceries", Content: "milk"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), note.ID)
		assert.Nil(t, note.UpdatedAt)
		assert.False(t, note.CreatedAt.IsZero())
	})

	t.Run("InvalidOwner", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateNoteInput{UserID: 0, Title: "x", Content: "y"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "user_id", verrs[0].Field())
	})

	t.Run("EmptyTitle", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateNoteInput{UserID: 1, Title: "", Content: "y"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "title", verrs[0].Field())
	})
}

func TestService_Update(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	fixed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoteInput{UserID: 2, Title: "Old", Content: "Body"})
	require.NoError(t, err)

	t.Run("PartialKeepsOtherField", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, UpdateNoteInput{Title: strPtr("New")})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, "Body", updated.Content)
		assert.Equal(t, int64(2), updated.UserID)
		require.NotNil(t, updated.UpdatedAt)
		assert.Equal(t, fixed, *updated.UpdatedAt)

		stored, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", stored.Title)
		assert.Equal(t, created.CreatedAt, stored.CreatedAt)
	})

	t.Run("EmptyContentRejected", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, UpdateNoteInput{Content: strPtr("")})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := svc.Update(ctx, 404, UpdateNoteInput{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrNoteNotFound)
	})
}

func TestService_UpdateWithoutFields(t *testing.T) {
	store := &countingStore{Store: NewMemoryStore()}
	svc := NewService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoteInput{UserID: 1, Title: "Keep", Content: "Same"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, UpdateNoteInput{})
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Title)
	assert.Equal(t, "Same", got.Content)
	assert.Nil(t, got.UpdatedAt)
	assert.Zero(t, store.updates)

	stored, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.UpdatedAt)

	_, err = svc.Update(ctx, 404, UpdateNoteInput{})
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestMemoryStore_ListFilterAndPaging(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, owner := range []int64{1, 2, 1, 3, 1} {
		require.NoError(t, store.Insert(ctx, &Note{UserID: owner, Title: "t", Content: "c"}))
	}

	all, err := store.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	mine, err := store.List(ctx, ListQuery{UserID: 1})
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, []int64{1, 3, 5}, []int64{mine[0].ID, mine[1].ID, mine[2].ID})

	page, err := store.List(ctx, ListQuery{UserID: 1, Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(3), page[0].ID)

	none, err := store.List(ctx, ListQuery{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, none)
}
