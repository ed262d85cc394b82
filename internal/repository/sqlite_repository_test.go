package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/LeonR92/kafka/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *SQLiteItemRepository {
	t.Helper()

	repo, err := NewSQLiteItemRepository(filepath.Join(t.TempDir(), "items_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestSQLiteCreate_AssignsSequentialIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.Item{Name: "Widget", Quantity: 3, Price: 9.99})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &models.Item{Name: "Gadget", Quantity: 1, Price: 19.99})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestSQLiteCreate_RoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Item{
		Name:        "Widget",
		Description: strPtr("a widget"),
		Quantity:    3,
		Price:       9.99,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", found.Name)
	require.NotNil(t, found.Description)
	assert.Equal(t, "a widget", *found.Description)
	assert.Equal(t, 3, found.Quantity)
	assert.Equal(t, 9.99, found.Price)
}

func TestSQLiteCreate_NilDescriptionStoredAsNull(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Item{Name: "Widget", Quantity: 1, Price: 1})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Description)
}

func TestSQLiteFindByID_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSQLiteFindAll_InsertionOrderExcludesDeleted(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, _ := repo.Create(ctx, &models.Item{Name: "first", Quantity: 1, Price: 1})
	second, _ := repo.Create(ctx, &models.Item{Name: "second", Quantity: 1, Price: 2})
	third, _ := repo.Create(ctx, &models.Item{Name: "third", Quantity: 1, Price: 3})

	require.NoError(t, repo.Delete(ctx, second.ID))

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, third.ID, items[1].ID)
}

func TestSQLiteUpdate_PartialPreservesOtherFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Item{
		Name:        "Widget",
		Description: strPtr("original"),
		Quantity:    3,
		Price:       9.99,
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, models.ItemPatch{
		Quantity: intPtr(10),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Widget", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "original", *updated.Description)
	assert.Equal(t, 10, updated.Quantity)
	assert.Equal(t, 9.99, updated.Price)
}

func TestSQLiteUpdate_AllFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Item{Name: "Widget", Quantity: 3, Price: 9.99})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, models.ItemPatch{
		Name:        strPtr("Gadget"),
		Description: strPtr("now described"),
		Quantity:    intPtr(5),
		Price:       floatPtr(12.5),
	})
	require.NoError(t, err)

	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, "now described", *updated.Description)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, 12.5, updated.Price)

	// The write is durable, not just reflected in the return value
	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gadget", found.Name)
}

func TestSQLiteUpdate_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Update(context.Background(), 42, models.ItemPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSQLiteDelete_TwiceReportsAbsence(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Item{Name: "Widget", Quantity: 1, Price: 1})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrItemNotFound)
}

func TestSQLiteIDsNeverReusedAfterDeletion(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.Item{Name: "first", Quantity: 1, Price: 1})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, first.ID))

	second, err := repo.Create(ctx, &models.Item{Name: "second", Quantity: 1, Price: 1})
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
}
