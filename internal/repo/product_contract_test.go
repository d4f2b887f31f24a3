package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/rogerio-castellano/loja-api/internal/models"
	"github.com/rogerio-castellano/loja-api/internal/repo"
)

// runProductRepositoryTests checks the behaviour every ProductRepository must share.
// newRepo must return an empty repository.
func runProductRepositoryTests(t *testing.T, newRepo func(t *testing.T) repo.ProductRepository) {
	ctx := context.Background()

	t.Run("FindAll on empty store", func(t *testing.T) {
		r := newRepo(t)
		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("Save assigns increasing ids", func(t *testing.T) {
		r := newRepo(t)
		a, err := r.Save(ctx, models.Product{Name: null.StringFrom("Phone")})
		require.NoError(t, err)
		b, err := r.Save(ctx, models.Product{Name: null.StringFrom("Tablet")})
		require.NoError(t, err)

		assert.Positive(t, a.ID)
		assert.Greater(t, b.ID, a.ID)

		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, a, all[0])
		assert.Equal(t, b, all[1])
	})

	t.Run("Save keeps null columns", func(t *testing.T) {
		r := newRepo(t)
		saved, err := r.Save(ctx, models.Product{Price: null.Float64From(2.5)})
		require.NoError(t, err)

		got, err := r.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.False(t, got.Name.Valid)
		assert.Equal(t, 2.5, got.Price.Float64)
		assert.False(t, got.Quantity.Valid)
	})

	t.Run("Save with existing id overwrites every field", func(t *testing.T) {
		r := newRepo(t)
		saved, err := r.Save(ctx, models.Product{
			Name:     null.StringFrom("Widget"),
			Price:    null.Float64From(1.5),
			Quantity: null.IntFrom(10),
		})
		require.NoError(t, err)

		replaced, err := r.Save(ctx, models.Product{ID: saved.ID, Name: null.StringFrom("Gadget")})
		require.NoError(t, err)
		assert.Equal(t, saved.ID, replaced.ID)

		got, err := r.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Product{ID: saved.ID, Name: null.StringFrom("Gadget")}, got)

		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("Save with unknown id inserts and later ids skip it", func(t *testing.T) {
		r := newRepo(t)
		explicit, err := r.Save(ctx, models.Product{ID: 50, Name: null.StringFrom("Imported")})
		require.NoError(t, err)
		assert.EqualValues(t, 50, explicit.ID)

		next, err := r.Save(ctx, models.Product{Name: null.StringFrom("Fresh")})
		require.NoError(t, err)
		assert.Greater(t, next.ID, int64(50))
	})

	t.Run("Save with a reused low id never rewinds id assignment", func(t *testing.T) {
		r := newRepo(t)
		first, err := r.Save(ctx, models.Product{Name: null.StringFrom("first")})
		require.NoError(t, err)
		second, err := r.Save(ctx, models.Product{Name: null.StringFrom("second")})
		require.NoError(t, err)
		require.NoError(t, r.DeleteByID(ctx, first.ID))
		require.NoError(t, r.DeleteByID(ctx, second.ID))

		reinserted, err := r.Save(ctx, models.Product{ID: first.ID, Name: null.StringFrom("again")})
		require.NoError(t, err)
		assert.Equal(t, first.ID, reinserted.ID)

		fresh, err := r.Save(ctx, models.Product{Name: null.StringFrom("fresh")})
		require.NoError(t, err)
		assert.Greater(t, fresh.ID, second.ID)
	})

	t.Run("FindByID missing", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.FindByID(ctx, 42)
		assert.ErrorIs(t, err, repo.ErrProductNotFound)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		r := newRepo(t)
		keep, err := r.Save(ctx, models.Product{Name: null.StringFrom("Keep")})
		require.NoError(t, err)
		drop, err := r.Save(ctx, models.Product{Name: null.StringFrom("Drop")})
		require.NoError(t, err)

		require.NoError(t, r.DeleteByID(ctx, drop.ID))
		assert.ErrorIs(t, r.DeleteByID(ctx, drop.ID), repo.ErrProductNotFound)

		_, err = r.FindByID(ctx, drop.ID)
		assert.ErrorIs(t, err, repo.ErrProductNotFound)

		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Product{keep}, all)
	})
}
