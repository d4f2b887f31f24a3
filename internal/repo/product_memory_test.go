package repo_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/rogerio-castellano/loja-api/internal/models"
	"github.com/rogerio-castellano/loja-api/internal/repo"
)

func TestInMemoryProductRepository(t *testing.T) {
	runProductRepositoryTests(t, func(t *testing.T) repo.ProductRepository {
		return repo.NewInMemoryProductRepository()
	})
}

func TestInMemoryProductRepository_FindAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryProductRepository()
	saved, err := r.Save(ctx, models.Product{Name: null.StringFrom("Widget")})
	require.NoError(t, err)

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	all[0].Name = null.StringFrom("Changed")

	got, err := r.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name.String)
}

func TestInMemoryProductRepository_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryProductRepository()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Save(ctx, models.Product{Quantity: null.IntFrom(1)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)

	seen := make(map[int64]bool, n)
	for _, p := range all {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}
