package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mashop-api/internal/application/dto"
	"github.com/jhoicas/mashop-api/internal/application/usecase"
	"github.com/jhoicas/mashop-api/internal/domain"
	"github.com/jhoicas/mashop-api/internal/domain/repository"
	"github.com/jhoicas/mashop-api/internal/infrastructure/memory"
	"github.com/jhoicas/mashop-api/pkg/logger"
)

func newCategoryUC(t *testing.T, feed repository.CatalogFeed) *usecase.CategoryUseCase {
	t.Helper()
	store := memory.New()
	activity := usecase.NewActivityLog(store, logger.Nop())
	return usecase.NewCategoryUseCase(store, feed, activity, logger.Nop())
}

func TestCategory_CreateNombreEnBlanco(t *testing.T) {
	uc := newCategoryUC(t, &fakeFeed{})

	_, err := uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCategory_CRUD(t *testing.T) {
	uc := newCategoryUC(t, &fakeFeed{})
	ctx := context.Background()

	created, err := uc.Create(ctx, "tester", dto.CreateCategoryRequest{Name: "Gadgets"})
	require.NoError(t, err)
	assert.Regexp(t, "^c-", created.ID)

	updated, err := uc.Update(ctx, "tester", created.ID, dto.UpdateCategoryRequest{Name: strPtr("Electronics")})
	require.NoError(t, err)
	assert.Equal(t, "Electronics", updated.Name)

	removed, err := uc.Remove(ctx, "tester", created.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, created.ID, removed.ID)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategory_UpdateIdDesconocido(t *testing.T) {
	uc := newCategoryUC(t, &fakeFeed{})

	_, err := uc.Update(context.Background(), "tester", "c-no-existe", dto.UpdateCategoryRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_RemoveIdDesconocidoEsNoOp(t *testing.T) {
	uc := newCategoryUC(t, &fakeFeed{})

	removed, err := uc.Remove(context.Background(), "tester", "c-no-existe")
	require.NoError(t, err)
	assert.Nil(t, removed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Siembra desde el feed
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_EnsureSeededDesdeFeed(t *testing.T) {
	feed := &fakeFeed{seeds: []repository.CategorySeed{
		{Slug: "beauty", Name: "Beauty"},
		{Slug: "mens-watches"}, // formato legado: solo slug
	}}
	uc := newCategoryUC(t, feed)
	ctx := context.Background()

	require.NoError(t, uc.EnsureSeeded(ctx))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c-api-beauty", list[0].ID)
	assert.Equal(t, "Beauty", list[0].Name)
	assert.Equal(t, "Mens Watches", list[1].Name, "el slug se convierte en nombre legible")
}

func TestCategory_EnsureSeededFallbackSiFeedFalla(t *testing.T) {
	feed := &fakeFeed{seedErr: errors.New("timeout")}
	uc := newCategoryUC(t, feed)
	ctx := context.Background()

	require.NoError(t, uc.EnsureSeeded(ctx))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Electronics", list[0].Name)
	assert.Equal(t, "Apparel", list[1].Name)
}

func TestCategory_EnsureSeededEsUnaSolaVez(t *testing.T) {
	feed := &fakeFeed{seeds: []repository.CategorySeed{{Slug: "beauty", Name: "Beauty"}}}
	uc := newCategoryUC(t, feed)
	ctx := context.Background()

	require.NoError(t, uc.EnsureSeeded(ctx))
	// Segundo arranque con el feed cambiado: no debe resembrar.
	feed.seeds = []repository.CategorySeed{{Slug: "furniture", Name: "Furniture"}}
	require.NoError(t, uc.EnsureSeeded(ctx))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Beauty", list[0].Name)
}

func TestCategory_ListaVaciaPersistidaCuentaComoSembrada(t *testing.T) {
	store := memory.New()
	activity := usecase.NewActivityLog(store, logger.Nop())
	feed := &fakeFeed{seeds: []repository.CategorySeed{{Slug: "beauty", Name: "Beauty"}}}
	uc := usecase.NewCategoryUseCase(store, feed, activity, logger.Nop())
	ctx := context.Background()

	// Un borrado dejó la lista vacía pero la clave existe: no se resiembra.
	require.NoError(t, store.Set(ctx, repository.KeyCategories, []any{}))
	require.NoError(t, uc.EnsureSeeded(ctx))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
