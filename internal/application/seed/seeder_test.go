package seed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mashop-api/internal/application/seed"
	"github.com/jhoicas/mashop-api/internal/application/usecase"
	"github.com/jhoicas/mashop-api/internal/domain/entity"
	"github.com/jhoicas/mashop-api/internal/domain/repository"
	"github.com/jhoicas/mashop-api/internal/infrastructure/memory"
	"github.com/jhoicas/mashop-api/pkg/logger"
)

type erroringFeed struct{}

func (erroringFeed) FetchProducts(_ context.Context, _ int) ([]entity.Product, bool) {
	return nil, true
}

func (erroringFeed) FetchCategories(_ context.Context) ([]repository.CategorySeed, error) {
	return nil, errors.New("feed caído")
}

func newSeeder(store repository.DocumentStore) *seed.Seeder {
	activity := usecase.NewActivityLog(store, logger.Nop())
	categories := usecase.NewCategoryUseCase(store, erroringFeed{}, activity, logger.Nop())
	return seed.New(store, activity, categories, logger.Nop())
}

func TestSeeder_SiembraEstadoInicial(t *testing.T) {
	store := memory.New()
	require.NoError(t, newSeeder(store).EnsureSeeded(context.Background()))

	var users []entity.User
	found, err := store.Get(context.Background(), repository.KeyUsers, &users)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, users, 3)
	assert.Equal(t, "u-admin", users[0].ID)
	assert.Equal(t, entity.RoleAdmin, users[0].Role)
	assert.Contains(t, users[0].Avatar, "/icon/admin/")
	// Las contraseñas se guardan hasheadas, nunca en claro.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("123456")))

	var locals []entity.Product
	found, err = store.Get(context.Background(), repository.KeyLocalProducts, &locals)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, locals, 1)
	assert.Equal(t, "Demo Headphones", locals[0].Name)
	assert.Equal(t, entity.SourceLocal, locals[0].Source)
	assert.Regexp(t, "^p-", locals[0].ID)

	// Con el feed caído las categorías caen al conjunto de respaldo.
	var cats []entity.Category
	found, err = store.Get(context.Background(), repository.KeyCategories, &cats)
	require.NoError(t, err)
	require.True(t, found)
	require.NotEmpty(t, cats)
}

func TestSeeder_ReEjecutarNoDuplica(t *testing.T) {
	store := memory.New()
	s := newSeeder(store)
	require.NoError(t, s.EnsureSeeded(context.Background()))
	require.NoError(t, s.EnsureSeeded(context.Background()))

	var users []entity.User
	_, err := store.Get(context.Background(), repository.KeyUsers, &users)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	var locals []entity.Product
	_, err = store.Get(context.Background(), repository.KeyLocalProducts, &locals)
	require.NoError(t, err)
	assert.Len(t, locals, 1)
}

func TestSeeder_NoPisaDatosExistentes(t *testing.T) {
	store := memory.New()
	existing := []entity.User{{ID: "u-custom", Username: "custom", Role: entity.RoleUser}}
	require.NoError(t, store.Set(context.Background(), repository.KeyUsers, existing))

	require.NoError(t, newSeeder(store).EnsureSeeded(context.Background()))

	var users []entity.User
	_, err := store.Get(context.Background(), repository.KeyUsers, &users)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u-custom", users[0].ID)
}
