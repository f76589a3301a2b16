package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mashop-api/internal/application/auth"
	"github.com/jhoicas/mashop-api/internal/application/dto"
	"github.com/jhoicas/mashop-api/internal/application/usecase"
	"github.com/jhoicas/mashop-api/internal/domain/entity"
	"github.com/jhoicas/mashop-api/internal/domain/repository"
	"github.com/jhoicas/mashop-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/mashop-api/internal/interfaces/http"
	"github.com/jhoicas/mashop-api/pkg/logger"
)

// staticFeed implementa repository.CatalogFeed con un snapshot fijo.
type staticFeed struct {
	items []entity.Product
}

func (f *staticFeed) FetchProducts(_ context.Context, _ int) ([]entity.Product, bool) {
	out := make([]entity.Product, len(f.items))
	copy(out, f.items)
	return out, false
}

func (f *staticFeed) FetchCategories(_ context.Context) ([]repository.CategorySeed, error) {
	return nil, nil
}

// buildAPI arma la aplicación completa sobre un store en memoria.
func buildAPI(t *testing.T, feed repository.CatalogFeed) *fiber.App {
	t.Helper()
	store := memory.New()
	activityUC := usecase.NewActivityLog(store, logger.Nop())
	categoryUC := usecase.NewCategoryUseCase(store, feed, activityUC, logger.Nop())
	catalogUC := usecase.NewCatalogUseCase(store, feed, activityUC, 100)
	authUC := auth.NewAuthUseCase(store, activityUC, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC:  catalogUC,
		CategoryUC: categoryUC,
		ActivityUC: activityUC,
		AuthUC:     authUC,
		JWTSecret:  testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_ListaPublicaConStale(t *testing.T) {
	feed := &staticFeed{items: []entity.Product{{
		ID: "r-1", RemoteID: 1, Name: "Phone", Title: "Phone",
		Price: decimal.NewFromInt(10), Source: entity.SourceRemote,
	}}}
	app := buildAPI(t, feed)

	resp := doJSON(t, app, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.ProductListResponse](t, resp)
	assert.False(t, out.Stale)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "r-1", out.Items[0].ID)
}

func TestProductos_MutarSinTokenRechaza(t *testing.T) {
	app := buildAPI(t, &staticFeed{})

	resp := doJSON(t, app, http.MethodPost, "/api/products", "", dto.CreateProductRequest{Name: "Widget"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProductos_FlujoRegistroLoginCRUD(t *testing.T) {
	app := buildAPI(t, &staticFeed{items: []entity.Product{{
		ID: "r-1", RemoteID: 1, Name: "Phone", Title: "Phone",
		Price: decimal.NewFromInt(10), Source: entity.SourceRemote,
	}}})

	// Registro + login para obtener el token de sesión.
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Username: "bob", Password: "secret"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Username: "bob", Password: "secret"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	token := "Bearer " + login.Token

	// Crear producto local.
	resp = doJSON(t, app, http.MethodPost, "/api/products", token,
		dto.CreateProductRequest{Name: "Widget", Price: decimal.NewFromInt(5), Stock: 3})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	assert.Regexp(t, "^p-", created.ID)

	// Override de producto remoto.
	resp = doJSON(t, app, http.MethodPut, "/api/products/r-1", token,
		map[string]any{"price": 20})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Tombstone: dos veces, ambas exitosas.
	resp = doJSON(t, app, http.MethodDelete, "/api/products/r-1", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, "/api/products/r-1", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// La vista fusionada excluye el remoto enterrado y conserva el local.
	resp = doJSON(t, app, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.ProductListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)
}

func TestProductos_IdFormatoDesconocido(t *testing.T) {
	app := buildAPI(t, &staticFeed{})

	resp := doJSON(t, app, http.MethodPut, "/api/products/zzz-9", tokenForRole(t, entity.RoleUser),
		map[string]any{"name": "X"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "UNKNOWN_ID_FORMAT", out.Code)
}

func TestActividades_SoloAdmin(t *testing.T) {
	app := buildAPI(t, &staticFeed{})

	resp := doJSON(t, app, http.MethodGet, "/api/activities", tokenForRole(t, entity.RoleUser), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/activities", tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
