package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mashop-api/internal/domain/entity"
	apphttp "github.com/jhoicas/mashop-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/mashop-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "u-00000000-0000-0000-0000-000000000001"
	testIssuer    = "mashop-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware +
// RequireRole y un handler dummy que devuelve 200 si pasa ambos.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "tester", role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware + RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinTokenRechaza(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenMalFormadoRechaza(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp := doRequest(t, app, "Bearer no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaIncorrectaRechaza(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	tok, err := pkgjwt.Generate("otro-secret", testUserID, "tester", entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_AdminAccede(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_UsuarioComunNoAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp := doRequest(t, app, tokenForRole(t, entity.RoleUser))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleUser)

	resp := doRequest(t, app, tokenForRole(t, entity.RoleUser))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
