package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/crm-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/crm-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "crm-api-test"
)

func testAuthUseCase() *auth.AuthUseCase {
	users := memory.NewUserRepository(memory.NewStore())
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, TTL: time.Hour, Issuer: testIssuer})
}

// buildTestApp app mínima con AuthMiddleware y un handler que expone el Caller resuelto.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami",
		apphttp.AuthMiddleware(testAuthUseCase()),
		func(c *fiber.Ctx) error {
			caller := apphttp.GetCaller(c)
			body := fiber.Map{"anonymous": caller.Anonymous(), "tokenError": caller.TokenErr != nil}
			if caller.Identity != nil {
				body["id"] = caller.Identity.ID
				body["email"] = caller.Identity.Email
			}
			return c.JSON(body)
		},
	)
	return app
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		ID:       testUserID,
		Email:    "ana@acme.com",
		Name:     "Ana",
		LastName: "Gómez",
	}, testIssuer, time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// whoami lanza GET /whoami y decodifica el cuerpo.
func whoami(t *testing.T, app *fiber.App, authHeader string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "el middleware nunca corta la petición")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido(t *testing.T) {
	body := whoami(t, buildTestApp(), "Bearer "+validToken(t))

	assert.Equal(t, false, body["anonymous"])
	assert.Equal(t, testUserID, body["id"])
	assert.Equal(t, "ana@acme.com", body["email"])
}

func TestAuthMiddleware_SinHeader_Anonimo(t *testing.T) {
	body := whoami(t, buildTestApp(), "")

	assert.Equal(t, true, body["anonymous"])
	assert.Equal(t, false, body["tokenError"])
}

func TestAuthMiddleware_SinPrefijoBearer_Anonimo(t *testing.T) {
	body := whoami(t, buildTestApp(), validToken(t))

	assert.Equal(t, true, body["anonymous"])
	assert.Equal(t, false, body["tokenError"])
}

func TestAuthMiddleware_BearerVacio_Anonimo(t *testing.T) {
	body := whoami(t, buildTestApp(), "Bearer   ")

	assert.Equal(t, true, body["anonymous"])
	assert.Equal(t, false, body["tokenError"])
}

func TestAuthMiddleware_TokenInvalido_RecuerdaError(t *testing.T) {
	body := whoami(t, buildTestApp(), "Bearer xxx.yyy.zzz")

	assert.Equal(t, true, body["anonymous"])
	assert.Equal(t, true, body["tokenError"])
}

func TestAuthMiddleware_SecretIncorrecto_RecuerdaError(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret", pkgjwt.Identity{ID: testUserID}, testIssuer, time.Hour)
	require.NoError(t, err)

	body := whoami(t, buildTestApp(), "Bearer "+tok)
	assert.Equal(t, true, body["tokenError"])
}

func TestAuthMiddleware_PrefijoSinDistinguirMayusculas(t *testing.T) {
	body := whoami(t, buildTestApp(), "bearer "+validToken(t))

	assert.Equal(t, false, body["anonymous"])
	assert.Equal(t, testUserID, body["id"])
}
