package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	apphttp "github.com/jhoicas/ecorecoleccion-api/internal/interfaces/http"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	pkgjwt "github.com/jhoicas/ecorecoleccion-api/pkg/jwt"
	"github.com/jhoicas/ecorecoleccion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "ecorecoleccion-test"
	testExpMin    = 60
)

func newManager(t *testing.T) *pkgjwt.Manager {
	t.Helper()
	mgr, err := pkgjwt.NewManager(testJWTSecret, testIssuer, testExpMin)
	require.NoError(t, err)
	return mgr
}

// buildTestApp construye una app mínima: AuthMiddleware, el guard indicado y un handler
// que devuelve el principal si pasa los middlewares.
func buildTestApp(t *testing.T, guard func(*apphttp.Authorizer) fiber.Handler, log *logger.Logger) *fiber.App {
	t.Helper()
	app := fiber.New()
	az := apphttp.NewAuthorizer(nil, log)
	app.Get("/protected",
		apphttp.AuthMiddleware(newManager(t)),
		guard(az),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

func requireRole(roles ...authz.Role) func(*apphttp.Authorizer) fiber.Handler {
	return func(a *apphttp.Authorizer) fiber.Handler { return a.RequireRole(roles...) }
}

// tokenForRole genera un Bearer token con el rol indicado.
func tokenForRole(t *testing.T, role authz.Role) string {
	t.Helper()
	tok, _, err := newManager(t).Generate(authz.Principal{UserID: testUserID, Email: "test@eco.co", Role: role})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza GET /protected y devuelve la respuesta.
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

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeElPrincipal(t *testing.T) {
	app := buildTestApp(t, requireRole(authz.RoleRequester), nil)
	resp := doRequest(t, app, tokenForRole(t, authz.RoleRequester))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "usuario", body["role"])
}

func TestAuthMiddleware_CodigosDeError(t *testing.T) {
	expired, _, err := newManager(t).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Generate(authz.Principal{UserID: testUserID, Role: authz.RoleAdmin})
	require.NoError(t, err)

	otherSecret, err := pkgjwt.NewManager("otro-secreto", testIssuer, testExpMin)
	require.NoError(t, err)
	forged, _, err := otherSecret.Generate(authz.Principal{UserID: testUserID, Role: authz.RoleAdmin})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin cabecera", "", apphttp.CodeMissingToken},
		{"bearer vacío", "Bearer ", apphttp.CodeMissingToken},
		{"esquema incorrecto", "Basic dXNlcjpwYXNz", apphttp.CodeInvalidToken},
		{"token basura", "Bearer no.es.jwt", apphttp.CodeInvalidToken},
		{"firma de otro secreto", "Bearer " + forged, apphttp.CodeInvalidToken},
		{"expirado", "Bearer " + expired, apphttp.CodeTokenExpired},
	}
	app := buildTestApp(t, requireRole(authz.RoleAdmin), nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, tc.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, "no autenticado", body.Message)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Authorizer
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminSiemprePasa(t *testing.T) {
	app := buildTestApp(t, requireRole(authz.RoleCollector), nil)
	resp := doRequest(t, app, tokenForRole(t, authz.RoleAdmin))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_OtroRolEsForbidden(t *testing.T) {
	app := buildTestApp(t, requireRole(authz.RoleAdmin), nil)
	resp := doRequest(t, app, tokenForRole(t, authz.RoleCollector))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, apphttp.CodeForbidden, body.Code)
	assert.Equal(t, "no tienes permiso para realizar esta acción", body.Message)
}

func TestRequirePermission_TablaPorRol(t *testing.T) {
	cases := []struct {
		name   string
		guard  func(*apphttp.Authorizer) fiber.Handler
		role   authz.Role
		status int
	}{
		{"recolector escribe puntos", func(a *apphttp.Authorizer) fiber.Handler {
			return a.RequirePermission(authz.ActionWrite, authz.ResourcePoints)
		}, authz.RoleCollector, http.StatusOK},
		{"solicitante no escribe puntos", func(a *apphttp.Authorizer) fiber.Handler {
			return a.RequirePermission(authz.ActionWrite, authz.ResourcePoints)
		}, authz.RoleRequester, http.StatusForbidden},
		{"any-of: solicitante lee reportes", func(a *apphttp.Authorizer) fiber.Handler {
			return a.RequireAnyPermission(
				authz.P(authz.ActionRead, authz.ResourceCollections),
				authz.P(authz.ActionRead, authz.ResourceReports))
		}, authz.RoleRequester, http.StatusOK},
		{"all-of: recolector tiene ambos", func(a *apphttp.Authorizer) fiber.Handler {
			return a.RequireAllPermissions(
				authz.P(authz.ActionWrite, authz.ResourceCollections),
				authz.P(authz.ActionRead, authz.ResourceCollectionRoutes))
		}, authz.RoleCollector, http.StatusOK},
		{"all-of: solicitante no tiene ninguno", func(a *apphttp.Authorizer) fiber.Handler {
			return a.RequireAllPermissions(
				authz.P(authz.ActionWrite, authz.ResourceCollections),
				authz.P(authz.ActionRead, authz.ResourceCollectionRoutes))
		}, authz.RoleRequester, http.StatusForbidden},
		{"admin pasa sin estar en la tabla", func(a *apphttp.Authorizer) fiber.Handler {
			return a.RequirePermission(authz.ActionOverride, authz.ResourceAll)
		}, authz.RoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildTestApp(t, tc.guard, nil)
			resp := doRequest(t, app, tokenForRole(t, tc.role))
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAuthorizer_SinPrincipalEs401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.NewAuthorizer(nil, nil).RequireRole(authz.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeMissingToken, decodeError(t, resp).Code)
}

func TestAuthorizer_DenegacionSeRegistraSinExponerElPermiso(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "warn", Output: &buf})
	app := buildTestApp(t, func(a *apphttp.Authorizer) fiber.Handler {
		return a.RequirePermission(authz.ActionRead, authz.ResourceDashboard)
	}, log)

	resp := doRequest(t, app, tokenForRole(t, authz.RoleCollector))
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.NotContains(t, decodeError(t, resp).Message, "dashboard")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "recolector", entry["role"])
	assert.Equal(t, "/protected", entry["path"])
	assert.Equal(t, "read:dashboard", entry["rule"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de contexto
// ──────────────────────────────────────────────────────────────────────────────

func TestGetPrincipal_SinAutenticacion(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", func(c *fiber.Ctx) error {
		assert.Nil(t, apphttp.GetPrincipal(c))
		assert.Equal(t, "", apphttp.GetUserID(c))
		assert.Equal(t, authz.Role(""), apphttp.GetRole(c))
		return c.SendStatus(fiber.StatusNoContent)
	})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
