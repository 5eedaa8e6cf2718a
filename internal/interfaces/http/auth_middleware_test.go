package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	apphttp "github.com/jhoicas/retail-backoffice/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/retail-backoffice/pkg/jwt"
)

// ── Helpers ──

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "ana@tienda.co"
	testIssuer    = "retail-backoffice-test"
	testExpMin    = 60
)

// signed firma un token con los claims dados y lo devuelve como header Authorization.
func signed(t *testing.T, secret, userID, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, userID, testEmail, role, testIssuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// tokenForRole token válido del usuario de prueba con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return signed(t, testJWTSecret, testUserID, role, testExpMin)
}

// guarded expone GET /guarded tras AuthMiddleware + RequireRole y responde con los claims cargados.
func guarded(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id": apphttp.GetUserID(c),
				"email":   apphttp.GetEmail(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

// hit hace GET /guarded y decodifica el cuerpo: claims si 200, ErrorResponse en otro caso.
func hit(t *testing.T, app *fiber.App, authHeader string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// ── RequireRole: matriz de roles de las rutas del back-office ──

func TestRequireRole_MatrizDeRoles(t *testing.T) {
	stockRoles := []string{entity.RoleAdmin, entity.RoleBodeguero}
	adminOnly := []string{entity.RoleAdmin}

	cases := []struct {
		name    string
		allowed []string
		role    string
		status  int
	}{
		{"admin ajusta stock", stockRoles, entity.RoleAdmin, http.StatusOK},
		{"bodeguero ajusta stock", stockRoles, entity.RoleBodeguero, http.StatusOK},
		{"vendedor no ajusta stock", stockRoles, entity.RoleVendedor, http.StatusForbidden},
		{"admin borra documentos", adminOnly, entity.RoleAdmin, http.StatusOK},
		{"bodeguero no borra documentos", adminOnly, entity.RoleBodeguero, http.StatusForbidden},
		{"rol desconocido", adminOnly, "supervisor", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := hit(t, guarded(tc.allowed...), tokenForRole(t, tc.role))
			assert.Equal(t, tc.status, status)
			if tc.status == http.StatusForbidden {
				assert.Equal(t, dto.CodeForbidden, body["code"])
				assert.Contains(t, body["message"], tc.role)
				return
			}
			assert.Equal(t, tc.role, body["role"])
		})
	}
}

func TestRequireRole_TokenSinRolEs401(t *testing.T) {
	status, body := hit(t, guarded(entity.RoleAdmin), signed(t, testJWTSecret, testUserID, "", testExpMin))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, dto.CodeMissingRole, body["code"])
}

// ── AuthMiddleware: rechazo del header y del token ──

func TestAuthMiddleware_RechazaCredenciales(t *testing.T) {
	cases := []struct {
		name   string
		header func(t *testing.T) string
		code   string
	}{
		{"sin header", func(*testing.T) string { return "" }, dto.CodeMissingToken},
		{"esquema Basic", func(*testing.T) string { return "Basic abc123" }, dto.CodeInvalidToken},
		{"Bearer sin token", func(*testing.T) string { return "Bearer" }, dto.CodeInvalidToken},
		{"token malformado", func(*testing.T) string { return "Bearer token.invalido.aqui" }, dto.CodeInvalidToken},
		{"firmado con otro secreto", func(t *testing.T) string {
			return signed(t, "otro-secreto", testUserID, entity.RoleAdmin, testExpMin)
		}, dto.CodeInvalidToken},
		{"expirado", func(t *testing.T) string {
			return signed(t, testJWTSecret, testUserID, entity.RoleAdmin, -5)
		}, dto.CodeInvalidToken},
		{"sin user_id", func(t *testing.T) string {
			return signed(t, testJWTSecret, "", entity.RoleAdmin, testExpMin)
		}, dto.CodeInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := hit(t, guarded(entity.RoleAdmin), tc.header(t))
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestAuthMiddleware_CargaClaimsEnLocals(t *testing.T) {
	// el esquema se compara sin distinguir mayúsculas
	tok := tokenForRole(t, entity.RoleVendedor)
	status, body := hit(t, guarded(entity.RoleVendedor), "bearer "+tok[len("Bearer "):])
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testEmail, body["email"])
	assert.Equal(t, entity.RoleVendedor, body["role"])
}
