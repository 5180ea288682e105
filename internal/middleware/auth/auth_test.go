package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/vivek-boini/furniture/internal/models"
)

var secret = []byte("middleware-test-secret")

func callProtected(t *testing.T, token string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return Protect(secret)(next)(c)
}

func TestProtectAcceptsValidToken(t *testing.T) {
	user := &models.User{ID: 7, Email: "a@x.com", Role: models.RoleAdmin}
	token, err := SignToken(user, secret)
	require.NoError(t, err)

	require.NoError(t, callProtected(t, token))
}

func TestProtectRejectsExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"id":    7,
		"email": "a@x.com",
		"role":  models.RoleAdmin,
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	err = callProtected(t, raw)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestProtectRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: 7, Email: "a@x.com", Role: models.RoleAdmin}
	token, err := SignToken(user, []byte("other-secret"))
	require.NoError(t, err)

	err = callProtected(t, token)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestProtectRejectsMissingHeader(t *testing.T) {
	err := callProtected(t, "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRoleGates(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	newCtx := func(role string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.Set("role", role)
		return c
	}

	require.NoError(t, AdminOnly(next)(newCtx(models.RoleAdmin)))
	require.NoError(t, AdminOnly(next)(newCtx(models.RoleSuperAdmin)))
	require.Error(t, AdminOnly(next)(newCtx(models.RoleCustomer)))

	require.NoError(t, SuperAdminOnly(next)(newCtx(models.RoleSuperAdmin)))
	require.Error(t, SuperAdminOnly(next)(newCtx(models.RoleAdmin)))
	require.Error(t, SuperAdminOnly(next)(newCtx(models.RoleCustomer)))
}
