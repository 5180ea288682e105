package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vivek-boini/furniture/internal/config"
	"github.com/vivek-boini/furniture/internal/hash"
	"github.com/vivek-boini/furniture/internal/middleware/auth"
	"github.com/vivek-boini/furniture/internal/models"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Auth     *AuthHandler
	Products *ProductHandler
	Orders   *OrderHandler
	Settings *SettingsHandler
	Admins   *AdminHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Auth:     &AuthHandler{DB: db, JWTSecret: testSecret},
		Products: &ProductHandler{DB: db},
		Orders:   &OrderHandler{DB: db},
		Settings: &SettingsHandler{DB: db},
		Admins:   &AdminHandler{DB: db},
	}
}

func (env *testEnv) doJSONRequest(method, target string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createUser(role string) *models.User {
	env.T.Helper()

	pwHash, err := hash.HashPassword("password123")
	require.NoError(env.T, err)

	user := &models.User{
		Name:         "Test " + role,
		Email:        role + "@example.com",
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(env.T, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) tokenFor(user *models.User) string {
	env.T.Helper()

	token, err := auth.SignToken(user, testSecret)
	require.NoError(env.T, err)
	return token
}

func (env *testEnv) asUser(c echo.Context, user *models.User) {
	c.Set("userID", user.ID)
	c.Set("email", user.Email)
	c.Set("role", user.Role)
}

func (env *testEnv) createProduct(p models.Product) models.Product {
	env.T.Helper()
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he.Code
}

func floatPtr(v float64) *float64 { return &v }

func idParam(c echo.Context, id uint) {
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(id), 10))
}
