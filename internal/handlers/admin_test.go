package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vivek-boini/furniture/internal/hash"
	"github.com/vivek-boini/furniture/internal/models"
)

func TestCreateAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/admins/create", map[string]string{
		"name":     "New Admin",
		"email":    "newadmin@example.com",
		"password": "strongpass",
	})
	require.NoError(t, env.Admins.CreateAdmin(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var stored models.User
	require.NoError(t, env.DB.Where("email = ?", "newadmin@example.com").First(&stored).Error)
	require.Equal(t, models.RoleAdmin, stored.Role)
	require.NotEqual(t, "strongpass", stored.PasswordHash)
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(models.RoleAdmin)

	_, c := env.doJSONRequest(http.MethodPost, "/api/admins/create", map[string]string{
		"name":     "Clone",
		"email":    admin.Email,
		"password": "strongpass",
	})
	err := env.Admins.CreateAdmin(c)
	require.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestCreateAdminRejectsCustomerRole(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/admins/create", map[string]string{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": "strongpass",
		"role":     "customer",
	})
	err := env.Admins.CreateAdmin(c)
	require.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestListAdminsExcludesCustomers(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(models.RoleAdmin)
	env.createUser(models.RoleSuperAdmin)
	env.createUser(models.RoleCustomer)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/admins/list", nil)
	require.NoError(t, env.Admins.ListAdmins(c))

	var admins []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &admins))
	require.Len(t, admins, 2)
	// Password hashes never serialize.
	require.NotContains(t, rec.Body.String(), "PasswordHash")
	require.NotContains(t, rec.Body.String(), "password")
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(models.RoleAdmin)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/admins/profile", nil)
	env.asUser(c, admin)
	require.NoError(t, env.Admins.GetProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, admin.Email, resp.Email)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(models.RoleAdmin)

	rec, c := env.doJSONRequest(http.MethodPut, "/api/admins/profile", map[string]string{
		"name":     "Renamed",
		"password": "newpassword",
	})
	env.asUser(c, admin)
	require.NoError(t, env.Admins.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, env.DB.First(&stored, admin.ID).Error)
	require.Equal(t, "Renamed", stored.Name)
	require.Equal(t, admin.Email, stored.Email)
	require.True(t, hash.CheckPassword(stored.PasswordHash, "newpassword"))
	require.False(t, hash.CheckPassword(stored.PasswordHash, "password123"))
}
