package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/vivek-boini/furniture/internal/hash"
	"github.com/vivek-boini/furniture/internal/logging"
	"github.com/vivek-boini/furniture/internal/middleware/auth"
	"github.com/vivek-boini/furniture/internal/models"
)

type AdminHandler struct {
	DB *gorm.DB
}

type createAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateAdmin is superadmin-only; the role defaults to admin.
func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_admin")

	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user data")
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user data")
	}

	var existing models.User
	err := h.DB.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("create_admin_failed", "status", 500, "reason", "lookup error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("create_admin_failed", "status", 500, "reason", "hash error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := h.DB.WithContext(ctx).Create(&user).Error; err != nil {
		l.Error("create_admin_failed", "status", 500, "reason", "create error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	l.Info("create_admin_success", "userID", user.ID, "role", user.Role)
	return c.JSON(http.StatusCreated, adminResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

func (h *AdminHandler) ListAdmins(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_admins")

	admins := []models.User{}
	err := h.DB.WithContext(ctx).
		Where("role IN ?", []string{models.RoleAdmin, models.RoleSuperAdmin}).
		Find(&admins).Error
	if err != nil {
		l.Error("list_admins_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, admins)
}

func (h *AdminHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get_profile")

	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
	}

	var user models.User
	if err := h.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		l.Error("get_profile_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile lets a logged-in admin change their own name/email and
// optionally re-hash a new password. No re-authentication challenge.
func (h *AdminHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_profile")

	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		l.Error("update_profile_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		pwHash, err := hash.HashPassword(req.Password)
		if err != nil {
			l.Error("update_profile_failed", "status", 500, "reason", "hash error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}
		user.PasswordHash = pwHash
	}

	if err := h.DB.WithContext(ctx).Save(&user).Error; err != nil {
		l.Error("update_profile_failed", "status", 500, "reason", "save error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	l.Info("update_profile_success", "userID", user.ID)
	return c.JSON(http.StatusOK, adminResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}
