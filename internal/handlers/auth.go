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

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

func (h *AuthHandler) CustomerSignup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.customer_signup")

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	var existing models.User
	err := h.DB.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("signup_failed", "status", 500, "reason", "lookup error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("signup_failed", "status", 500, "reason", "hash error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         models.RoleCustomer,
	}
	if err := h.DB.WithContext(ctx).Create(&user).Error; err != nil {
		l.Error("signup_failed", "status", 500, "reason", "create error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	token, err := auth.SignToken(&user, h.JWTSecret)
	if err != nil {
		l.Error("signup_failed", "status", 500, "reason", "token error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	l.Info("signup_success", "userID", user.ID)
	return c.JSON(http.StatusCreated, authResponse{
		Message: "Signup successful",
		Token:   token,
		Name:    user.Name,
		Email:   user.Email,
		Role:    models.RoleCustomer,
	})
}

// CustomerLogin keeps the historical differentiated errors: a missing
// account and a wrong password answer differently. Admin login does not.
func (h *AuthHandler) CustomerLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.customer_login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password required")
	}

	var user models.User
	err := h.DB.WithContext(ctx).
		Where("email = ? AND role = ?", req.Email, models.RoleCustomer).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Customer not found")
		}
		l.Error("login_failed", "status", 500, "reason", "lookup error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid password")
	}

	token, err := auth.SignToken(&user, h.JWTSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "token error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	l.Info("login_success", "userID", user.ID)
	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		Name:    user.Name,
		Email:   user.Email,
		Role:    models.RoleCustomer,
	})
}

func (h *AuthHandler) AdminLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.admin_login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password required")
	}

	var user models.User
	err := h.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("login_failed", "status", 500, "reason", "lookup error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	isAdmin := user.Role == models.RoleAdmin || user.Role == models.RoleSuperAdmin
	if err == nil && isAdmin && hash.CheckPassword(user.PasswordHash, req.Password) {
		token, err := auth.SignToken(&user, h.JWTSecret)
		if err != nil {
			l.Error("login_failed", "status", 500, "reason", "token error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}

		l.Info("admin_login_success", "userID", user.ID)
		return c.JSON(http.StatusOK, authResponse{
			Message: "Admin login successful",
			Token:   token,
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role,
		})
	}

	// Deliberately undifferentiated so probes cannot tell a missing
	// account from a wrong password.
	return echo.NewHTTPError(http.StatusUnauthorized, "Invalid admin credentials")
}
