package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/vivek-boini/furniture/internal/models"
)

// Protect validates the Authorization bearer token and puts the claims
// into the echo context.
func Protect(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			setUserContext(c, claims)
			return next(c)
		}
	}
}

// AdminOnly passes admin and superadmin roles.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role := Role(c)
		if role == models.RoleAdmin || role == models.RoleSuperAdmin {
			return next(c)
		}
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized as admin")
	}
}

// SuperAdminOnly passes the superadmin role exactly.
func SuperAdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Role(c) == models.RoleSuperAdmin {
			return next(c)
		}
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized as super admin")
	}
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	if id, ok := claims["id"].(float64); ok {
		c.Set("userID", uint(id))
	}
	if email, ok := claims["email"].(string); ok {
		c.Set("email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}

func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("userID").(uint)
	return id, ok
}

func Role(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
