package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vivek-boini/furniture/internal/models"
)

const TokenTTL = 7 * 24 * time.Hour

// SignToken issues the HS256 bearer token carried by every client:
// identity, email and role, valid for seven days.
func SignToken(user *models.User, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(TokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}
