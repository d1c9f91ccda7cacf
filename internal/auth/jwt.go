package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

var (
	jwtSecret      []byte
	accessTokenTTL = 15 * time.Minute
)

var ErrInvalidToken = errors.New("invalid token")

// Configure sets the signing secret and access-token lifetime. Must be
// called once at startup before any token is issued or parsed.
func Configure(secret string, ttl time.Duration) {
	jwtSecret = []byte(secret)
	if ttl > 0 {
		accessTokenTTL = ttl
	}
}

// GenerateToken issues a short-lived HS256 access token carrying the user's
// id, username and role.
func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
}

// TokenClaims parses the bearer token out of an Authorization header and
// returns its claims.
func TokenClaims(authorization string) (*jwt.Token, jwt.MapClaims, error) {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return nil, nil, ErrInvalidToken
	}
	token, err := ParseToken(strings.TrimPrefix(authorization, "Bearer "))
	if err != nil || !token.Valid {
		return nil, nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, ErrInvalidToken
	}
	return token, claims, nil
}
