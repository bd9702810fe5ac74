package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gcstatus/backend/internal/config"
)

const tokenTTL = 7 * 24 * time.Hour

// GenerateToken signs a week-long HS256 token carrying the user id as
// its subject.
func GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iss": "gcstatus",
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}
