package auth

import (
	"time"

	"linkbio/config"
	"linkbio/internal/app/http/middleware"
	"linkbio/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

func issueAppJWT(user users.User) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JWT_SECRET))
}
