package utils

import (
	"time"

	"roster-service/internal/pkg/constvars"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateExportID() string {
	return uuid.NewString()
}

// GenerateAdminJWT signs a token allowed to change the coverage table.
func GenerateAdminJWT(subject, secret string, expiryTimeInHour int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		constvars.JWTClaimSubject: subject,
		constvars.JWTClaimRole:    constvars.RoleAdmin,
		"exp":                     time.Now().Add(time.Duration(expiryTimeInHour) * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
