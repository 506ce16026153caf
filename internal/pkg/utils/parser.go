package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"roster-service/internal/pkg/constvars"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidHeadcount = errors.New("headcount must be a whole number")
)

// TokenClaims holds the claims the service reads from a bearer token.
type TokenClaims struct {
	Subject string
	Role    string
}

func ParseJWT(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subject, _ := claims[constvars.JWTClaimSubject].(string)
	role, _ := claims[constvars.JWTClaimRole].(string)
	return &TokenClaims{Subject: subject, Role: role}, nil
}

// ParseHeadcount reads a headcount cell. Spreadsheets may store whole
// numbers as "2" or "2.0"; fractions are rejected.
func ParseHeadcount(value string) (int, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, ErrInvalidHeadcount
	}
	return int(f), nil
}
