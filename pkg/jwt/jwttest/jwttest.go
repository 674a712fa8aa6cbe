// Package jwttest firma tokens HS256 con los claims de pkg/jwt para tests de rutas protegidas.
package jwttest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgjwt "github.com/jhoicas/ferreteria-api/pkg/jwt"
)

// Sign firma un token para id. ttl negativo produce un token ya expirado.
func Sign(t testing.TB, secret, issuer string, id pkgjwt.Identity, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := pkgjwt.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: id.UserID,
		Role:   id.Role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("jwttest: firmar token: %v", err)
	}
	return token
}
