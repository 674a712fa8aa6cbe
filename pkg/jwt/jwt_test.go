package jwt_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/ferreteria-api/pkg/jwt"
	"github.com/jhoicas/ferreteria-api/pkg/jwt/jwttest"
)

const (
	secret = "secret"
	issuer = "ferreteria-api"
)

func newVerifier(t *testing.T) *pkgjwt.Verifier {
	t.Helper()
	v, err := pkgjwt.NewVerifier(secret, issuer)
	require.NoError(t, err)
	return v
}

func TestVerify_ExtraeIdentidad(t *testing.T) {
	token := jwttest.Sign(t, secret, issuer, pkgjwt.Identity{UserID: "u-1", Role: "admin"}, 5*time.Minute)

	id, err := newVerifier(t).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.Identity{UserID: "u-1", Role: "admin"}, id)
}

func TestVerify_Rechazos(t *testing.T) {
	valid := pkgjwt.Identity{UserID: "u-1", Role: "admin"}
	cases := map[string]string{
		"firma incorrecta": jwttest.Sign(t, "otro-secret", issuer, valid, 5*time.Minute),
		"expirado":         jwttest.Sign(t, secret, issuer, valid, -time.Minute),
		"otro emisor":      jwttest.Sign(t, secret, "otro-emisor", valid, 5*time.Minute),
		"sin sujeto":       jwttest.Sign(t, secret, issuer, pkgjwt.Identity{Role: "admin"}, 5*time.Minute),
		"basura":           "token.invalido.aqui",
	}
	v := newVerifier(t)
	for name, token := range cases {
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, name)
	}
}

func TestVerify_SubjectComoUserID(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "u-sub",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	id, err := newVerifier(t).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-sub", id.UserID)
	assert.Empty(t, id.Role)
}

func TestVerify_SinExpiracion(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-1", "iss": issuer}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = newVerifier(t).Verify(token)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestNewVerifier_SecretVacio(t *testing.T) {
	_, err := pkgjwt.NewVerifier("", issuer)
	assert.Error(t, err)
}
