// Package jwt verifica los Bearer tokens HS256 que emite el servicio de identidad.
// Este servicio no emite tokens; jwttest los firma para los tests.
package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken envuelve cualquier fallo de verificación (firma, expiración, emisor, claims).
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims claims estándar más los campos propios de la aplicación.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Identity quién hace la petición, según el token.
type Identity struct {
	UserID string
	Role   string
}

// Verifier valida tokens con un secreto fijo. Seguro para uso concurrente.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier exige secreto. Con issuer vacío no se valida el claim iss.
func NewVerifier(secret, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Verifier{secret: []byte(secret), parser: jwt.NewParser(opts...)}, nil
}

// Verify devuelve la identidad del token. UserID cae a sub cuando user_id viene vacío.
func (v *Verifier) Verify(tokenString string) (Identity, error) {
	var claims Claims
	_, err := v.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	id := Identity{UserID: claims.UserID, Role: claims.Role}
	if id.UserID == "" {
		id.UserID = claims.Subject
	}
	if id.UserID == "" {
		return Identity{}, fmt.Errorf("%w: sin user_id ni sub", ErrInvalidToken)
	}
	return id, nil
}
