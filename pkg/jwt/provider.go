package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeEditor allows creating and deleting movies.
const ScopeEditor = "catalog:write"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidScope = errors.New("invalid token scope")
)

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// JWTProvider issues and verifies HS256 tokens for catalog editors.
type JWTProvider struct {
	Secret    string
	AccessTTL time.Duration
}

func NewJWTProvider(secret string, accessTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:    secret,
		AccessTTL: accessTTL,
	}
}

func (p *JWTProvider) GenerateEditorToken(subject string) (string, error) {
	if p.Secret == "" {
		return "", errors.New("jwt secret is empty")
	}

	now := time.Now()
	claims := Claims{
		Scope: ScopeEditor,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.AccessTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

// ParseEditorToken verifies the signature, expiry and scope and returns the subject.
func (p *JWTProvider) ParseEditorToken(token string) (string, error) {
	claims := new(Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(p.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	if claims.Scope != ScopeEditor {
		return "", ErrInvalidScope
	}
	return claims.Subject, nil
}
