package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/centung-app/auth-api/config"
	"github.com/centung-app/auth-api/internal/types"
)

// TokenIssuer issues and verifies signed, time-limited bearer tokens.
// Verification is a pure computation, no store lookup is involved.
type TokenIssuer struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	if cfg.SecretKey == "" {
		panic("JWT secret key cannot be empty")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenIssuer{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		ttl:       ttl,
	}
}

// Issue signs a token carrying the user's identity claims.
func (t *TokenIssuer) Issue(user *types.UserAuth) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    t.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims.
// Any failure maps to types.ErrInvalidToken.
func (t *TokenIssuer) Verify(tokenString string) (*types.Claims, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, types.ErrInvalidToken
	}
	if t.issuer != "" && claims.Issuer != t.issuer {
		return nil, fmt.Errorf("%w: issuer mismatch", types.ErrInvalidToken)
	}
	return claims, nil
}
