package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret indicates the signing key was not configured. Token managers
// cannot be built without one; this is a startup failure, never a per-request
// one.
var ErrEmptySecret = errors.New("token signing secret must not be empty")

// TokenManager issues and validates signed bearer tokens. The key is symmetric
// (HS256): any holder of it can both issue and verify.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. An empty secret is rejected.
func NewTokenManager(secret string, ttlMinutes int) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}, nil
}

// Generate builds and signs a token asserting that subject was authenticated
// now, expiring after the configured TTL.
func (tm *TokenManager) Generate(subject string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify reports whether raw carries a valid signature and an unexpired
// expiry claim. Malformed input, signature mismatch and expiry all collapse
// to false: callers must not learn which failure occurred.
func (tm *TokenManager) Verify(raw string) bool {
	_, err := tm.parse(raw)
	return err == nil
}

// Subject returns the subject claim of raw. Callers must Verify the token
// first; the subject of an unverified token carries no authority.
func (tm *TokenManager) Subject(raw string) (string, error) {
	claims, err := tm.parse(raw)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (tm *TokenManager) parse(raw string) (*jwt.RegisteredClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
