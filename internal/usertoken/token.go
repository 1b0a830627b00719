package usertoken

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultTTL matches the 24h access-token lifetime used across services.
	DefaultTTL = 24 * time.Hour
	// DefaultLeeway is clock skew tolerance for token validation.
	DefaultLeeway = 30 * time.Second
)

// Claims are the access-token claims shared by all services. The subject is
// the user's email; UserID carries the UUID used for soft references.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Signer issues HS256 user access tokens with a shared secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a signer. The secret must be at least 32 bytes.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if len(secret) < 32 {
		return nil, errors.New("jwt secret must be at least 32 characters")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{secret: []byte(secret), ttl: ttl}, nil
}

// Sign issues a token for the given user identity.
func (s *Signer) Sign(userID, username, email string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verifier validates HS256 user access tokens.
type Verifier struct {
	secret []byte
	leeway time.Duration
}

// NewVerifier creates a verifier for tokens issued by the matching Signer.
func NewVerifier(secret string, leeway time.Duration) (*Verifier, error) {
	if len(secret) < 32 {
		return nil, errors.New("jwt secret must be at least 32 characters")
	}
	if leeway <= 0 {
		leeway = DefaultLeeway
	}
	return &Verifier{secret: []byte(secret), leeway: leeway}, nil
}

// Verify parses and validates a token, returning its claims.
func (v *Verifier) Verify(token string) (Claims, error) {
	claims := Claims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return Claims{}, err
	}
	if !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	return claims, nil
}
