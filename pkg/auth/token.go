// Package auth verifies caller bearer tokens.
//
// Tokens are HS256-signed JWTs. The subject claim is the caller identity
// passed to the engine; an empty subject is rejected.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

// MinSecretLength is the shortest accepted HS256 secret, in bytes.
const MinSecretLength = 32

var (
	ErrMissingToken = errors.New("auth: missing bearer token")
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrShortSecret  = fmt.Errorf("auth: secret must be at least %d bytes", MinSecretLength)
)

// Config configures token verification and issuance.
type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// Verifier validates bearer tokens.
type Verifier struct {
	cfg Config
	now func() time.Time
}

// NewVerifier checks the secret length and returns a Verifier.
func NewVerifier(cfg Config) (*Verifier, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrShortSecret
	}
	if cfg.Leeway == 0 {
		cfg.Leeway = jwt.DefaultLeeway
	}
	return &Verifier{cfg: cfg, now: time.Now}, nil
}

// Verify returns the caller identity carried by token.
func (v *Verifier) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims jwt.Claims
	if err := parsed.Claims(v.cfg.Secret, &claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	expected := jwt.Expected{Issuer: v.cfg.Issuer, Time: v.now()}
	if v.cfg.Audience != "" {
		expected.AnyAudience = jwt.Audience{v.cfg.Audience}
	}
	if err := claims.ValidateWithLeeway(expected, v.cfg.Leeway); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// Issue signs a token for subject valid for ttl. It is used by the CLI
// and local tooling; production tokens come from the identity provider.
func Issue(cfg Config, subject string, ttl time.Duration) (string, error) {
	if len(cfg.Secret) < MinSecretLength {
		return "", ErrShortSecret
	}

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: cfg.Secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("auth: create signer: %w", err)
	}

	now := time.Now()
	claims := jwt.Claims{
		Subject:  subject,
		Issuer:   cfg.Issuer,
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(ttl)),
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.Audience{cfg.Audience}
	}
	return jwt.Signed(signer).Claims(claims).Serialize()
}
