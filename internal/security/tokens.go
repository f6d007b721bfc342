package security

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, tampered with, or signed by another key.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a token is correctly signed but past its expiry.
	// Callers use it to decide whether reissuance is worth attempting; claims are withheld.
	ErrTokenExpired = errors.New("token expired")
)

// Principal is the claim set embedded in every access and refresh token:
// the user's identity snapshot plus the id of the session the token was issued under.
// Subject carries the user id.
type Principal struct {
	jwt.RegisteredClaims
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	SessionID string `json:"session"`
}

// UserID returns the user id the principal was minted for.
func (p *Principal) UserID() string { return p.Subject }

// TokenCodec signs and verifies bearer tokens with a fixed RS256 key pair.
// It is stateless; access and refresh tokens share the same shape and differ
// only in the TTL the issuer chooses.
type TokenCodec struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewTokenCodec returns a TokenCodec for the given key pair. Both keys are
// required; missing key material is a startup failure, not a per-call one.
func NewTokenCodec(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) (*TokenCodec, error) {
	if privateKey == nil || publicKey == nil {
		return nil, ErrInvalidKey
	}
	return &TokenCodec{privateKey: privateKey, publicKey: publicKey}, nil
}

// Sign mints a token for p expiring after ttl. The principal must name a user
// and a session; iat and exp are stamped here and any values already present
// on p are overwritten.
func (c *TokenCodec) Sign(p Principal, ttl time.Duration) (string, error) {
	if p.Subject == "" {
		return "", errors.New("principal has no subject")
	}
	if p.SessionID == "" {
		return "", errors.New("principal has no session")
	}
	now := time.Now().UTC()
	p.IssuedAt = jwt.NewNumericDate(now)
	p.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, &p)
	return t.SignedString(c.privateKey)
}

// Verify checks signature and expiry and returns the embedded principal.
// The three outcomes are disjoint: (p, nil) for a live token,
// (nil, ErrTokenExpired) for a well-signed token past exp, and
// (nil, ErrInvalidToken) for everything else.
func (c *TokenCodec) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Principal{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidToken
		}
		return c.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	p, ok := token.Claims.(*Principal)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return p, nil
}
