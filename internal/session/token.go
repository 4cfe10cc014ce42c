// Package session issues and verifies the short-lived tokens that carry an
// applicant's identity from the sign-in step to booking. Tokens are HS256
// JWTs; nothing is stored server side.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// Identity is who the session belongs to.
type Identity struct {
	IDKind    string `json:"id_kind"`
	IDNumber  string `json:"id_number"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Claims embeds the registered claims; Subject holds the session id.
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// Token is a signed session token along with its expiry.
type Token struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issuer signs and parses session tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for id that expires after the configured TTL.
func (i *Issuer) Issue(id Identity) (Token, error) {
	now := i.now().UTC()
	exp := now.Add(i.ttl)
	sid := uuid.NewString()
	claims := Claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Token: signed, SessionID: sid, ExpiresAt: exp}, nil
}

// Parse verifies raw and returns its claims. Any failure, including an
// unexpected signing method or expiry, is reported as ErrInvalidToken.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
