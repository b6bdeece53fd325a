// Package token issues and validates the opaque bearer credential. The token
// carries the identity id and role so role checks do not need a database
// round trip; validity is signature and expiry only, there is no server-side
// revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"greenlands/pkg/policy"
)

var ErrInvalid = errors.New("token is not valid")

type Claims struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) Issue(id policy.Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: id.ID,
		Role:   id.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse returns the identity asserted by a well-formed, unexpired token,
// ErrInvalid otherwise.
func (m *Manager) Parse(raw string) (policy.Identity, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return policy.Identity{}, ErrInvalid
	}
	return policy.Identity{ID: claims.UserID, Role: claims.Role}, nil
}
