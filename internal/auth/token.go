// Package auth issues and verifies the signed identity tokens carried in
// the "token" (buyer) and "storeToken" (vendor) cookies. A token maps to
// exactly one user or store id; everything else about the principal is
// looked up by the caller.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AudienceUser  = "user"
	AudienceStore = "store"
)

var (
	ErrTokenMissing = errors.New("auth: token missing")
	ErrTokenInvalid = errors.New("auth: token invalid")
	ErrTokenExpired = errors.New("auth: token expired")
)

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// IssueUser signs a token resolving to the given user id.
func (m *Manager) IssueUser(userID string) (string, error) {
	return m.issue(userID, AudienceUser)
}

// IssueStore signs a token resolving to the given store id.
func (m *Manager) IssueStore(storeID string) (string, error) {
	return m.issue(storeID, AudienceStore)
}

func (m *Manager) issue(subject, audience string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// VerifyUser resolves a buyer token to a user id.
func (m *Manager) VerifyUser(token string) (string, error) {
	return m.verify(token, AudienceUser)
}

// VerifyStore resolves a vendor token to a store id.
func (m *Manager) VerifyStore(token string) (string, error) {
	return m.verify(token, AudienceStore)
}

func (m *Manager) verify(token, audience string) (string, error) {
	if token == "" {
		return "", ErrTokenMissing
	}
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
