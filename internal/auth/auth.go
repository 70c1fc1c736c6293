// Package auth issues and verifies the HS256 bearer tokens that identify a pet owner.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// Authenticator signs and parses user tokens
type Authenticator struct {
	key    []byte
	issuer string
	now    func() time.Time
}

// NewAuthenticator creates an Authenticator for the given secret and issuer
func NewAuthenticator(secret, issuer string) *Authenticator {
	return &Authenticator{key: []byte(secret), issuer: issuer, now: time.Now}
}

// Issue returns a signed token whose subject is userID
func (a *Authenticator) Issue(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptySubject)
	}
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    a.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates tok and returns its subject
func (a *Authenticator) ParseToken(tok string) (string, error) {
	if tok == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgMissingToken)
	}

	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return a.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !t.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgExpiredToken)
		}
		return "", fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgInvalidToken)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgBadClaims)
	}
	return claims.Subject, nil
}

// TokenFromRequest reads a bearer token from the Authorization header, falling back
// to the token query parameter for EventSource clients that cannot set headers.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get(HeaderAuthorization); strings.HasPrefix(h, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, BearerPrefix))
	}
	return r.URL.Query().Get(QueryParamToken)
}
