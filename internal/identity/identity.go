// Package identity supplies the user and organization context stamped
// onto new entities. The core treats it as an opaque read-only value
// present at write time.
package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Context identifies who is writing.
type Context struct {
	UserID         string
	OrganizationID string
}

// Provider yields the current identity context.
type Provider interface {
	Current() (Context, error)
}

// Static is a fixed identity, used for offline single-user operation
// and in tests.
type Static struct {
	Ctx Context
}

func (s Static) Current() (Context, error) { return s.Ctx, nil }

// TokenProvider derives the identity from a signed JWT issued by the
// authentication collaborator. Claims: sub (user id), org
// (organization id).
type TokenProvider struct {
	secret []byte
	token  string
}

// NewTokenProvider creates a provider for one session token.
func NewTokenProvider(secret []byte, token string) *TokenProvider {
	return &TokenProvider{secret: secret, token: token}
}

// Current parses and verifies the token and extracts the identity.
func (p *TokenProvider) Current() (Context, error) {
	parsed, err := jwt.Parse(p.token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return Context{}, fmt.Errorf("parse identity token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Context{}, fmt.Errorf("identity token is not valid")
	}
	ctx := Context{}
	if sub, ok := claims["sub"].(string); ok {
		ctx.UserID = sub
	}
	if org, ok := claims["org"].(string); ok {
		ctx.OrganizationID = org
	}
	if ctx.UserID == "" {
		return Context{}, fmt.Errorf("identity token has no subject")
	}
	return ctx, nil
}
