// Package auth turns bearer tokens into a Principal. Authorization decisions
// are made here, on the server; the role the UI shows is only a hint.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

// ErrInvalidToken indicates a token that could not be parsed or verified.
var ErrInvalidToken = errors.New("invalid token")

// RoleAdmin is the role allowed to write.
const RoleAdmin = "admin"

const msRoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// Principal is the caller identity derived from a token.
type Principal struct {
	Subject  string                   `json:"subject,omitempty"`
	Role     string                   `json:"role"`
	Services []models.ServiceCategory `json:"services"`
	// Verified is true only when the token signature was checked.
	Verified bool `json:"verified"`
}

// IsAdmin reports whether the principal may perform write operations. An
// unverified token never grants admin rights.
func (p Principal) IsAdmin() bool {
	return p.Verified && strings.EqualFold(p.Role, RoleAdmin)
}

// CanView reports whether the quotation is visible to the principal.
// Quotations without any service flag are visible to everyone.
func (p Principal) CanView(q models.QuotationRecord) bool {
	if p.IsAdmin() {
		return true
	}
	cats := q.Categories()
	if len(cats) == 0 {
		return true
	}
	for _, c := range cats {
		for _, s := range p.Services {
			if c == s {
				return true
			}
		}
	}
	return false
}

type claims struct {
	jwt.RegisteredClaims
	Role     string   `json:"role,omitempty"`
	MSRole   string   `json:"http://schemas.microsoft.com/ws/2008/06/identity/claims/role,omitempty"`
	Services []string `json:"services,omitempty"`
}

// Decoder parses bearer tokens. With an empty secret tokens are decoded
// without verification and the resulting Principal is never admin.
type Decoder struct {
	secret []byte
}

// NewDecoder creates a Decoder for HS256 tokens signed with secret.
func NewDecoder(secret string) *Decoder {
	return &Decoder{secret: []byte(secret)}
}

// Verifying reports whether signatures are checked.
func (d *Decoder) Verifying() bool {
	return len(d.secret) > 0
}

// Decode parses a raw token, with or without the "Bearer " prefix. An empty
// token yields the anonymous principal.
func (d *Decoder) Decode(raw string) (Principal, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return Principal{}, nil
	}

	c := new(claims)
	verified := false
	if d.Verifying() {
		_, err := jwt.ParseWithClaims(raw, c, func(*jwt.Token) (interface{}, error) {
			return d.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		verified = true
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(raw, c); err != nil {
			return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	role := c.Role
	if role == "" {
		role = c.MSRole
	}

	services := make([]models.ServiceCategory, 0, len(c.Services))
	for _, s := range c.Services {
		services = append(services, models.ServiceCategory(strings.ToLower(strings.TrimSpace(s))))
	}

	return Principal{
		Subject:  c.Subject,
		Role:     role,
		Services: services,
		Verified: verified,
	}, nil
}
