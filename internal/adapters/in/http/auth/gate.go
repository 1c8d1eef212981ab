// Package auth verifies signed identity tokens and the caller's role.
//
// Tokens are HS256 JWTs carrying the caller id in "id" (or "sub") and the role
// in "role". Staff tokens carry "category" instead of "role"; it is read the
// same way.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ferryops/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrUnauthenticated: the token is missing, malformed, badly signed or
	// expired.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden: the token is valid but carries another role.
	ErrForbidden = errors.New("forbidden")
)

type Role string

const (
	RoleSupplier  Role = "supplier"
	RoleInventory Role = "inventory"
	RoleFinance   Role = "finance"
	RolePassenger Role = "passenger"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleSupplier, RoleInventory, RoleFinance, RolePassenger, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Identity is the verified caller.
type Identity struct {
	ID   kernel.UUID
	Role Role
}

// Claims is the token payload.
type Claims struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Category string `json:"category,omitempty"`
	jwt.RegisteredClaims
}

type Gate struct {
	secret []byte
	now    func() time.Time
}

func NewGate(secret string) *Gate {
	return &Gate{secret: []byte(secret), now: time.Now}
}

// Authenticate verifies the token and returns the identity it asserts. The
// role is returned as claimed, lower-cased, even when it is not one of the
// known roles.
func (g *Gate) Authenticate(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, fmt.Errorf("%w: no token provided", ErrUnauthenticated)
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	var claims Claims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%w: token expired", ErrUnauthenticated)
		}
		return Identity{}, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}
	if !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}
	if claims.ExpiresAt == nil {
		return Identity{}, fmt.Errorf("%w: token has no expiry", ErrUnauthenticated)
	}

	id, err := kernel.UUIDFromString(cmpOr(claims.ID, claims.Subject))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: token subject is not an id", ErrUnauthenticated)
	}
	// A role outside the known set still identifies the caller; Authorize
	// turns it away as forbidden.
	role := Role(strings.ToLower(strings.TrimSpace(cmpOr(claims.Role, claims.Category))))
	if role == "" {
		return Identity{}, fmt.Errorf("%w: token carries no role", ErrUnauthenticated)
	}

	return Identity{ID: id, Role: role}, nil
}

// Authorize authenticates the token and requires one of roles.
func (g *Gate) Authorize(token string, roles ...Role) (Identity, error) {
	identity, err := g.Authenticate(token)
	if err != nil {
		return Identity{}, err
	}
	for _, r := range roles {
		if identity.Role == r {
			return identity, nil
		}
	}
	return Identity{}, fmt.Errorf("%w: role %s may not do this", ErrForbidden, identity.Role)
}

// Issue signs a token for id and role valid for ttl. Used by the developer
// CLI and tests; production tokens come from the login service.
func (g *Gate) Issue(id kernel.UUID, role Role, ttl time.Duration) (string, error) {
	now := g.now()
	claims := Claims{
		ID:   id.String(),
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "ferryops",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

func cmpOr(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
