package auth

import (
	"errors"
	"time"

	"contest-service/internal/domain"
	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Tokens issues and verifies HS256 bearer tokens carrying sub, email and role.
type Tokens struct {
	ja  *jwtauth.JWTAuth
	ttl time.Duration
	now func() time.Time
}

func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{
		ja:  jwtauth.New("HS256", secret, nil),
		ttl: ttl,
		now: time.Now,
	}
}

// JWTAuth exposes the verifier for jwtauth.Verifier middleware.
func (t *Tokens) JWTAuth() *jwtauth.JWTAuth {
	return t.ja
}

// Issue signs a token for the user.
func (t *Tokens) Issue(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
	}
	jwtauth.SetIssuedAt(claims, t.now())
	jwtauth.SetExpiry(claims, t.now().Add(t.ttl))
	_, token, err := t.ja.Encode(claims)
	return token, err
}

// IdentityFromClaims validates the claims produced by Issue.
func IdentityFromClaims(claims map[string]interface{}) (domain.Identity, error) {
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	rawRole, _ := claims["role"].(string)
	if sub == "" || email == "" || rawRole == "" {
		return domain.Identity{}, errors.New("token is missing sub, email or role")
	}
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return domain.Identity{}, errors.New("token carries an unknown role")
	}
	return domain.Identity{UserID: sub, Email: email, Role: role}, nil
}
