package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"contest-service/internal/domain"
	"github.com/google/uuid"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs a bearer credential for a user.
type TokenIssuer interface {
	Issue(user domain.User) (string, error)
}

// AuthService handles signup and login.
type AuthService struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

func NewAuthService(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, now: time.Now}
}

type SignupInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role // zero value means contestee
}

// Signup registers a user. A taken email yields domain.ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleContestee
	}
	if _, ok := domain.ParseRole(string(role)); !ok {
		return domain.User{}, fmt.Errorf("unknown role %q: %w", role, domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now(),
	}
	if in.Name != "" {
		name := in.Name
		user.Name = &name
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if user.PasswordHash == "" || s.hasher.Compare(user.PasswordHash, password) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
