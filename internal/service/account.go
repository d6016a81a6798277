package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/campusride/carpool/internal/auth"
	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/repo"
)

// minCredentialLen is the minimum length of both login and password.
const minCredentialLen = 8

const (
	// maxLoginLen matches users.login VARCHAR(180).
	maxLoginLen = 180
	// maxPasswordBytes is bcrypt's input limit, counted in bytes, not runes.
	maxPasswordBytes = 72
)

// Tokens issues and validates identity tokens. *auth.TokenManager satisfies it.
type Tokens interface {
	Issue(user domain.User) (string, error)
	Parse(token string) (domain.Identity, error)
}

// AccountService registers accounts, logs them in, and resolves bearer
// tokens into caller identities.
type AccountService struct {
	users  repo.UserRepo
	tokens Tokens
}

// NewAccountService constructs an AccountService.
func NewAccountService(users repo.UserRepo, tokens Tokens) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

// Register creates a regular account and returns it with a fresh token.
func (s *AccountService) Register(ctx context.Context, login, password string) (domain.User, string, error) {
	user, err := s.create(ctx, login, password, domain.RoleUser)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AccountService.Register: %w", err)
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AccountService.Register: %w", err)
	}
	return user, token, nil
}

// CreateAdmin creates an administrator account. It is reachable only from
// the operator CLI.
func (s *AccountService) CreateAdmin(ctx context.Context, login, password string) (domain.User, error) {
	user, err := s.create(ctx, login, password, domain.RoleUser, domain.RoleAdmin)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.CreateAdmin: %w", err)
	}
	slog.InfoContext(ctx, "administrator account created", "login", user.Login, "user_id", user.ID)
	return user, nil
}

// Login checks credentials and returns the account with a fresh token.
// Unknown logins and wrong passwords are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, login, password string) (domain.User, string, error) {
	invalid := domain.UnauthorizedError("invalid credentials")

	user, err := s.users.GetByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, "", invalid
	}
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AccountService.Login: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return domain.User{}, "", invalid
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AccountService.Login: %w", err)
	}
	return user, token, nil
}

// Authenticate resolves a bearer token into the identity of the caller.
func (s *AccountService) Authenticate(_ context.Context, token string) (domain.Identity, error) {
	id, err := s.tokens.Parse(token)
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return domain.Identity{}, domain.UnauthorizedError("token expired")
	case err != nil:
		return domain.Identity{}, domain.UnauthorizedError("invalid token")
	}
	return id, nil
}

func (s *AccountService) create(ctx context.Context, login, password string, roles ...string) (domain.User, error) {
	login = strings.TrimSpace(login)
	if len(login) < minCredentialLen {
		return domain.User{}, domain.ValidationError("login must be at least %d characters", minCredentialLen)
	}
	if utf8.RuneCountInString(login) > maxLoginLen {
		return domain.User{}, domain.ValidationError("login must be at most %d characters", maxLoginLen)
	}
	if len(password) < minCredentialLen {
		return domain.User{}, domain.ValidationError("password must be at least %d characters", minCredentialLen)
	}
	if len(password) > maxPasswordBytes {
		return domain.User{}, domain.ValidationError("password must be at most %d bytes", maxPasswordBytes)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.Create(ctx, domain.User{Login: login, PasswordHash: hash, Roles: roles})
}
