package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uptask/uptask-backend/internal/apperror"
	"github.com/uptask/uptask-backend/internal/users/domain"
)

type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenIssuer signs a session token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type UserService struct {
	repo   Repository
	hasher *PasswordHasher
	tokens TokenIssuer
}

func NewUserService(repo Repository, hasher *PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates an account and returns a token for it.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.Field("name", domain.MsgNameRequired)
	}
	if len(password) > domain.MaxPasswordBytes {
		return "", apperror.Field("password", domain.MsgPasswordTooLong)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("hash password: %w", err))
	}

	u := &domain.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", apperror.Conflict(domain.MsgUserExists)
		}
		return "", apperror.Internal(fmt.Errorf("create user: %w", err))
	}

	return s.issue(u.ID)
}

// Login checks the credentials and returns a fresh token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", apperror.BadRequest(domain.MsgUserNotFound)
	}
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("get user: %w", err))
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", apperror.BadRequest(domain.MsgWrongPassword)
	}
	return s.issue(u.ID)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound(domain.MsgUserNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("get user: %w", err))
	}
	return u, nil
}

func (s *UserService) issue(userID string) (string, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("issue token: %w", err))
	}
	return token, nil
}
