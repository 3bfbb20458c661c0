package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nurpe/contractgen/internal/model"
)

const minPasswordLength = 6

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type TokenIssuer interface {
	Issue(user model.User) (string, time.Time, error)
}

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	cost   int
	log    zerolog.Logger
}

func NewAuthService(users UserStore, tokens TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost, log: log}
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        model.User
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn().Str("username", username).Msg("failed login attempt")
		return nil, ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, User: *user}, nil
}

func (s *AuthService) CreateUser(ctx context.Context, username, password string, role model.UserRole) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len([]rune(password)) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if role != model.UserRoleAdmin && role != model.UserRoleUser {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{Username: username, PasswordHash: string(hash), Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
