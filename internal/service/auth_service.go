package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"parkdesk/internal/models"
	"parkdesk/internal/password"
	"parkdesk/internal/repository"
)

// ErrInvalidCredentials represents a failed operator login.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// AuthService authenticates console operators.
type AuthService struct {
	operators repository.OperatorStore
	hasher    password.Hasher
	tokenizer *TokenService
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(operators repository.OperatorStore, hasher password.Hasher, tokenizer *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		operators: operators,
		hasher:    hasher,
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Login authenticates an operator and produces a JWT.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, *models.Operator, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || pass == "" {
		return "", nil, ErrInvalidCredentials
	}

	operator, err := s.operators.OperatorByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(operator.PasswordHash, pass); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenizer.GenerateToken(operator.ID, operator.Username)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("operator logged in", zap.String("username", operator.Username))
	return token, operator, nil
}
