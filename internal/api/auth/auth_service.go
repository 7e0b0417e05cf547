package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/centung-app/auth-api/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

type AuthService interface {
	// Register validates the input, hashes the password and creates the user.
	// No token is issued at registration time.
	Register(ctx context.Context, username, email, password string) error
	// Login verifies the credentials and returns a signed bearer token plus
	// a minimal public user summary.
	Login(ctx context.Context, identifier, password string) (string, *types.UserSummary, error)
}

type AuthServiceImpl struct {
	repo       AuthRepo
	tokens     *TokenIssuer
	bcryptCost int
	logger     *slog.Logger
}

func NewAuthService(repo AuthRepo, tokens *TokenIssuer, bcryptCost int, logger *slog.Logger) *AuthServiceImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthServiceImpl{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.repo.CreateUser(ctx, username, email, string(hashedPassword))
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "User registered",
		slog.String("user_id", userID),
		slog.String("username", username))
	return nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, identifier, password string) (string, *types.UserSummary, error) {
	user, err := s.repo.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// Same error as a wrong password so the response does not
			// reveal whether the identifier exists.
			return "", nil, types.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, types.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Server-side session tracking is best effort; token verification is
	// stateless and does not depend on this row.
	if err = s.repo.CacheSessionToken(ctx, user.ID, token); err != nil {
		s.logger.WarnContext(ctx, "Failed to cache session token",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
	}

	return token, &types.UserSummary{Username: user.Username, Email: user.Email}, nil
}
