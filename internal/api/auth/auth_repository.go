package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/centung-app/auth-api/internal/types"
)

// PGXQuerier is the subset of pgxpool.Pool the repository needs.
// pgxmock satisfies it as well, which keeps repository tests hermetic.
type PGXQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ AuthRepo = (*PostgresAuthRepo)(nil)

type AuthRepo interface {
	// GetUserByIdentifier looks a user up by username or email,
	// case-insensitively.
	GetUserByIdentifier(ctx context.Context, identifier string) (*types.UserAuth, error)
	// CreateUser inserts a new user and returns its ID. The unique indexes
	// on username/email arbitrate concurrent registrations.
	CreateUser(ctx context.Context, username, email, passwordHash string) (string, error)
	// CacheSessionToken stores the freshly issued token on the user row.
	CacheSessionToken(ctx context.Context, userID, token string) error
}

type PostgresAuthRepo struct {
	db     PGXQuerier
	logger *slog.Logger
}

func NewPostgresAuthRepo(db PGXQuerier, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresAuthRepo) GetUserByIdentifier(ctx context.Context, identifier string) (*types.UserAuth, error) {
	var user types.UserAuth
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, profile_photo, session_token, created_at, updated_at
         FROM users
         WHERE lower(email) = $1 OR lower(username) = $1`,
		strings.ToLower(identifier)).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.ProfilePhoto, &user.SessionToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("get user by identifier: query failed: %w", err)
	}
	return &user, nil
}

func (r *PostgresAuthRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (string, error) {
	var userID string
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, session_token)
         VALUES ($1, $2, $3, '')
         RETURNING id`,
		username, email, passwordHash).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return "", types.ErrConflict
		}
		return "", fmt.Errorf("create user: db insert failed: %w", err)
	}
	return userID, nil
}

func (r *PostgresAuthRepo) CacheSessionToken(ctx context.Context, userID, token string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET session_token = $1, updated_at = now() WHERE id = $2`,
		token, userID)
	if err != nil {
		return fmt.Errorf("cache session token: db update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
