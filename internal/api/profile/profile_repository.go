package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/centung-app/auth-api/internal/api/auth"
	"github.com/centung-app/auth-api/internal/types"
)

var _ ProfileRepo = (*PostgresProfileRepo)(nil)

type ProfileRepo interface {
	// UpdateUser applies a partial update against the user row.
	UpdateUser(ctx context.Context, userID string, params UpdateUserParams) error
	// SetProfilePhoto persists the public URL of the uploaded photo.
	SetProfilePhoto(ctx context.Context, userID, photoURL string) error
}

type PostgresProfileRepo struct {
	db     auth.PGXQuerier
	logger *slog.Logger
}

func NewPostgresProfileRepo(db auth.PGXQuerier, logger *slog.Logger) *PostgresProfileRepo {
	return &PostgresProfileRepo{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresProfileRepo) UpdateUser(ctx context.Context, userID string, params UpdateUserParams) error {
	setClauses := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Username != nil {
		addSet("username", *params.Username)
	}
	if params.Email != nil {
		addSet("email", *params.Email)
	}
	if params.PasswordHash != nil {
		addSet("password_hash", *params.PasswordHash)
	}
	if len(setClauses) == 0 {
		return types.ErrNoChanges
	}
	setClauses = append(setClauses, "updated_at = now()")

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return types.ErrConflict
		}
		return fmt.Errorf("update user: db update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepo) SetProfilePhoto(ctx context.Context, userID, photoURL string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET profile_photo = $1, updated_at = now() WHERE id = $2`,
		photoURL, userID)
	if err != nil {
		return fmt.Errorf("set profile photo: db update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
