package profile

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centung-app/auth-api/internal/types"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresProfileRepo) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return mockPool, NewPostgresProfileRepo(mockPool, slog.Default())
}

func strPtr(s string) *string { return &s }

func TestUpdateUser(t *testing.T) {
	t.Run("SingleField", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)

		mockPool.ExpectExec(`UPDATE users SET username = \$1, updated_at = now\(\) WHERE id = \$2`).
			WithArgs("newname", "user123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateUser(context.Background(), "user123", UpdateUserParams{Username: strPtr("newname")})

		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("AllFields", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)

		mockPool.ExpectExec(`UPDATE users SET username = \$1, email = \$2, password_hash = \$3, updated_at = now\(\) WHERE id = \$4`).
			WithArgs("newname", "new@example.com", "newhash", "user123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateUser(context.Background(), "user123", UpdateUserParams{
			Username:     strPtr("newname"),
			Email:        strPtr("new@example.com"),
			PasswordHash: strPtr("newhash"),
		})

		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NoFields", func(t *testing.T) {
		_, repo := newMockRepo(t)

		err := repo.UpdateUser(context.Background(), "user123", UpdateUserParams{})

		assert.True(t, errors.Is(err, types.ErrNoChanges))
	})

	t.Run("ZeroRowsMapsToNotFound", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)

		mockPool.ExpectExec(`UPDATE users SET username`).
			WithArgs("newname", "ghost").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateUser(context.Background(), "ghost", UpdateUserParams{Username: strPtr("newname")})

		assert.True(t, errors.Is(err, types.ErrNotFound))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("DuplicateMapsToConflict", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)

		mockPool.ExpectExec(`UPDATE users SET email`).
			WithArgs("taken@example.com", "user123").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.UpdateUser(context.Background(), "user123", UpdateUserParams{Email: strPtr("taken@example.com")})

		assert.True(t, errors.Is(err, types.ErrConflict))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestSetProfilePhoto(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)

		mockPool.ExpectExec(`UPDATE users SET profile_photo`).
			WithArgs("https://cdn.example.com/p.png", "user123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.SetProfilePhoto(context.Background(), "user123", "https://cdn.example.com/p.png")

		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("UserGone", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)

		mockPool.ExpectExec(`UPDATE users SET profile_photo`).
			WithArgs("https://cdn.example.com/p.png", "ghost").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.SetProfilePhoto(context.Background(), "ghost", "https://cdn.example.com/p.png")

		assert.True(t, errors.Is(err, types.ErrNotFound))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
