package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/legalmitra/legalmitra/internal/domain/auth"
)

// PostgresRepository persists users in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, reset_token, reset_token_expiry, created_at`

// Create inserts a new user row.
func (r *PostgresRepository) Create(ctx context.Context, name, email, passwordHash string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns+`
	`, name, email, passwordHash)
	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return auth.User{}, auth.ErrEmailExists
		}
		return auth.User{}, err
	}
	return user, nil
}

// GetByEmail fetches a user by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (auth.User, bool, error) {
	return r.getOne(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
		LIMIT 1
	`, email)
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (auth.User, bool, error) {
	return r.getOne(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
		LIMIT 1
	`, id)
}

// SetResetToken attaches a password reset token to the user.
func (r *PostgresRepository) SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_token = $2, reset_token_expiry = $3
		WHERE id = $1
	`, userID, token, expiry)
	return err
}

// GetByResetToken looks up a user by email and reset token.
func (r *PostgresRepository) GetByResetToken(ctx context.Context, email, token string) (auth.User, bool, error) {
	if token == "" {
		return auth.User{}, false, nil
	}
	return r.getOne(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1 AND reset_token = $2
		LIMIT 1
	`, email, token)
}

// UpdatePassword replaces the hash and clears the reset token.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL
		WHERE id = $1
	`, userID, passwordHash)
	return err
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (auth.User, bool, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return auth.User{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return auth.User{}, false, rows.Err()
	}
	user, err := scanUser(rows)
	if err != nil {
		return auth.User{}, false, err
	}
	return user, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (auth.User, error) {
	var (
		user        auth.User
		resetToken  sql.NullString
		resetExpiry sql.NullTime
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &resetToken, &resetExpiry, &user.CreatedAt); err != nil {
		return auth.User{}, err
	}
	user.ResetToken = resetToken.String
	if resetExpiry.Valid {
		user.ResetTokenExpiry = resetExpiry.Time
	}
	return user, nil
}

var _ auth.Repository = (*PostgresRepository)(nil)
