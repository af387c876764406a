package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrResetInvalid = errors.New("reset token invalid or expired")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreatePasswordReset(ctx context.Context, employeeID, tokenHash string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO password_resets (employee_id, token_hash, expires_at)
    VALUES ($1,$2,$3)
  `, employeeID, tokenHash, expires)
	return err
}

func (s *Store) PasswordResetEmployeeID(ctx context.Context, tokenHash string) (string, error) {
	var employeeID string
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id
    FROM password_resets
    WHERE token_hash = $1 AND used_at IS NULL AND expires_at > now()
  `, tokenHash).Scan(&employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrResetInvalid
	}
	return employeeID, err
}

func (s *Store) MarkPasswordResetUsed(ctx context.Context, tokenHash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE password_resets SET used_at = now() WHERE token_hash = $1", tokenHash)
	return err
}
