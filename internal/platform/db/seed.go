package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leavehub/internal/domain/auth"
	"leavehub/internal/platform/config"
)

// Seed ensures a usable console on first boot: the default leave policies and
// an administrator account. It is idempotent and safe to run on every start.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureLeaveTypes(ctx, pool); err != nil {
		return err
	}
	return ensureAdmin(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

type seedLeaveType struct {
	name        string
	description string
	daysAllowed int
	carryOver   bool
	color       string
}

var defaultLeaveTypes = []seedLeaveType{
	{"Annual Leave", "Yearly vacation days", 25, true, "#3B82F6"},
	{"Sick Leave", "Medical leave for illness", 12, false, "#EF4444"},
	{"Personal Leave", "Personal time off", 5, false, "#10B981"},
}

func ensureLeaveTypes(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM leave_types").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, t := range defaultLeaveTypes {
		_, err := pool.Exec(ctx, `
      INSERT INTO leave_types (name, description, days_allowed, carry_over, is_active, color)
      VALUES ($1,$2,$3,$4,true,$5)
    `, t.name, t.description, t.daysAllowed, t.carryOver, t.color)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE lower(email) = lower($1)", email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if password == "" {
		password = "ChangeMe123!"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (first_name, last_name, email, position, department, join_date, is_active, is_admin, password_hash)
    VALUES ('System','Administrator',$1,'HR Administrator','Human Resources',$2,true,true,$3)
  `, email, time.Now().UTC(), hash)
	return err
}
