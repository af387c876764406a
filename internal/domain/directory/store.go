package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `id, first_name, last_name, email, position, department, join_date, is_active, COALESCE(profile_photo, ''), is_admin, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Position, &e.Department, &e.JoinDate, &e.IsActive, &e.ProfilePhoto, &e.IsAdmin, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Employee, error) {
	query := `
    SELECT ` + employeeColumns + `
    FROM employees
    WHERE ($1 = '' OR first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%' OR position ILIKE '%' || $1 || '%')
      AND ($2 = '' OR department = $2)
      AND (NOT $3 OR is_active)
    ORDER BY last_name, first_name
  `
	args := []any{filter.Search, filter.Department, filter.ActiveOnly}
	if filter.Limit > 0 {
		query += " LIMIT $4 OFFSET $5"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) Recent(ctx context.Context, limit int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE is_active
    ORDER BY created_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) Get(ctx context.Context, employeeID string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, employeeID)
	return scanEmployee(row)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE lower(email) = lower($1)
  `, email)
	return scanEmployee(row)
}

func (s *Store) Create(ctx context.Context, e Employee, passwordHash string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, position, department, join_date, is_active, profile_photo, is_admin, password_hash)
    VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,''),$9,$10)
    RETURNING id
  `, e.FirstName, e.LastName, e.Email, e.Position, e.Department, e.JoinDate, e.IsActive, e.ProfilePhoto, e.IsAdmin, passwordHash).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, e Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, email = $4, position = $5, department = $6,
        join_date = $7, is_active = $8, profile_photo = NULLIF($9, ''), is_admin = $10, updated_at = now()
    WHERE id = $1
  `, e.ID, e.FirstName, e.LastName, e.Email, e.Position, e.Department, e.JoinDate, e.IsActive, e.ProfilePhoto, e.IsAdmin)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is a hard removal; the console has no soft-delete for employees.
func (s *Store) Delete(ctx context.Context, employeeID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Departments(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT DISTINCT department FROM employees ORDER BY department")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *Store) CountActive(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE is_active").Scan(&count)
	return count, err
}

func (s *Store) PasswordHash(ctx context.Context, employeeID string) (string, error) {
	var hash string
	err := s.DB.QueryRow(ctx, "SELECT password_hash FROM employees WHERE id = $1", employeeID).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return hash, err
}

func (s *Store) UpdatePasswordHash(ctx context.Context, employeeID, hash string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET password_hash = $2, updated_at = now() WHERE id = $1", employeeID, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
