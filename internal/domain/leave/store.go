package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListTypes(ctx context.Context, includeInactive bool) ([]LeaveType, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, description, days_allowed, carry_over, is_active, color
    FROM leave_types
    WHERE $1 OR is_active
    ORDER BY name
  `, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []LeaveType
	for rows.Next() {
		var t LeaveType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.DaysAllowed, &t.CarryOver, &t.IsActive, &t.Color); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (s *Store) GetType(ctx context.Context, typeID string) (LeaveType, error) {
	var t LeaveType
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, description, days_allowed, carry_over, is_active, color
    FROM leave_types
    WHERE id = $1
  `, typeID).Scan(&t.ID, &t.Name, &t.Description, &t.DaysAllowed, &t.CarryOver, &t.IsActive, &t.Color)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveType{}, ErrNotFound
	}
	return t, err
}

func (s *Store) CreateType(ctx context.Context, t LeaveType) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_types (name, description, days_allowed, carry_over, is_active, color)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, t.Name, t.Description, t.DaysAllowed, t.CarryOver, t.IsActive, t.Color).Scan(&id)
	return id, err
}

func (s *Store) UpdateType(ctx context.Context, t LeaveType) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_types
    SET name = $2, description = $3, days_allowed = $4, carry_over = $5, is_active = $6, color = $7
    WHERE id = $1
  `, t.ID, t.Name, t.Description, t.DaysAllowed, t.CarryOver, t.IsActive, t.Color)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetTypeActive(ctx context.Context, typeID string, active bool) error {
	tag, err := s.DB.Exec(ctx, "UPDATE leave_types SET is_active = $2 WHERE id = $1", typeID, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteType(ctx context.Context, typeID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM leave_types WHERE id = $1", typeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const applicationColumns = `id, employee_id, leave_type_id, start_date, end_date, days, reason, status, applied_date, COALESCE(approved_by, ''), approved_date`

func scanApplication(row pgx.Row) (Application, error) {
	var app Application
	err := row.Scan(&app.ID, &app.EmployeeID, &app.LeaveTypeID, &app.StartDate, &app.EndDate, &app.Days, &app.Reason, &app.Status, &app.AppliedDate, &app.ApprovedBy, &app.ApprovedDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	return app, err
}

// ListApplications returns applications newest-first; employeeID and status
// narrow the result when non-empty.
func (s *Store) ListApplications(ctx context.Context, employeeID string, status Status) ([]Application, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+applicationColumns+`
    FROM leave_applications
    WHERE ($1 = '' OR employee_id = $1)
      AND ($2 = '' OR status = $2)
    ORDER BY applied_date DESC, id
  `, employeeID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (s *Store) GetApplication(ctx context.Context, applicationID string) (Application, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+applicationColumns+`
    FROM leave_applications
    WHERE id = $1
  `, applicationID)
	return scanApplication(row)
}

func (s *Store) CreateApplication(ctx context.Context, app Application) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_applications (employee_id, leave_type_id, start_date, end_date, days, reason, status, applied_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, app.EmployeeID, app.LeaveTypeID, app.StartDate, app.EndDate, app.Days, app.Reason, app.Status, app.AppliedDate).Scan(&id)
	return id, err
}

// SetDecision records an approve/reject transition. It only matches pending
// rows so a concurrent double-decision loses cleanly.
func (s *Store) SetDecision(ctx context.Context, applicationID string, status Status, approverID string, decidedAt time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_applications
    SET status = $2, approved_by = $3, approved_date = $4
    WHERE id = $1 AND status = 'pending'
  `, applicationID, string(status), approverID, decidedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CountApplications(ctx context.Context, status Status) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM leave_applications WHERE $1 = '' OR status = $1
  `, string(status)).Scan(&count)
	return count, err
}

func (s *Store) CountActiveTypes(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_types WHERE is_active").Scan(&count)
	return count, err
}
