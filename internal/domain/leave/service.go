package leave

import (
	"context"
	"errors"
	"time"

	"leavehub/internal/domain/directory"
)

var (
	// ErrInvalidState signals an approve/reject on a non-pending application;
	// both transitions are terminal.
	ErrInvalidState = errors.New("application is not pending")
	ErrTypeInactive = errors.New("leave type is not active")
)

type Service struct {
	Store     *Store
	Directory *directory.Store

	// Now supplies the evaluation instant so derived computations stay
	// deterministic under test.
	Now func() time.Time
}

func NewService(store *Store, directoryStore *directory.Store) *Service {
	return &Service{Store: store, Directory: directoryStore, Now: time.Now}
}

type SubmitInput struct {
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
}

// Submit creates a pending application. The inclusive day count is computed
// here, once; everything downstream trusts the stored value.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Application, error) {
	leaveType, err := s.Store.GetType(ctx, input.LeaveTypeID)
	if err != nil {
		return Application{}, err
	}
	if !leaveType.IsActive {
		return Application{}, ErrTypeInactive
	}

	days, err := CalculateDays(input.StartDate, input.EndDate)
	if err != nil {
		return Application{}, err
	}

	app := Application{
		EmployeeID:  input.EmployeeID,
		LeaveTypeID: input.LeaveTypeID,
		StartDate:   NormalizeDate(input.StartDate),
		EndDate:     NormalizeDate(input.EndDate),
		Days:        days,
		Reason:      input.Reason,
		Status:      StatusPending,
		AppliedDate: s.Now(),
	}
	id, err := s.Store.CreateApplication(ctx, app)
	if err != nil {
		return Application{}, err
	}
	app.ID = id
	return app, nil
}

// Approve moves a pending application to approved, stamping the acting
// administrator and decision time. The stamps are informational; status
// remains the single source of truth for every derived computation.
func (s *Service) Approve(ctx context.Context, applicationID, approverID string) error {
	return s.decide(ctx, applicationID, approverID, StatusApproved)
}

func (s *Service) Reject(ctx context.Context, applicationID, approverID string) error {
	return s.decide(ctx, applicationID, approverID, StatusRejected)
}

func (s *Service) decide(ctx context.Context, applicationID, approverID string, status Status) error {
	app, err := s.Store.GetApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.Status != StatusPending {
		return ErrInvalidState
	}
	err = s.Store.SetDecision(ctx, applicationID, status, approverID, s.Now())
	if errors.Is(err, ErrNotFound) {
		// Lost a race with another decision.
		return ErrInvalidState
	}
	return err
}

func (s *Service) ListApplications(ctx context.Context, employeeID string, status Status) ([]Application, error) {
	return s.Store.ListApplications(ctx, employeeID, status)
}

func (s *Service) GetApplication(ctx context.Context, applicationID string) (Application, error) {
	return s.Store.GetApplication(ctx, applicationID)
}

// Balances computes one employee's per-type balances from a fresh snapshot.
func (s *Service) Balances(ctx context.Context, employeeID string, includeInactive bool) ([]Balance, error) {
	types, err := s.Store.ListTypes(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	apps, err := s.Store.ListApplications(ctx, employeeID, "")
	if err != nil {
		return nil, err
	}
	return ComputeBalances(types, apps, employeeID, includeInactive), nil
}

// AllBalances computes per-employee balance groups for every active employee.
func (s *Service) AllBalances(ctx context.Context, includeInactive bool) ([]EmployeeBalances, error) {
	employees, err := s.Directory.List(ctx, directory.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	types, err := s.Store.ListTypes(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	apps, err := s.Store.ListApplications(ctx, "", "")
	if err != nil {
		return nil, err
	}
	return ComputeAllBalances(employees, types, apps, includeInactive), nil
}

type EmployeeWithStatus struct {
	directory.Employee
	Leave EmployeeStatus `json:"leave"`
}

// EmployeeStatuses classifies every employee independently at now.
func (s *Service) EmployeeStatuses(ctx context.Context, filter directory.ListFilter, now time.Time) ([]EmployeeWithStatus, error) {
	employees, err := s.Directory.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	types, err := s.Store.ListTypes(ctx, true)
	if err != nil {
		return nil, err
	}
	apps, err := s.Store.ListApplications(ctx, "", "")
	if err != nil {
		return nil, err
	}

	appsByEmployee := make(map[string][]Application)
	for _, app := range apps {
		appsByEmployee[app.EmployeeID] = append(appsByEmployee[app.EmployeeID], app)
	}

	statuses := make([]EmployeeWithStatus, 0, len(employees))
	for _, employee := range employees {
		statuses = append(statuses, EmployeeWithStatus{
			Employee: employee,
			Leave:    ClassifyEmployee(appsByEmployee[employee.ID], types, now),
		})
	}
	return statuses, nil
}

// Calendar projects approved leave onto the month grid containing anchor.
func (s *Service) Calendar(ctx context.Context, anchor time.Time) (MonthProjection, error) {
	events, err := s.CalendarEvents(ctx)
	if err != nil {
		return MonthProjection{}, err
	}
	return ProjectMonth(events, anchor), nil
}

func (s *Service) CalendarEvents(ctx context.Context) ([]CalendarEvent, error) {
	employees, err := s.Directory.List(ctx, directory.ListFilter{})
	if err != nil {
		return nil, err
	}
	types, err := s.Store.ListTypes(ctx, true)
	if err != nil {
		return nil, err
	}
	apps, err := s.Store.ListApplications(ctx, "", StatusApproved)
	if err != nil {
		return nil, err
	}
	return BuildCalendarEvents(apps, employees, types), nil
}
