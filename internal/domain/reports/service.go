package reports

import (
	"context"
	"time"

	"leavehub/internal/domain/directory"
	"leavehub/internal/domain/leave"
)

type DashboardStats struct {
	TotalEmployees      int `json:"totalEmployees"`
	PendingApplications int `json:"pendingApplications"`
	OnLeaveToday        int `json:"onLeaveToday"`
	TotalLeaveTypes     int `json:"totalLeaveTypes"`
}

type BalanceRow struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	leave.EmployeeBalances
}

type Service struct {
	Directory *directory.Store
	Leave     *leave.Service
}

func NewService(directoryStore *directory.Store, leaveService *leave.Service) *Service {
	return &Service{Directory: directoryStore, Leave: leaveService}
}

// Dashboard derives the landing-page counters. On-leave-today goes through
// the classifier so it follows the same inclusive date rules as everything else.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (DashboardStats, error) {
	stats := DashboardStats{}

	var err error
	if stats.TotalEmployees, err = s.Directory.CountActive(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalLeaveTypes, err = s.Leave.Store.CountActiveTypes(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.PendingApplications, err = s.Leave.Store.CountApplications(ctx, leave.StatusPending); err != nil {
		return DashboardStats{}, err
	}

	statuses, err := s.Leave.EmployeeStatuses(ctx, directory.ListFilter{ActiveOnly: true}, now)
	if err != nil {
		return DashboardStats{}, err
	}
	for _, status := range statuses {
		if status.Leave.Status == leave.StateOnLeave {
			stats.OnLeaveToday++
		}
	}
	return stats, nil
}

// BalanceReport resolves employee names onto the all-employee balance groups.
// Inactive leave types are included; the admin aggregate view reports against
// every configured policy.
func (s *Service) BalanceReport(ctx context.Context) ([]BalanceRow, error) {
	employees, err := s.Directory.List(ctx, directory.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	balances, err := s.Leave.AllBalances(ctx, true)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]directory.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	rows := make([]BalanceRow, 0, len(balances))
	for _, b := range balances {
		employee := byID[b.EmployeeID]
		rows = append(rows, BalanceRow{
			EmployeeID:       b.EmployeeID,
			Name:             employee.FullName(),
			Department:       employee.Department,
			EmployeeBalances: b,
		})
	}
	return rows, nil
}
