package leave

import "leavehub/internal/domain/directory"

// ComputeBalances derives per-type allocated/taken/remaining figures from a
// snapshot of leave types and applications. Only approved applications count
// toward totals; the filter happens here so callers cannot double-count
// pending or rejected requests. An empty employeeID sums across all employees.
//
// Whether inactive types participate is a call-site decision: admin aggregate
// views include them, employee-facing views do not.
func ComputeBalances(types []LeaveType, applications []Application, employeeID string, includeInactive bool) []Balance {
	balances := make([]Balance, 0, len(types))
	for _, leaveType := range types {
		if !includeInactive && !leaveType.IsActive {
			continue
		}

		taken := 0
		for _, app := range applications {
			if app.Status != StatusApproved {
				continue
			}
			if app.LeaveTypeID != leaveType.ID {
				continue
			}
			if employeeID != "" && app.EmployeeID != employeeID {
				continue
			}
			taken += app.Days
		}

		remaining := leaveType.DaysAllowed - taken
		if remaining < 0 {
			// Over-allocation clamps silently; it is not an error condition.
			remaining = 0
		}

		balances = append(balances, Balance{
			LeaveTypeID:    leaveType.ID,
			LeaveTypeName:  leaveType.Name,
			TotalAllowed:   leaveType.DaysAllowed,
			TotalTaken:     taken,
			TotalRemaining: remaining,
			Color:          leaveType.Color,
		})
	}
	return balances
}

// ComputeAllBalances groups balances per employee and sums each employee's
// taken/remaining totals across their own balance entries.
func ComputeAllBalances(employees []directory.Employee, types []LeaveType, applications []Application, includeInactive bool) []EmployeeBalances {
	all := make([]EmployeeBalances, 0, len(employees))
	for _, employee := range employees {
		balances := ComputeBalances(types, applications, employee.ID, includeInactive)

		taken, remaining := 0, 0
		for _, b := range balances {
			taken += b.TotalTaken
			remaining += b.TotalRemaining
		}

		all = append(all, EmployeeBalances{
			EmployeeID:         employee.ID,
			LeaveBalances:      balances,
			TotalDaysTaken:     taken,
			TotalDaysRemaining: remaining,
		})
	}
	return all
}
