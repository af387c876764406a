package leave

import (
	"time"

	"leavehub/internal/domain/directory"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type LeaveType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DaysAllowed int    `json:"daysAllowed"`
	CarryOver   bool   `json:"carryOver"`
	IsActive    bool   `json:"isActive"`
	Color       string `json:"color"`
}

// Application is a request to be absent for an inclusive date range.
// Days is the precomputed inclusive whole-day count; the calculators trust
// it as given and never rederive it from the dates.
type Application struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	LeaveTypeID  string     `json:"leaveTypeId"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Days         int        `json:"days"`
	Reason       string     `json:"reason"`
	Status       Status     `json:"status"`
	AppliedDate  time.Time  `json:"appliedDate"`
	ApprovedBy   string     `json:"approvedBy,omitempty"`
	ApprovedDate *time.Time `json:"approvedDate,omitempty"`
}

type Balance struct {
	LeaveTypeID    string `json:"leaveTypeId"`
	LeaveTypeName  string `json:"leaveTypeName"`
	TotalAllowed   int    `json:"totalAllowed"`
	TotalTaken     int    `json:"totalTaken"`
	TotalRemaining int    `json:"totalRemaining"`
	Color          string `json:"color"`
}

type EmployeeBalances struct {
	EmployeeID         string    `json:"employeeId"`
	LeaveBalances      []Balance `json:"leaveBalances"`
	TotalDaysTaken     int       `json:"totalDaysTaken"`
	TotalDaysRemaining int       `json:"totalDaysRemaining"`
}

// AvailabilityState is the mutually exclusive classification of an employee
// at an evaluation instant.
type AvailabilityState string

const (
	StateOnLeave         AvailabilityState = "on-leave"
	StatePendingApproval AvailabilityState = "pending-approval"
	StateUpcomingLeave   AvailabilityState = "upcoming-leave"
	StateAvailable       AvailabilityState = "available"
)

// LeaveDetails describes the application that drove a non-available state.
type LeaveDetails struct {
	Type      string    `json:"type"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Color     string    `json:"color"`
}

type EmployeeStatus struct {
	Status                   AvailabilityState `json:"status"`
	Details                  *LeaveDetails     `json:"details,omitempty"`
	TotalPendingApplications int               `json:"totalPendingApplications"`
}

// CalendarEvent is built only from approved applications whose employee and
// leave type both resolve.
type CalendarEvent struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Start     time.Time          `json:"start"`
	End       time.Time          `json:"end"`
	Employee  directory.Employee `json:"employee"`
	LeaveType LeaveType          `json:"leaveType"`
	Status    Status             `json:"status"`
}

// MonthProjection is the rectangular month grid plus per-day occupancy.
// EventsByDay holds the full event list per day; trimming to "+N more" is a
// presentation concern.
type MonthProjection struct {
	GridDays    []time.Time                `json:"gridDays"`
	EventsByDay map[string][]CalendarEvent `json:"eventsByDay"`
}
