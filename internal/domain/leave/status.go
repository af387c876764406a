package leave

import "time"

// DefaultDetailColor is used when an application's leave type cannot be resolved.
const DefaultDetailColor = "#6B7280"

// ClassifyEmployee folds one employee's applications into an availability
// state at the given instant. Priority order, first match wins:
//
//	on-leave > pending-approval > upcoming-leave > available
//
// Comparisons are date-only and inclusive, so an application whose range is a
// single day marks the employee on-leave for exactly that day. The pending
// count is reported independently of which state won.
func ClassifyEmployee(applications []Application, types []LeaveType, now time.Time) EmployeeStatus {
	byID := typesByID(types)
	today := NormalizeDate(now)

	var current *Application
	var upcoming *Application
	var pending []Application
	for i := range applications {
		app := &applications[i]
		switch app.Status {
		case StatusApproved:
			if current == nil && coversDay(today, app.StartDate, app.EndDate) {
				current = app
			}
			if upcoming == nil && NormalizeDate(app.StartDate).After(today) {
				upcoming = app
			}
		case StatusPending:
			pending = append(pending, *app)
		}
	}

	status := EmployeeStatus{
		Status:                   StateAvailable,
		TotalPendingApplications: len(pending),
	}

	switch {
	case current != nil:
		status.Status = StateOnLeave
		status.Details = detailsFor(*current, byID)
	case len(pending) > 0:
		status.Status = StatePendingApproval
		status.Details = detailsFor(earliestStart(pending), byID)
	case upcoming != nil:
		status.Status = StateUpcomingLeave
		status.Details = detailsFor(*upcoming, byID)
	}
	return status
}

// earliestStart picks the pending application with the earliest start date.
// Ties keep the original order, so the first-seen application wins.
func earliestStart(pending []Application) Application {
	next := pending[0]
	for _, app := range pending[1:] {
		if NormalizeDate(app.StartDate).Before(NormalizeDate(next.StartDate)) {
			next = app
		}
	}
	return next
}

func detailsFor(app Application, byID map[string]LeaveType) *LeaveDetails {
	name := "Leave"
	color := DefaultDetailColor
	if leaveType, ok := byID[app.LeaveTypeID]; ok {
		name = leaveType.Name
		color = leaveType.Color
	}
	return &LeaveDetails{
		Type:      name,
		StartDate: app.StartDate,
		EndDate:   app.EndDate,
		Color:     color,
	}
}
