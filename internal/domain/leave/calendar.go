package leave

import (
	"time"

	"leavehub/internal/domain/directory"
)

// DayKeyFormat keys the per-day event map.
const DayKeyFormat = "2006-01-02"

func DayKey(t time.Time) string {
	return NormalizeDate(t).Format(DayKeyFormat)
}

// BuildCalendarEvents converts approved applications into calendar events.
// Applications whose employee or leave type cannot be resolved are dropped.
func BuildCalendarEvents(applications []Application, employees []directory.Employee, types []LeaveType) []CalendarEvent {
	employeesByID := make(map[string]directory.Employee, len(employees))
	for _, e := range employees {
		employeesByID[e.ID] = e
	}
	byID := typesByID(types)

	var events []CalendarEvent
	for _, app := range applications {
		if app.Status != StatusApproved {
			continue
		}
		employee, ok := employeesByID[app.EmployeeID]
		if !ok {
			continue
		}
		leaveType, ok := byID[app.LeaveTypeID]
		if !ok {
			continue
		}
		events = append(events, CalendarEvent{
			ID:        app.ID,
			Title:     employee.FullName() + " - " + leaveType.Name,
			Start:     app.StartDate,
			End:       app.EndDate,
			Employee:  employee,
			LeaveType: leaveType,
			Status:    app.Status,
		})
	}
	return events
}

// MonthGrid returns the day cells for the calendar month containing anchor,
// padded to start on a Sunday and end on a Saturday. The result is always a
// rectangular 7-column grid, commonly 35 or 42 cells.
func MonthGrid(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))

	last := first.AddDate(0, 1, -1)
	gridEnd := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var days []time.Time
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// ProjectMonth lays events onto the month grid for anchor. A day belongs to
// an event when it falls inclusively within the event's date range, which
// also fills padded leading/trailing days from events of adjacent months.
// Month navigation is plain anchor arithmetic by the caller; no data access
// happens here.
func ProjectMonth(events []CalendarEvent, anchor time.Time) MonthProjection {
	grid := MonthGrid(anchor)
	eventsByDay := make(map[string][]CalendarEvent)
	for _, day := range grid {
		for _, event := range events {
			if coversDay(day, event.Start, event.End) {
				eventsByDay[DayKey(day)] = append(eventsByDay[DayKey(day)], event)
			}
		}
	}
	return MonthProjection{GridDays: grid, EventsByDay: eventsByDay}
}
