package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statusTypes = []LeaveType{
	{ID: "L1", Name: "Annual Leave", DaysAllowed: 25, IsActive: true, Color: "#3B82F6"},
	{ID: "S1", Name: "Sick Leave", DaysAllowed: 12, IsActive: true, Color: "#EF4444"},
}

func TestClassifyAvailable(t *testing.T) {
	got := ClassifyEmployee(nil, statusTypes, date(2024, 3, 15))
	assert.Equal(t, StateAvailable, got.Status)
	assert.Nil(t, got.Details)
	assert.Equal(t, 0, got.TotalPendingApplications)
}

func TestClassifyOnLeave(t *testing.T) {
	apps := []Application{
		{LeaveTypeID: "L1", StartDate: date(2024, 3, 10), EndDate: date(2024, 3, 20), Status: StatusApproved},
	}

	got := ClassifyEmployee(apps, statusTypes, date(2024, 3, 15))
	assert.Equal(t, StateOnLeave, got.Status)
	require.NotNil(t, got.Details)
	assert.Equal(t, "Annual Leave", got.Details.Type)
	assert.Equal(t, "#3B82F6", got.Details.Color)
}

func TestClassifySingleDayLeaveInclusive(t *testing.T) {
	apps := []Application{
		{LeaveTypeID: "S1", StartDate: date(2024, 3, 1), EndDate: date(2024, 3, 1), Status: StatusApproved},
	}

	assert.Equal(t, StateOnLeave, ClassifyEmployee(apps, statusTypes, date(2024, 3, 1)).Status)
	assert.Equal(t, StateAvailable, ClassifyEmployee(apps, statusTypes, date(2024, 3, 2)).Status)
	// Time-of-day on "now" must not matter.
	noon := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, StateOnLeave, ClassifyEmployee(apps, statusTypes, noon).Status)
}

func TestClassifyOnLeaveBeatsPending(t *testing.T) {
	apps := []Application{
		{LeaveTypeID: "L1", StartDate: date(2024, 3, 10), EndDate: date(2024, 3, 20), Status: StatusApproved},
		{LeaveTypeID: "S1", StartDate: date(2024, 4, 1), EndDate: date(2024, 4, 2), Status: StatusPending},
	}

	got := ClassifyEmployee(apps, statusTypes, date(2024, 3, 15))
	assert.Equal(t, StateOnLeave, got.Status)
	assert.Equal(t, 1, got.TotalPendingApplications, "pending count reported regardless of winning state")
}

func TestClassifyPendingBeatsUpcoming(t *testing.T) {
	apps := []Application{
		{LeaveTypeID: "L1", StartDate: date(2024, 4, 10), EndDate: date(2024, 4, 12), Status: StatusApproved},
		{LeaveTypeID: "S1", StartDate: date(2024, 5, 1), EndDate: date(2024, 5, 2), Status: StatusPending},
	}

	got := ClassifyEmployee(apps, statusTypes, date(2024, 3, 15))
	assert.Equal(t, StatePendingApproval, got.Status)
	require.NotNil(t, got.Details)
	assert.Equal(t, "Sick Leave", got.Details.Type)
}

func TestClassifyPendingEarliestStartWins(t *testing.T) {
	apps := []Application{
		{ID: "later", LeaveTypeID: "L1", StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5), Status: StatusPending},
		{ID: "sooner", LeaveTypeID: "S1", StartDate: date(2024, 5, 1), EndDate: date(2024, 5, 2), Status: StatusPending},
	}

	got := ClassifyEmployee(apps, statusTypes, date(2024, 3, 15))
	require.NotNil(t, got.Details)
	assert.Equal(t, date(2024, 5, 1), got.Details.StartDate)
	assert.Equal(t, 2, got.TotalPendingApplications)
}

func TestClassifyPendingTieKeepsOriginalOrder(t *testing.T) {
	apps := []Application{
		{ID: "first", LeaveTypeID: "L1", StartDate: date(2024, 5, 1), EndDate: date(2024, 5, 3), Status: StatusPending},
		{ID: "second", LeaveTypeID: "S1", StartDate: date(2024, 5, 1), EndDate: date(2024, 5, 2), Status: StatusPending},
	}

	got := ClassifyEmployee(apps, statusTypes, date(2024, 3, 15))
	require.NotNil(t, got.Details)
	assert.Equal(t, "Annual Leave", got.Details.Type)
	assert.Equal(t, date(2024, 5, 3), got.Details.EndDate)
}

func TestClassifyUpcomingLeave(t *testing.T) {
	apps := []Application{
		{LeaveTypeID: "L1", StartDate: date(2024, 4, 10), EndDate: date(2024, 4, 12), Status: StatusApproved},
	}

	got := ClassifyEmployee(apps, statusTypes, date(2024, 3, 15))
	assert.Equal(t, StateUpcomingLeave, got.Status)
	require.NotNil(t, got.Details)
	assert.Equal(t, date(2024, 4, 10), got.Details.StartDate)
}

func TestClassifyRejectedNeverCounts(t *testing.T) {
	apps := []Application{
		{LeaveTypeID: "L1", StartDate: date(2024, 3, 10), EndDate: date(2024, 3, 20), Status: StatusRejected},
	}

	got := ClassifyEmployee(apps, statusTypes, date(2024, 3, 15))
	assert.Equal(t, StateAvailable, got.Status)
}

func TestClassifyUnresolvedTypeFallsBack(t *testing.T) {
	apps := []Application{
		{LeaveTypeID: "deleted", StartDate: date(2024, 3, 10), EndDate: date(2024, 3, 20), Status: StatusApproved},
	}

	got := ClassifyEmployee(apps, statusTypes, date(2024, 3, 15))
	assert.Equal(t, StateOnLeave, got.Status)
	require.NotNil(t, got.Details)
	assert.Equal(t, "Leave", got.Details.Type)
	assert.Equal(t, DefaultDetailColor, got.Details.Color)
}

func TestClassifyConcreteSingleDayScenario(t *testing.T) {
	apps := []Application{
		{LeaveTypeID: "L1", StartDate: date(2024, 3, 1), EndDate: date(2024, 3, 1), Status: StatusApproved},
	}
	assert.Equal(t, StateOnLeave, ClassifyEmployee(apps, statusTypes, date(2024, 3, 1)).Status)
}
