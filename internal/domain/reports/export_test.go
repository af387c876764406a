package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leavehub/internal/domain/leave"
)

func sampleRows() []BalanceRow {
	return []BalanceRow{
		{
			EmployeeID: "E1",
			Name:       "John Doe",
			Department: "Engineering",
			EmployeeBalances: leave.EmployeeBalances{
				EmployeeID: "E1",
				LeaveBalances: []leave.Balance{
					{LeaveTypeID: "L1", LeaveTypeName: "Annual Leave", TotalAllowed: 25, TotalTaken: 8, TotalRemaining: 17},
					{LeaveTypeID: "S1", LeaveTypeName: "Sick Leave", TotalAllowed: 12, TotalTaken: 0, TotalRemaining: 12},
				},
				TotalDaysTaken:     8,
				TotalDaysRemaining: 29,
			},
		},
	}
}

func TestWriteBalancesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBalancesCSV(&buf, sampleRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "employee,department,leave type,allowed,taken,remaining", lines[0])
	assert.Equal(t, "John Doe,Engineering,Annual Leave,25,8,17", lines[1])
	assert.Equal(t, "John Doe,Engineering,Sick Leave,12,0,12", lines[2])
}

func TestBalancesPDF(t *testing.T) {
	out, err := BalancesPDF(sampleRows(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF document")
}
