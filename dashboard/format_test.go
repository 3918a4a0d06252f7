package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"werkzeug_dashboard/models"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2026-10-19", time.Date(2026, 10, 19, 0, 0, 0, 0, berlin), true},
		{"2026-10-19T08:15", time.Date(2026, 10, 19, 8, 15, 0, 0, berlin), true},
		{"2026-10-19T08:15:30", time.Date(2026, 10, 19, 8, 15, 30, 0, berlin), true},
		{"2026-10-19T06:15:00Z", time.Date(2026, 10, 19, 8, 15, 0, 0, berlin), true},
		{" 2026-10-19 ", time.Date(2026, 10, 19, 0, 0, 0, 0, berlin), true},
		{"", time.Time{}, false},
		{"19.10.2026", time.Time{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseDate(tc.in, berlin)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.True(t, tc.want.Equal(got), "%s: got %s", tc.in, got)
		}
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	// 2026-10-25 夏令时结束
	a := time.Date(2026, 10, 24, 0, 0, 0, 0, berlin)
	b := time.Date(2026, 10, 26, 0, 0, 0, 0, berlin)
	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, -2, DaysBetween(b, a))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "19.10.2026", FormatDate("2026-10-19", berlin))
	assert.Equal(t, "-", FormatDate("", berlin))
	assert.Equal(t, "bald", FormatDate("bald", berlin))
	assert.Equal(t, "19.10.2026 08:15", FormatDateTime("2026-10-19T08:15", berlin))
	assert.Equal(t, "19.10.2026", FormatDateTime("2026-10-19", berlin))

	assert.Equal(t, "1 Tag", DaysLabel(1))
	assert.Equal(t, "3 Tage", DaysLabel(3))
	assert.Equal(t, "0 Tage", DaysLabel(0))
}

func TestNameHelpers(t *testing.T) {
	e := &models.Employee{Fields: models.EmployeeFields{FirstName: "anna", LastName: "weber"}}
	assert.Equal(t, "anna weber", EmployeeName(e))
	assert.Equal(t, "a. weber", EmployeeShortName(e))
	assert.Equal(t, "AW", EmployeeInitials(e))

	assert.Equal(t, Unknown, EmployeeName(nil))
	assert.Equal(t, Unknown, EmployeeShortName(&models.Employee{}))
	assert.Equal(t, "??", EmployeeInitials(&models.Employee{}))

	assert.Equal(t, Unknown, ToolName(nil))
	assert.Equal(t, Unknown, ToolName(&models.Tool{}))
	assert.Equal(t, "Flex", ToolName(&models.Tool{Fields: models.ToolFields{Name: "Flex"}}))
}
