package dashboard

import (
	"fmt"
	"strings"
	"time"

	"werkzeug_dashboard/models"
)

func ToolName(t *models.Tool) string {
	if t == nil || strings.TrimSpace(t.Fields.Name) == "" {
		return Unknown
	}
	return t.Fields.Name
}

func EmployeeName(e *models.Employee) string {
	if e == nil {
		return Unknown
	}
	if n := e.Fields.FullName(); n != "" {
		return n
	}
	return Unknown
}

// EmployeeShortName "V. Nachname"
func EmployeeShortName(e *models.Employee) string {
	if e == nil {
		return Unknown
	}
	if n := e.Fields.ShortName(); n != "" {
		return n
	}
	return Unknown
}

func EmployeeInitials(e *models.Employee) string {
	if e == nil {
		return "??"
	}
	if s := e.Fields.Initials(); s != "" {
		return s
	}
	return "??"
}

// FormatDate dd.MM.yyyy；解析失败原样返回，空值返回 "-"
func FormatDate(raw string, loc *time.Location) string {
	if strings.TrimSpace(raw) == "" {
		return "-"
	}
	t, ok := ParseDate(raw, loc)
	if !ok {
		return raw
	}
	return t.Format("02.01.2006")
}

// FormatDateTime dd.MM.yyyy HH:mm；纯日期不带时间
func FormatDateTime(raw string, loc *time.Location) string {
	t, ok := ParseDate(raw, loc)
	if !ok || len(strings.TrimSpace(raw)) == len("2006-01-02") {
		return FormatDate(raw, loc)
	}
	return t.Format("02.01.2006 15:04")
}

// DaysLabel 1 Tag / n Tage
func DaysLabel(n int) string {
	if n == 1 {
		return "1 Tag"
	}
	return fmt.Sprintf("%d Tage", n)
}
