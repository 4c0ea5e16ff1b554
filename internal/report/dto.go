package report

import (
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
)

// Filter narrows report queries. Zero-value fields are ignored; From and To
// bound the event date inclusively.
type Filter struct {
	From       *time.Time
	To         *time.Time
	EmployeeID string
}

// ParseFilter builds a Filter from query string values. Dates use YYYY-MM-DD.
func ParseFilter(from, to, employeeID string) (Filter, error) {
	var f Filter
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return f, internal.NewValidationError("fecha inicial inválida, use AAAA-MM-DD", internal.ErrCodeValidationFailed)
		}
		f.From = &t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return f, internal.NewValidationError("fecha final inválida, use AAAA-MM-DD", internal.ErrCodeValidationFailed)
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, internal.NewValidationError("la fecha final no puede ser anterior a la inicial", internal.ErrCodeInvalidDateRange)
	}
	f.EmployeeID = employeeID
	return f, nil
}

// EventRecord is one raw attendance event joined with its employee's identity,
// as returned by the repository.
type EventRecord struct {
	EventID      int64
	EmployeeID   string
	EmployeeName string
	Department   string
	Kind         string
	Timestamp    time.Time
	Date         time.Time
	IsLate       bool
	Address      *string
}

// Row is one reconciled employee-day in a report. CheckIn and CheckOut hold
// "15:04:05" times or "No registrada" when the side is missing.
type Row struct {
	Date          string  `json:"date"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	Department    string  `json:"department"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Late          bool    `json:"late"`
	Worked        string  `json:"worked"`
	WorkedSeconds int64   `json:"worked_seconds"`
	Address       *string `json:"address,omitempty"`
	CheckInID     *int64  `json:"check_in_id,omitempty"`
	CheckOutID    *int64  `json:"check_out_id,omitempty"`
}

// SummaryRow aggregates one employee's reconciled totals over a date range.
type SummaryRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	DaysWorked   int    `json:"days_worked"`
	DaysLate     int    `json:"days_late"`
	TotalWorked  string `json:"total_worked"`
	TotalSeconds int64  `json:"total_seconds"`
}

// DashboardStats is the admin landing-page snapshot for today.
type DashboardStats struct {
	ActiveEmployees int64  `json:"active_employees"`
	CheckedInToday  int64  `json:"checked_in_today"`
	LateToday       int64  `json:"late_today"`
	CheckedOutToday int64  `json:"checked_out_today"`
	Date            string `json:"date"`
}

type ReportResponse struct {
	Rows  []Row `json:"rows"`
	Total int   `json:"total"`
}

type SummaryResponse struct {
	Rows  []SummaryRow `json:"rows"`
	Total int          `json:"total"`
}
