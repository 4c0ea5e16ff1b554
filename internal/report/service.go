package report

import (
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/attendance"
)

type RepositoryAPI interface {
	ListEvents(filter Filter) ([]*EventRecord, error)
	CountEventsOn(date time.Time, kind string, lateOnly bool) (int64, error)
	CountActiveEmployees() (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// dayGroup collects one employee's events for one calendar date.
type dayGroup struct {
	employeeID   string
	employeeName string
	department   string
	date         time.Time
	checkIns     []*EventRecord
	checkOuts    []*EventRecord
}

func groupByEmployeeDay(records []*EventRecord) []*dayGroup {
	type key struct {
		employeeID string
		date       string
	}
	index := make(map[key]*dayGroup)
	var order []*dayGroup

	for _, rec := range records {
		k := key{employeeID: rec.EmployeeID, date: rec.Date.Format("2006-01-02")}
		group, ok := index[k]
		if !ok {
			group = &dayGroup{
				employeeID:   rec.EmployeeID,
				employeeName: rec.EmployeeName,
				department:   rec.Department,
				date:         rec.Date,
			}
			index[k] = group
			order = append(order, group)
		}
		switch rec.Kind {
		case attendance.KindCheckIn:
			group.checkIns = append(group.checkIns, rec)
		case attendance.KindCheckOut:
			group.checkOuts = append(group.checkOuts, rec)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if !order[i].date.Equal(order[j].date) {
			return order[i].date.Before(order[j].date)
		}
		return order[i].employeeID < order[j].employeeID
	})
	return order
}

// rowFor reconciles one group into a display row. The shown check-in is the
// first of the day; the shown check-out is the last one that got matched to a
// check-in. Unmatched sides render "No registrada".
func rowFor(group *dayGroup) Row {
	sort.Slice(group.checkIns, func(i, j int) bool {
		return group.checkIns[i].Timestamp.Before(group.checkIns[j].Timestamp)
	})
	sort.Slice(group.checkOuts, func(i, j int) bool {
		return group.checkOuts[i].Timestamp.Before(group.checkOuts[j].Timestamp)
	})

	used := make([]bool, len(group.checkOuts))
	var total time.Duration
	matched := 0
	var lastOut *EventRecord

	for _, in := range group.checkIns {
		for i, out := range group.checkOuts {
			if used[i] || !out.Timestamp.After(in.Timestamp) {
				continue
			}
			used[i] = true
			total += out.Timestamp.Sub(in.Timestamp)
			matched++
			lastOut = out
			break
		}
	}

	row := Row{
		Date:         group.date.Format("2006-01-02"),
		EmployeeID:   group.employeeID,
		EmployeeName: group.employeeName,
		Department:   group.department,
		CheckIn:      NoRecordValue,
		CheckOut:     NoRecordValue,
		Worked:       "N/A",
	}

	if len(group.checkIns) > 0 {
		first := group.checkIns[0]
		row.CheckIn = first.Timestamp.Format("15:04:05")
		row.Late = first.IsLate
		row.Address = first.Address
		id := first.EventID
		row.CheckInID = &id
	}
	if lastOut != nil {
		row.CheckOut = lastOut.Timestamp.Format("15:04:05")
		id := lastOut.EventID
		row.CheckOutID = &id
	}
	if matched > 0 {
		row.Worked = FormatDuration(total)
		row.WorkedSeconds = int64(total.Seconds())
	}
	return row
}

// GeneralReport lists one row per employee per day within the filter range.
func (s *Service) GeneralReport(filter Filter) ([]Row, error) {
	records, err := s.repo.ListEvents(filter)
	if err != nil {
		s.logger.Error("failed to list events for report", "error", err)
		return nil, internal.NewInternalError("no se pudo generar el reporte", err)
	}

	groups := groupByEmployeeDay(records)
	rows := make([]Row, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, rowFor(group))
	}

	s.logger.Info("report generated",
		"rows", len(rows),
		"employee_id", filter.EmployeeID)
	return rows, nil
}

// SummaryReport aggregates reconciled totals per employee over the range.
func (s *Service) SummaryReport(filter Filter) ([]SummaryRow, error) {
	rows, err := s.GeneralReport(filter)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*SummaryRow)
	hasIntervals := make(map[string]bool)
	var order []string
	for _, row := range rows {
		summary, ok := index[row.EmployeeID]
		if !ok {
			summary = &SummaryRow{
				EmployeeID:   row.EmployeeID,
				EmployeeName: row.EmployeeName,
				Department:   row.Department,
			}
			index[row.EmployeeID] = summary
			order = append(order, row.EmployeeID)
		}
		summary.DaysWorked++
		if row.Late {
			summary.DaysLate++
		}
		summary.TotalSeconds += row.WorkedSeconds
		if row.Worked != "N/A" {
			hasIntervals[row.EmployeeID] = true
		}
	}

	sort.Strings(order)
	result := make([]SummaryRow, 0, len(order))
	for _, id := range order {
		summary := index[id]
		if hasIntervals[id] {
			summary.TotalWorked = FormatDuration(time.Duration(summary.TotalSeconds) * time.Second)
		} else {
			summary.TotalWorked = "N/A"
		}
		result = append(result, *summary)
	}
	return result, nil
}

// Dashboard returns today's headline counts for the admin landing page.
func (s *Service) Dashboard() (*DashboardStats, error) {
	today := attendance.DateOf(s.now())

	active, err := s.repo.CountActiveEmployees()
	if err != nil {
		return nil, internal.NewInternalError("no se pudieron obtener las estadísticas", err)
	}
	checkedIn, err := s.repo.CountEventsOn(today, attendance.KindCheckIn, false)
	if err != nil {
		return nil, internal.NewInternalError("no se pudieron obtener las estadísticas", err)
	}
	late, err := s.repo.CountEventsOn(today, attendance.KindCheckIn, true)
	if err != nil {
		return nil, internal.NewInternalError("no se pudieron obtener las estadísticas", err)
	}
	checkedOut, err := s.repo.CountEventsOn(today, attendance.KindCheckOut, false)
	if err != nil {
		return nil, internal.NewInternalError("no se pudieron obtener las estadísticas", err)
	}

	return &DashboardStats{
		ActiveEmployees: active,
		CheckedInToday:  checkedIn,
		LateToday:       late,
		CheckedOutToday: checkedOut,
		Date:            today.Format("2006-01-02"),
	}, nil
}
