package schedule

import (
	"fmt"
	"time"

	scheduleDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/schedule"
)

// Weekday indices follow the schedule table convention: 0 = Monday through
// 6 = Sunday.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayIndex converts Go's Sunday-based weekday to the Monday-based index
// used by work schedules.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// TimeOfDay is a wall-clock time without a date, as stored on schedule rows.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, err
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// At anchors the time of day on the given date, in that date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

type WorkSchedule struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	DayOfWeek  int       `json:"day_of_week"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromDataModel(ws *scheduleDatamodel.WorkSchedule) *WorkSchedule {
	return &WorkSchedule{
		ID:         ws.ID,
		EmployeeID: ws.EmployeeID,
		DayOfWeek:  ws.DayOfWeek,
		StartTime:  ws.StartTime,
		EndTime:    ws.EndTime,
		IsActive:   ws.IsActive,
		CreatedAt:  ws.CreatedAt,
		UpdatedAt:  ws.UpdatedAt,
	}
}

func FromDataModelSlice(schedules []*scheduleDatamodel.WorkSchedule) []*WorkSchedule {
	result := make([]*WorkSchedule, len(schedules))
	for i, ws := range schedules {
		result[i] = FromDataModel(ws)
	}
	return result
}
