package attendance

import (
	"time"

	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
)

// Event kinds. A check-in marks arrival, a check-out departure.
const (
	KindCheckIn  = "check-in"
	KindCheckOut = "check-out"
)

type Event struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Kind       string    `json:"kind"`
	Timestamp  time.Time `json:"timestamp"`
	Date       time.Time `json:"date"`
	IsLate     bool      `json:"is_late"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Address    *string   `json:"address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DateOf truncates a timestamp to its calendar date, preserving the location
// so the stored date column always matches the timestamp's day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func ToDataModel(e *Event) *attendanceDatamodel.Event {
	return &attendanceDatamodel.Event{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Kind:       e.Kind,
		Timestamp:  e.Timestamp,
		Date:       e.Date,
		IsLate:     e.IsLate,
		Latitude:   e.Latitude,
		Longitude:  e.Longitude,
		Address:    e.Address,
		CreatedAt:  e.CreatedAt,
	}
}

func FromDataModel(e *attendanceDatamodel.Event) *Event {
	return &Event{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Kind:       e.Kind,
		Timestamp:  e.Timestamp,
		Date:       e.Date,
		IsLate:     e.IsLate,
		Latitude:   e.Latitude,
		Longitude:  e.Longitude,
		Address:    e.Address,
		CreatedAt:  e.CreatedAt,
	}
}

func FromDataModelSlice(events []*attendanceDatamodel.Event) []*Event {
	result := make([]*Event, len(events))
	for i, e := range events {
		result[i] = FromDataModel(e)
	}
	return result
}
