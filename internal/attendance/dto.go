package attendance

import (
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
)

// ScanDTO is the payload posted by the QR scanner. The event timestamp is
// always the server's current time, never client-supplied.
type ScanDTO struct {
	EmployeeID string   `json:"employee_id"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Address    *string  `json:"address,omitempty"`
}

func (dto ScanDTO) Validate() error {
	if dto.EmployeeID == "" {
		return internal.NewValidationError("ID de empleado requerido", internal.ErrCodeInvalidEmployeeID)
	}
	if len(dto.EmployeeID) > 20 {
		return internal.NewValidationError("ID de empleado demasiado largo", internal.ErrCodeInvalidEmployeeID)
	}
	if (dto.Latitude == nil) != (dto.Longitude == nil) {
		return internal.NewValidationError("latitud y longitud deben enviarse juntas", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ScanResult is returned for accepted scans.
type ScanResult struct {
	Accepted  bool      `json:"accepted"`
	EventKind string    `json:"event_kind"`
	Late      bool      `json:"late"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// ScanRejection is the response body for policy rejections.
type ScanRejection struct {
	Accepted  bool   `json:"accepted"`
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// CorrectTimeDTO is the administrative time correction: only the time of day
// changes, the calendar date of the event is preserved.
type CorrectTimeDTO struct {
	NewTime string `json:"new_time"`
}

func (dto CorrectTimeDTO) Validate() error {
	if dto.NewTime == "" {
		return internal.NewValidationError("datos incompletos", internal.ErrCodeValidationFailed)
	}
	if _, err := time.Parse("15:04:05", dto.NewTime); err != nil {
		return internal.ErrInvalidTimeFormat
	}
	return nil
}

type EventsResponse struct {
	Events []*Event `json:"events"`
}
