package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeRejected     ErrorType = "SCAN_REJECTED"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidEmployeeID ErrorCode = "INVALID_EMPLOYEE_ID"
	ErrCodeInvalidName       ErrorCode = "INVALID_NAME"
	ErrCodeInvalidEmail      ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidDateRange  ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidWeekday    ErrorCode = "INVALID_WEEKDAY"

	ErrCodeEmployeeNotFound      ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeEventNotFound         ErrorCode = "ATTENDANCE_EVENT_NOT_FOUND"
	ErrCodeScheduleNotFound      ErrorCode = "SCHEDULE_NOT_FOUND"
	ErrCodeAlreadyCompletedToday ErrorCode = "ALREADY_COMPLETED_TODAY"
	ErrCodeTooEarly              ErrorCode = "TOO_EARLY"
	ErrCodeInvalidTimeFormat     ErrorCode = "INVALID_TIME_FORMAT"
	ErrCodePersistence           ErrorCode = "PERSISTENCE_ERROR"

	ErrCodeDuplicateEmployeeID ErrorCode = "DUPLICATE_EMPLOYEE_ID"
	ErrCodeDuplicateEmail      ErrorCode = "DUPLICATE_EMAIL"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeTooManyAttempts    ErrorCode = "TOO_MANY_LOGIN_ATTEMPTS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewRejectionError is for scan rejections that are expected steady state
// rather than faults: the client shows the message and the employee moves on.
func NewRejectionError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeRejected,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodePersistence,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrEmployeeNotFound = NewNotFoundError("empleado no encontrado o inactivo", ErrCodeEmployeeNotFound)
	ErrEventNotFound    = NewNotFoundError("registro de asistencia no encontrado", ErrCodeEventNotFound)

	ErrAlreadyCompletedToday = NewRejectionError("no puedes volver a marcar asistencia porque ya se marcó para hoy", ErrCodeAlreadyCompletedToday)
	ErrTooEarly              = NewRejectionError("no se puede marcar asistencia antes de la hora permitida", ErrCodeTooEarly)
	ErrInvalidTimeFormat     = NewValidationError("formato de hora inválido, use HH:MM:SS", ErrCodeInvalidTimeFormat)

	ErrDuplicateEmployeeID = NewConflictError("el ID de empleado ya está registrado", ErrCodeDuplicateEmployeeID)
	ErrDuplicateEmail      = NewConflictError("el correo electrónico ya está registrado", ErrCodeDuplicateEmail)

	ErrInvalidCredentials = NewUnauthorizedError("usuario o contraseña incorrectos", ErrCodeInvalidCredentials)
	ErrTooManyAttempts    = NewForbiddenError("demasiados intentos de login, intenta de nuevo más tarde", ErrCodeTooManyAttempts)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
