package attendance_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/employee"
	"github.com/frahmantamala/attendance-tracker/internal/schedule"
)

func TestAttendanceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Service Suite")
}

type mockEventRepository struct {
	events      []*attendanceDatamodel.Event
	nextID      int64
	countError  error
	createError error
	getError    error
	updateError error
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{nextID: 1}
}

func (m *mockEventRepository) CountForDay(employeeID string, date time.Time, kind string) (int64, error) {
	if m.countError != nil {
		return 0, m.countError
	}
	var count int64
	for _, e := range m.events {
		if e.EmployeeID == employeeID && e.Kind == kind && e.Date.Equal(date) {
			count++
		}
	}
	return count, nil
}

func (m *mockEventRepository) Create(event *attendanceDatamodel.Event) error {
	if m.createError != nil {
		return m.createError
	}
	event.ID = m.nextID
	m.nextID++
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventRepository) GetByID(id int64) (*attendanceDatamodel.Event, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errors.New("event not found")
}

func (m *mockEventRepository) UpdateTimestamp(id int64, timestamp time.Time) error {
	if m.updateError != nil {
		return m.updateError
	}
	for _, e := range m.events {
		if e.ID == id {
			e.Timestamp = timestamp
		}
	}
	return nil
}

func (m *mockEventRepository) ListForDay(date time.Time) ([]*attendanceDatamodel.Event, error) {
	var result []*attendanceDatamodel.Event
	for _, e := range m.events {
		if e.Date.Equal(date) {
			result = append(result, e)
		}
	}
	return result, nil
}

type mockDirectory struct {
	active map[string]*employeeDatamodel.Employee
}

func newMockDirectory(ids ...string) *mockDirectory {
	m := &mockDirectory{active: make(map[string]*employeeDatamodel.Employee)}
	for _, id := range ids {
		m.active[id] = &employeeDatamodel.Employee{EmployeeID: id, IsActive: true}
	}
	return m
}

func (m *mockDirectory) GetActiveByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error) {
	emp, ok := m.active[employeeID]
	if !ok {
		return nil, errors.New("not found")
	}
	return emp, nil
}

type mockResolver struct {
	start schedule.TimeOfDay
}

func (m *mockResolver) ExpectedStartTime(employeeID string, dayOfWeek int) schedule.TimeOfDay {
	return m.start
}

var _ = Describe("AttendanceService", func() {
	var (
		service  *attendance.Service
		repo     *mockEventRepository
		dir      *mockDirectory
		resolver *mockResolver
		logger   *slog.Logger
		// Wednesday 2024-03-13, scheduled start 09:00.
		scheduledStart = time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)
	)

	newServiceAt := func(now time.Time, allowEarly bool) *attendance.Service {
		return attendance.NewService(repo, dir, resolver, allowEarly, logger).
			WithClock(func() time.Time { return now })
	}

	BeforeEach(func() {
		repo = newMockEventRepository()
		dir = newMockDirectory("EMP001")
		resolver = &mockResolver{start: schedule.TimeOfDay{Hour: 9, Minute: 0}}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	Describe("RegisterScan", func() {
		Context("when it is the first scan of the day", func() {
			It("should register an on-time check-in before the deadline passes", func() {
				// Given
				service = newServiceAt(scheduledStart, false)

				// When
				result, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Accepted).To(BeTrue())
				Expect(result.EventKind).To(Equal(attendance.KindCheckIn))
				Expect(result.Late).To(BeFalse())
			})

			It("should mark the check-in late after the scheduled start", func() {
				// Given
				service = newServiceAt(scheduledStart.Add(10*time.Minute), false)

				// When
				result, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Late).To(BeTrue())
				Expect(repo.events).To(HaveLen(1))
				Expect(repo.events[0].IsLate).To(BeTrue())
			})

			It("should reject a scan before the scheduled start under strict policy", func() {
				// Given
				service = newServiceAt(scheduledStart.Add(-5*time.Minute), false)

				// When
				result, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})

				// Then
				Expect(result).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeTooEarly))
				Expect(repo.events).To(BeEmpty())
			})

			It("should accept an early scan with late=false when early check-in is allowed", func() {
				// Given
				service = newServiceAt(scheduledStart.Add(-30*time.Minute), true)

				// When
				result, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.EventKind).To(Equal(attendance.KindCheckIn))
				Expect(result.Late).To(BeFalse())
			})
		})

		Context("when a check-in already exists for the day", func() {
			BeforeEach(func() {
				service = newServiceAt(scheduledStart, false)
				_, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})
				Expect(err).ToNot(HaveOccurred())
			})

			It("should register the second scan as a check-out", func() {
				// When
				service = newServiceAt(scheduledStart.Add(8*time.Hour), false)
				result, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.EventKind).To(Equal(attendance.KindCheckOut))
				Expect(result.Late).To(BeFalse())
			})

			It("should never mark a check-out late, even after midnight of the schedule", func() {
				// When
				service = newServiceAt(scheduledStart.Add(14*time.Hour), false)
				result, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Late).To(BeFalse())
			})
		})

		Context("when the day is already complete", func() {
			It("should reject a third scan", func() {
				// Given
				service = newServiceAt(scheduledStart, false)
				_, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})
				Expect(err).ToNot(HaveOccurred())
				service = newServiceAt(scheduledStart.Add(8*time.Hour), false)
				_, err = service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})
				Expect(err).ToNot(HaveOccurred())

				// When
				service = newServiceAt(scheduledStart.Add(9*time.Hour), false)
				result, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})

				// Then
				Expect(result).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeAlreadyCompletedToday))
			})

			It("should allow a fresh check-in the next day", func() {
				// Given
				service = newServiceAt(scheduledStart, false)
				_, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})
				Expect(err).ToNot(HaveOccurred())
				service = newServiceAt(scheduledStart.Add(8*time.Hour), false)
				_, err = service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})
				Expect(err).ToNot(HaveOccurred())

				// When
				nextDay := scheduledStart.Add(24 * time.Hour)
				service = newServiceAt(nextDay, false)
				result, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.EventKind).To(Equal(attendance.KindCheckIn))
			})
		})

		Context("when the employee is unknown or inactive", func() {
			It("should reject the scan with employee not found", func() {
				// Given
				service = newServiceAt(scheduledStart, false)

				// When
				result, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "GHOST"})

				// Then
				Expect(result).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeEmployeeNotFound))
			})
		})

		Context("when the payload is invalid", func() {
			It("should reject an empty employee ID", func() {
				service = newServiceAt(scheduledStart, false)

				result, err := service.RegisterScan(attendance.ScanDTO{})

				Expect(result).To(BeNil())
				Expect(err).To(HaveOccurred())
			})

			It("should reject latitude without longitude", func() {
				service = newServiceAt(scheduledStart, false)
				lat := 19.43

				result, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001", Latitude: &lat})

				Expect(result).To(BeNil())
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("CorrectEventTime", func() {
		BeforeEach(func() {
			service = newServiceAt(scheduledStart.Add(25*time.Minute), false)
			_, err := service.RegisterScan(attendance.ScanDTO{EmployeeID: "EMP001"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should replace the time of day and keep the calendar date", func() {
			// When
			event, err := service.CorrectEventTime(1, attendance.CorrectTimeDTO{NewTime: "08:45:00"})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(event.Timestamp.Hour()).To(Equal(8))
			Expect(event.Timestamp.Minute()).To(Equal(45))
			Expect(event.Timestamp.Year()).To(Equal(2024))
			Expect(event.Timestamp.Month()).To(Equal(time.March))
			Expect(event.Timestamp.Day()).To(Equal(13))
		})

		It("should reject a malformed time string", func() {
			_, err := service.CorrectEventTime(1, attendance.CorrectTimeDTO{NewTime: "8h45"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTimeFormat))
		})

		It("should return not found for an unknown event", func() {
			_, err := service.CorrectEventTime(999, attendance.CorrectTimeDTO{NewTime: "08:45:00"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeEventNotFound))
		})
	})
})
