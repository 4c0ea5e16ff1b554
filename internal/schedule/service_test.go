package schedule_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	scheduleDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/schedule"
	"github.com/frahmantamala/attendance-tracker/internal/schedule"
)

func TestScheduleService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Schedule Service Suite")
}

type mockScheduleRepository struct {
	schedules   []*scheduleDatamodel.WorkSchedule
	nextID      int64
	getError    error
	createError error
	updateError error
}

func newMockScheduleRepository() *mockScheduleRepository {
	return &mockScheduleRepository{nextID: 1}
}

func (m *mockScheduleRepository) GetActiveByEmployeeAndDay(employeeID string, dayOfWeek int) (*scheduleDatamodel.WorkSchedule, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, ws := range m.schedules {
		if ws.EmployeeID == employeeID && ws.DayOfWeek == dayOfWeek && ws.IsActive {
			return ws, nil
		}
	}
	return nil, nil
}

func (m *mockScheduleRepository) ListByEmployee(employeeID string) ([]*scheduleDatamodel.WorkSchedule, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var result []*scheduleDatamodel.WorkSchedule
	for _, ws := range m.schedules {
		if ws.EmployeeID == employeeID {
			result = append(result, ws)
		}
	}
	return result, nil
}

func (m *mockScheduleRepository) Create(ws *scheduleDatamodel.WorkSchedule) error {
	if m.createError != nil {
		return m.createError
	}
	ws.ID = m.nextID
	m.nextID++
	m.schedules = append(m.schedules, ws)
	return nil
}

func (m *mockScheduleRepository) Update(ws *scheduleDatamodel.WorkSchedule) error {
	return m.updateError
}

var _ = Describe("ScheduleService", func() {
	var (
		service *schedule.Service
		repo    *mockScheduleRepository
		logger  *slog.Logger
	)

	defaultStart := schedule.TimeOfDay{Hour: 8, Minute: 0}

	BeforeEach(func() {
		repo = newMockScheduleRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = schedule.NewService(repo, defaultStart, logger)
	})

	Describe("ExpectedStartTime", func() {
		Context("when the employee has an active schedule for the day", func() {
			It("should return the scheduled start", func() {
				// Given
				repo.schedules = append(repo.schedules, &scheduleDatamodel.WorkSchedule{
					ID: 1, EmployeeID: "EMP001", DayOfWeek: schedule.Wednesday,
					StartTime: "09:30", EndTime: "18:30", IsActive: true,
				})

				// When
				start := service.ExpectedStartTime("EMP001", schedule.Wednesday)

				// Then
				Expect(start).To(Equal(schedule.TimeOfDay{Hour: 9, Minute: 30}))
			})
		})

		Context("when no schedule row exists", func() {
			It("should silently fall back to the default", func() {
				start := service.ExpectedStartTime("EMP001", schedule.Monday)

				Expect(start).To(Equal(defaultStart))
			})
		})

		Context("when the lookup fails", func() {
			It("should fall back to the default rather than surfacing the error", func() {
				repo.getError = errors.New("connection refused")

				start := service.ExpectedStartTime("EMP001", schedule.Monday)

				Expect(start).To(Equal(defaultStart))
			})
		})

		Context("when the stored start time is malformed", func() {
			It("should fall back to the default", func() {
				repo.schedules = append(repo.schedules, &scheduleDatamodel.WorkSchedule{
					ID: 1, EmployeeID: "EMP001", DayOfWeek: schedule.Friday,
					StartTime: "9am", EndTime: "18:00", IsActive: true,
				})

				start := service.ExpectedStartTime("EMP001", schedule.Friday)

				Expect(start).To(Equal(defaultStart))
			})
		})
	})

	Describe("SetSchedule", func() {
		It("should create a new row when none exists", func() {
			// When
			ws, err := service.SetSchedule("EMP001", schedule.SetScheduleDTO{
				DayOfWeek: schedule.Monday, StartTime: "09:00", EndTime: "18:00",
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(ws.DayOfWeek).To(Equal(schedule.Monday))
			Expect(repo.schedules).To(HaveLen(1))
			Expect(repo.schedules[0].IsActive).To(BeTrue())
		})

		It("should update the existing row instead of adding a second one", func() {
			// Given
			_, err := service.SetSchedule("EMP001", schedule.SetScheduleDTO{
				DayOfWeek: schedule.Monday, StartTime: "09:00", EndTime: "18:00",
			})
			Expect(err).ToNot(HaveOccurred())

			// When
			ws, err := service.SetSchedule("EMP001", schedule.SetScheduleDTO{
				DayOfWeek: schedule.Monday, StartTime: "10:00", EndTime: "19:00",
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(ws.StartTime).To(Equal("10:00"))
			Expect(repo.schedules).To(HaveLen(1))
		})

		It("should reject an end time at or before the start time", func() {
			_, err := service.SetSchedule("EMP001", schedule.SetScheduleDTO{
				DayOfWeek: schedule.Monday, StartTime: "18:00", EndTime: "09:00",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject an out-of-range weekday", func() {
			_, err := service.SetSchedule("EMP001", schedule.SetScheduleDTO{
				DayOfWeek: 7, StartTime: "09:00", EndTime: "18:00",
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DeactivateDay", func() {
		It("should retire the active row so the default applies again", func() {
			// Given
			_, err := service.SetSchedule("EMP001", schedule.SetScheduleDTO{
				DayOfWeek: schedule.Tuesday, StartTime: "07:00", EndTime: "16:00",
			})
			Expect(err).ToNot(HaveOccurred())

			// When
			err = service.DeactivateDay("EMP001", schedule.Tuesday)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(repo.schedules[0].IsActive).To(BeFalse())
			Expect(service.ExpectedStartTime("EMP001", schedule.Tuesday)).To(Equal(defaultStart))
		})

		It("should return not found when no active row exists", func() {
			err := service.DeactivateDay("EMP001", schedule.Sunday)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("WeekdayIndex", func() {
		It("should map Monday to 0 and Sunday to 6", func() {
			monday := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
			sunday := time.Date(2024, 3, 17, 12, 0, 0, 0, time.UTC)

			Expect(schedule.WeekdayIndex(monday)).To(Equal(schedule.Monday))
			Expect(schedule.WeekdayIndex(sunday)).To(Equal(schedule.Sunday))
		})
	})

	Describe("TimeOfDay", func() {
		It("should parse and render HH:MM", func() {
			tod, err := schedule.ParseTimeOfDay("07:05")

			Expect(err).ToNot(HaveOccurred())
			Expect(tod.String()).To(Equal("07:05"))
		})

		It("should anchor on a date preserving the location", func() {
			loc := time.FixedZone("CST", -6*3600)
			day := time.Date(2024, 3, 13, 23, 0, 0, 0, loc)

			at := schedule.TimeOfDay{Hour: 9, Minute: 15}.At(day)

			Expect(at.Hour()).To(Equal(9))
			Expect(at.Minute()).To(Equal(15))
			Expect(at.Day()).To(Equal(13))
			Expect(at.Location()).To(Equal(loc))
		})
	})
})
