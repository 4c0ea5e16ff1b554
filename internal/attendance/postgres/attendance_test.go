package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	attendancePostgres "github.com/frahmantamala/attendance-tracker/internal/attendance/postgres"
	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
)

func TestAttendancePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Postgres Suite")
}

// SQLiteEvent mirrors the attendance_events table with SQLite-compatible
// column types.
type SQLiteEvent struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;not null"`
	Kind       string    `gorm:"column:kind;not null"`
	Timestamp  time.Time `gorm:"column:timestamp;not null"`
	Date       time.Time `gorm:"column:date;not null"`
	IsLate     bool      `gorm:"column:is_late"`
	Latitude   *float64  `gorm:"column:latitude"`
	Longitude  *float64  `gorm:"column:longitude"`
	Address    *string   `gorm:"column:address"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (SQLiteEvent) TableName() string {
	return "attendance_events"
}

var _ = Describe("Attendance Repository", func() {
	var (
		db   *gorm.DB
		repo attendance.RepositoryAPI
	)

	day := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)

	newEvent := func(employeeID, kind string, ts time.Time) *attendanceDatamodel.Event {
		return &attendanceDatamodel.Event{
			EmployeeID: employeeID,
			Kind:       kind,
			Timestamp:  ts,
			Date:       time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
			CreatedAt:  ts,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteEvent{})
		Expect(err).NotTo(HaveOccurred())

		repo = attendancePostgres.NewAttendanceRepository(db)
	})

	Describe("Create and CountForDay", func() {
		It("should count events by employee, day and kind", func() {
			Expect(repo.Create(newEvent("EMP001", attendance.KindCheckIn, day.Add(9*time.Hour)))).To(Succeed())
			Expect(repo.Create(newEvent("EMP001", attendance.KindCheckOut, day.Add(17*time.Hour)))).To(Succeed())
			Expect(repo.Create(newEvent("EMP002", attendance.KindCheckIn, day.Add(8*time.Hour)))).To(Succeed())

			checkIns, err := repo.CountForDay("EMP001", day, attendance.KindCheckIn)
			Expect(err).NotTo(HaveOccurred())
			Expect(checkIns).To(Equal(int64(1)))

			checkOuts, err := repo.CountForDay("EMP001", day, attendance.KindCheckOut)
			Expect(err).NotTo(HaveOccurred())
			Expect(checkOuts).To(Equal(int64(1)))
		})

		It("should not count events from other days", func() {
			Expect(repo.Create(newEvent("EMP001", attendance.KindCheckIn, day.Add(9*time.Hour)))).To(Succeed())

			otherDay := day.Add(24 * time.Hour)
			count, err := repo.CountForDay("EMP001", otherDay, attendance.KindCheckIn)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("UpdateTimestamp", func() {
		It("should persist the corrected time", func() {
			event := newEvent("EMP001", attendance.KindCheckIn, day.Add(9*time.Hour))
			Expect(repo.Create(event)).To(Succeed())

			corrected := day.Add(8*time.Hour + 45*time.Minute)
			Expect(repo.UpdateTimestamp(event.ID, corrected)).To(Succeed())

			stored, err := repo.GetByID(event.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Timestamp.UTC()).To(Equal(corrected))
		})
	})

	Describe("ListForDay", func() {
		It("should return the day's events newest first", func() {
			Expect(repo.Create(newEvent("EMP001", attendance.KindCheckIn, day.Add(9*time.Hour)))).To(Succeed())
			Expect(repo.Create(newEvent("EMP002", attendance.KindCheckIn, day.Add(10*time.Hour)))).To(Succeed())
			Expect(repo.Create(newEvent("EMP003", attendance.KindCheckIn, day.Add(33*time.Hour)))).To(Succeed())

			events, err := repo.ListForDay(day)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(2))
			Expect(events[0].EmployeeID).To(Equal("EMP002"))
			Expect(events[1].EmployeeID).To(Equal("EMP001"))
		})
	})
})
