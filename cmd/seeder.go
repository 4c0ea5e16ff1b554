package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/attendance-tracker/internal/auth"
	authRepo "github.com/frahmantamala/attendance-tracker/internal/auth/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/employee"
	employeeRepo "github.com/frahmantamala/attendance-tracker/internal/employee/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/qrcode"
	"github.com/frahmantamala/attendance-tracker/internal/schedule"
	scheduleRepo "github.com/frahmantamala/attendance-tracker/internal/schedule/postgres"
	"github.com/frahmantamala/attendance-tracker/pkg/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a default admin account and sample employees for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Logging.Env, cfg.Logging.Level)
		lg := logger.LoggerWrapper()

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"attendance_events", "work_schedules", "employees", "admin_users"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		tokens := auth.NewJWTTokenGenerator(
			cfg.Security.AccessTokenSecret, cfg.Security.RefreshTokenSecret,
			cfg.Security.AccessTokenDuration, cfg.Security.RefreshTokenDuration)
		limiter := auth.NewLoginLimiter(cfg.Security.MaxLoginAttempts, cfg.Security.LoginLockout)
		authService := auth.NewService(authRepo.NewAdminRepository(gormDB), tokens, limiter, cfg.Security.BCryptCost, lg)

		if err := authService.CreateAdmin("admin", "admin12345"); err != nil {
			fmt.Println("admin user:", err)
		} else {
			fmt.Println("Seeded admin user: admin")
		}

		qrGenerator := qrcode.NewGenerator(cfg.QR.OutputDir, cfg.QR.Size)
		employeeService := employee.NewService(employeeRepo.NewEmployeeRepository(gormDB), qrGenerator, lg)

		defaultStart, err := schedule.ParseTimeOfDay(cfg.Attendance.DefaultStartTime)
		if err != nil {
			log.Fatalf("invalid default start time: %v", err)
		}
		scheduleService := schedule.NewService(scheduleRepo.NewScheduleRepository(gormDB), defaultStart, lg)

		samples := []employee.CreateEmployeeDTO{
			{EmployeeID: "EMP001", Name: "María", LastName: "González", Department: "Ventas", Position: "Ejecutiva", Email: "maria.gonzalez@example.com", Phone: "555-0101"},
			{EmployeeID: "EMP002", Name: "Carlos", LastName: "Ramírez", Department: "Sistemas", Position: "Desarrollador", Email: "carlos.ramirez@example.com", Phone: "555-0102"},
			{EmployeeID: "EMP003", Name: "Lucía", LastName: "Torres", Department: "Recursos Humanos", Position: "Analista", Email: "lucia.torres@example.com", Phone: "555-0103"},
		}

		for _, dto := range samples {
			if _, err := employeeService.CreateEmployee(dto); err != nil {
				fmt.Printf("employee %s: %v\n", dto.EmployeeID, err)
				continue
			}
			fmt.Println("Seeded employee:", dto.EmployeeID)

			// Monday to Friday, nine to six.
			for day := 0; day <= 4; day++ {
				if _, err := scheduleService.SetSchedule(dto.EmployeeID, schedule.SetScheduleDTO{
					DayOfWeek: day,
					StartTime: "09:00",
					EndTime:   "18:00",
				}); err != nil {
					fmt.Printf("schedule %s day %d: %v\n", dto.EmployeeID, day, err)
				}
			}
		}

		fmt.Println("Seeding complete")
	},
}
