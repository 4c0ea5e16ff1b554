package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	attendanceRepo "github.com/frahmantamala/attendance-tracker/internal/attendance/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	authRepo "github.com/frahmantamala/attendance-tracker/internal/auth/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/employee"
	employeeRepo "github.com/frahmantamala/attendance-tracker/internal/employee/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/qrcode"
	"github.com/frahmantamala/attendance-tracker/internal/report"
	reportRepo "github.com/frahmantamala/attendance-tracker/internal/report/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/schedule"
	scheduleRepo "github.com/frahmantamala/attendance-tracker/internal/schedule/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/frahmantamala/attendance-tracker/internal/transport/rest"
	"github.com/frahmantamala/attendance-tracker/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger
	baseHandler := transport.NewBaseHandler(lg)

	defaultStart, err := schedule.ParseTimeOfDay(cfg.Attendance.DefaultStartTime)
	if err != nil {
		return fmt.Errorf("invalid default start time: %w", err)
	}

	qrGenerator := qrcode.NewGenerator(cfg.QR.OutputDir, cfg.QR.Size)

	employeeRepository := employeeRepo.NewEmployeeRepository(deps.GormDB)
	scheduleRepository := scheduleRepo.NewScheduleRepository(deps.GormDB)
	attendanceRepository := attendanceRepo.NewAttendanceRepository(deps.GormDB)
	reportRepository := reportRepo.NewReportRepository(deps.GormDB)
	adminRepository := authRepo.NewAdminRepository(deps.GormDB)

	employeeService := employee.NewService(employeeRepository, qrGenerator, lg)
	scheduleService := schedule.NewService(scheduleRepository, defaultStart, lg)
	attendanceService := attendance.NewService(
		attendanceRepository, employeeRepository, scheduleService,
		cfg.Attendance.AllowEarlyCheckin, lg)
	reportService := report.NewService(reportRepository, lg)

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret, cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration, cfg.Security.RefreshTokenDuration)
	limiter := auth.NewLoginLimiter(cfg.Security.MaxLoginAttempts, cfg.Security.LoginLockout)
	authService := auth.NewService(adminRepository, tokens, limiter, cfg.Security.BCryptCost, lg)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(baseHandler, authService),
		Employee:   employee.NewHandler(baseHandler, employeeService),
		Schedule:   schedule.NewHandler(baseHandler, scheduleService),
		Attendance: attendance.NewHandler(baseHandler, attendanceService),
		Report:     report.NewHandler(baseHandler, reportService),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers,
		cfg.QR.OutputDir, cfg.Server.AllowedOrigins, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Env, config.Logging.Level)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pgx stdlib connection used for health checks and by the
// ORM layer underneath.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-pooled stdlib connection so both
// share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
