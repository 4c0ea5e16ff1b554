package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/attendance-tracker/internal/employee"
	employeeRepo "github.com/frahmantamala/attendance-tracker/internal/employee/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/qrcode"
	"github.com/frahmantamala/attendance-tracker/pkg/logger"

	"github.com/spf13/cobra"
)

var qrCodesCmd = &cobra.Command{
	Use:   "qrcodes",
	Short: "Regenerate QR badge images for all active employees",
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

		qrGenerator := qrcode.NewGenerator(cfg.QR.OutputDir, cfg.QR.Size)
		employeeService := employee.NewService(employeeRepo.NewEmployeeRepository(gormDB), qrGenerator, lg)

		count, err := employeeService.RegenerateQRCodes()
		if err != nil {
			log.Fatalf("failed to regenerate qr codes: %v", err)
		}

		fmt.Printf("Regenerated %d QR codes under %s\n", count, cfg.QR.OutputDir)
	},
}
