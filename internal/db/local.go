package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
	"github.com/daybook-app/daybook-backend/internal/utils"
)

// LocalService owns the on-device SQLite store. It must open at boot;
// the app cannot run without its local tier.
type LocalService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLocalService(log *logger.Logger) (*LocalService, error) {
	serviceLog := log.With("service", "LocalService")

	path := utils.GetEnv("SQLITE_PATH", "daybook.db", log)

	serviceLog.Info("Opening local store...", "path", path)
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		serviceLog.Error("Failed to open local store", "error", err)
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		serviceLog.Error("Failed to enable foreign keys", "error", err)
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &LocalService{db: gdb, log: serviceLog}, nil
}

func (s *LocalService) DB() *gorm.DB {
	return s.db
}

func (s *LocalService) AutoMigrateAll() error {
	s.log.Info("Auto migrating local tables...")
	return s.db.AutoMigrate(
		&types.Preference{},
		&types.Wallet{},
		&types.FinanceTransaction{},
		&types.Budget{},
		&types.BudgetAssignment{},
		&types.Page{},
		&types.ScheduleEvent{},
	)
}
