package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/types"
	"github.com/daybook-app/daybook-backend/internal/utils"
)

// RemoteService owns the cloud Postgres store. Unlike the local tier
// it is optional at boot: a device with no connectivity still starts,
// and remote adapters surface the outage per call.
type RemoteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRemoteService(log *logger.Logger) (*RemoteService, error) {
	serviceLog := log.With("service", "RemoteService")

	host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	port := utils.GetEnv("POSTGRES_PORT", "5432", log)
	user := utils.GetEnv("POSTGRES_USER", "postgres", log)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	name := utils.GetEnv("POSTGRES_NAME", "daybook", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to cloud store...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to cloud store", "error", err)
		return nil, fmt.Errorf("connect to cloud store: %w", err)
	}

	return &RemoteService{db: gdb, log: serviceLog}, nil
}

func (s *RemoteService) DB() *gorm.DB {
	return s.db
}

func (s *RemoteService) AutoMigrateAll() error {
	s.log.Info("Auto migrating cloud tables...")
	return s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Wallet{},
		&types.FinanceTransaction{},
		&types.Budget{},
		&types.BudgetAssignment{},
		&types.Page{},
		&types.ScheduleEvent{},
	)
}
