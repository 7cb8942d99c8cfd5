package db

import (
	"fmt"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/explainmycode-backend/internal/platform/envutil"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

var (
	initOnce sync.Once
	shared   *PostgresService
	initErr  error
)

// Get returns the process-wide connection handle, dialing it on first
// use. Every caller after the first one shares the same handle; it is
// never torn down, the process lifetime bounds it.
func Get(log *logger.Logger) (*PostgresService, error) {
	initOnce.Do(func() {
		shared, initErr = NewPostgresService(log)
	})
	return shared, initErr
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.Str("POSTGRES_HOST", "localhost")
	port := envutil.Str("POSTGRES_PORT", "5432")
	user := envutil.Str("POSTGRES_USER", "postgres")
	password := envutil.Str("POSTGRES_PASSWORD", "")
	name := envutil.Str("POSTGRES_NAME", "explainmycode")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	log.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Explanation{},
		&types.Tutorial{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	for _, stmt := range []string{
		`ALTER TABLE "explanation"
		 ADD CONSTRAINT "fk_explanation_user_id"
		 FOREIGN KEY ("user_id") REFERENCES "user"("id")
		 ON DELETE CASCADE`,
		`ALTER TABLE "tutorial"
		 ADD CONSTRAINT "fk_tutorial_user_id"
		 FOREIGN KEY ("user_id") REFERENCES "user"("id")
		 ON DELETE CASCADE`,
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			// Re-running migrations hits "already exists"; that is fine.
			s.log.Debug("Foreign key statement skipped", "error", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
