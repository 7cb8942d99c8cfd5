package repos

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
)

// newTestDB opens a private in-memory database per test. Tables are
// created with raw DDL because the uuid_generate_v4() column default in
// the model tags only exists on Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// one connection keeps the shared in-memory db alive and avoids
	// SQLITE_BUSY under the concurrency tests
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range []string{
		`CREATE TABLE "user" (
			id TEXT PRIMARY KEY,
			external_uid TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE "explanation" (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			code TEXT,
			explanation TEXT,
			language TEXT,
			complexity TEXT,
			summary TEXT,
			time_complexity TEXT,
			space_complexity TEXT,
			logic_breakdown TEXT,
			edge_cases TEXT,
			bugs TEXT,
			beginner_explanation TEXT,
			recommendation TEXT,
			optimized_version TEXT,
			key_concepts TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE "tutorial" (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			topic TEXT,
			level TEXT,
			category TEXT,
			language TEXT,
			tutorial TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
	} {
		if err := gdb.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return gdb
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}
