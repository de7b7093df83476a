package testutil

import (
	"path/filepath"
	"testing"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/infrastructure/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB открывает отдельную sqlite-базу в t.TempDir() и накатывает схему.
// _txlock=immediate сериализует пишущие транзакции, как это сделал бы Postgres
// на уникальных индексах, а busy_timeout не даёт им падать с SQLITE_BUSY.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := filepath.Join(tb.TempDir(), "progress.db") +
		"?_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
