package testutil

import (
	"testing"

	"gorm.io/gorm"
)

// Count - число строк модели, подходящих под условие.
func Count(tb testing.TB, db *gorm.DB, model any, query string, args ...any) int64 {
	tb.Helper()
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		tb.Fatalf("Count: %v", err)
	}
	return n
}
