// internal/services/testutil_test.go
package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eterials/menu-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.Ingredient{},
		&models.TableSession{},
		&models.Rating{},
		&models.Comment{},
		&models.StaffNotification{},
		&models.AnalyticsEvent{},
		&models.Setting{},
		&models.Background{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	for _, setting := range models.DefaultSettings {
		if err := db.Create(&setting).Error; err != nil {
			t.Fatalf("failed to seed settings: %v", err)
		}
	}

	return db
}
