// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"strconv"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eterials/menu-backend/internal/config"
	"github.com/eterials/menu-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// SQLite serializes writers; a single connection avoids database-locked
	// errors under concurrent admin and chatbot traffic.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
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
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_productos_categoria_activo ON productos(categoria_id, activo)",
		"CREATE INDEX IF NOT EXISTS idx_sesiones_mesa_activa ON chatbot_sesiones(mesa, activa)",
		"CREATE INDEX IF NOT EXISTS idx_notificaciones_pendientes ON chatbot_notificaciones(atendida, prioridad, fecha_notificacion)",
		"CREATE INDEX IF NOT EXISTS idx_calificaciones_fecha ON chatbot_calificaciones(fecha_calificacion DESC)",
		"CREATE INDEX IF NOT EXISTS idx_analytics_evento_fecha ON chatbot_analytics(evento, fecha DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData inserts the default settings rows when absent. The
// deployment's session timeout seeds the sesion_timeout row; once the row
// exists it is owned by the settings service and the env value is ignored.
func SeedInitialData(db *gorm.DB, session config.SessionConfig) error {
	log.Println("Seeding initial data...")

	for _, setting := range models.DefaultSettings {
		if setting.Key == "sesion_timeout" && session.TimeoutMinutes > 0 {
			setting.Value = strconv.Itoa(session.TimeoutMinutes)
		}

		var count int64
		db.Model(&models.Setting{}).Where("clave = ?", setting.Key).Count(&count)

		if count == 0 {
			if err := db.Create(&setting).Error; err != nil {
				return fmt.Errorf("failed to create setting %s: %w", setting.Key, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
