package database

import (
	"fmt"
	"log"
	"time"

	"github.com/yukikurage/daybook-api/internal/config"
	"github.com/yukikurage/daybook-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the gorm connection selected by cfg.DBDriver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Info
	if cfg.IsRelease() {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, NewGormConfig(logger.Default.LogMode(logLevel)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("Database connection established (%s)", cfg.DBDriver)
	return db, nil
}

// NewGormConfig returns the gorm settings shared by the server and tests.
// Timestamps are stored in UTC so due-date comparisons behave the same on
// every driver.
func NewGormConfig(l logger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:         l,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// AllModels lists every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Todo{},
		&models.TodoTag{},
		&models.Tag{},
		&models.Student{},
		&models.Fee{},
		&models.Song{},
		&models.PlayHistory{},
		&models.Favorite{},
		&models.Playlist{},
		&models.Notification{},
	}
}

// Migrate creates or updates the schema and its secondary indexes.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(db); err != nil {
		return err
	}
	log.Println("Database migrations completed")
	return nil
}
