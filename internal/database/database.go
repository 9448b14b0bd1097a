package database

import (
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imaaryan1108/consist/internal/config"
	"github.com/imaaryan1108/consist/internal/models"
)

// Connect opens the database named by cfg.DatabaseURL: postgres:// URLs use
// PostgreSQL, mysql:// URLs use MySQL, anything else is a SQLite path.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.DatabaseURL, gormLogLevel(cfg.LogLevel))
}

func Open(url string, level logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(url, "postgres"):
		dialector = postgres.Open(url)
	case strings.HasPrefix(url, "mysql://"):
		dialector = mysql.Open(strings.TrimPrefix(url, "mysql://"))
	default:
		dialector = sqlite.Open(url)
	}

	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)

	return gorm.Open(dialector, &gorm.Config{
		Logger: gLogger,
		// Turns unique-index violations into gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Circle{},
		&models.CheckIn{},
		&models.Push{},
		&models.TargetGoal{},
		&models.BodyProfile{},
		&models.WeeklyCheckin{},
		&models.Milestone{},
		&models.Activity{},
		&models.Notification{},
		&models.MealLog{},
		&models.WorkoutLog{},
		&models.ExerciseLog{},
	)
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}
