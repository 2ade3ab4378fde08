package gormstore

import (
	"fmt"
	"log/slog"
	"time"

	"chatroom_backend/internal/logger"
	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open подключается к postgres, mysql или sqlite и выполняет миграции.
// Для sqlite dsn - путь к файлу или file::memory:
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("gormstore: unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // нужен gorm.ErrDuplicatedKey для уникального имени
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.GetLogger().Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database unavailable: %w", err)
	}

	if err := db.AutoMigrate(&models.Participant{}, &models.Message{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}

// NewStore собирает репозитории поверх открытого соединения
func NewStore(db *gorm.DB) repositories.Store {
	return repositories.Store{
		Participants: NewParticipantRepository(db),
		Messages:     NewMessageRepository(db),
		Close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
