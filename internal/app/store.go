package app

import (
	"context"
	"fmt"

	"chatroom_backend/internal/config"
	"chatroom_backend/internal/logger"
	"chatroom_backend/internal/repositories"
	"chatroom_backend/internal/repositories/badgerstore"
	"chatroom_backend/internal/repositories/gormstore"
	"chatroom_backend/internal/repositories/mongostore"
)

// OpenStore подключает хранилище, выбранное в database.driver
func OpenStore(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	driver := cfg.Database.Driver
	logger.Info("Connecting to storage...", "driver", driver)

	switch driver {
	case config.DriverPostgres, config.DriverMySQL, config.DriverSQLite:
		db, err := gormstore.Open(driver, cfg.Database.DSN)
		if err != nil {
			return repositories.Store{}, err
		}
		return gormstore.NewStore(db), nil

	case config.DriverMongo:
		db, err := mongostore.Open(ctx, cfg.Database.DSN, cfg.Database.Name)
		if err != nil {
			return repositories.Store{}, err
		}
		return mongostore.NewStore(db), nil

	case config.DriverBadger:
		db, err := badgerstore.Open(cfg.Database.BadgerPath, cfg.Database.InMemory)
		if err != nil {
			return repositories.Store{}, err
		}
		store, err := badgerstore.NewStore(db)
		if err != nil {
			_ = db.Close()
			return repositories.Store{}, err
		}
		return store, nil

	default:
		return repositories.Store{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}
