package main

import (
	"github.com/SeakMengs/ConfPortal/internal/config"
	"github.com/SeakMengs/ConfPortal/internal/database"
	"github.com/SeakMengs/ConfPortal/internal/env"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Migrating database %s on %s:%s", cfg.DB.DB_DATABASE, cfg.DB.DB_HOST, cfg.DB.DB_PORT)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	// users.email is citext
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS citext`).Error; err != nil {
		logger.Panic(err)
	}

	migrateErr := db.AutoMigrate(model.All()...)
	if migrateErr != nil {
		logger.Panic(migrateErr)
	}

	logger.Info("Migration completed")
}
