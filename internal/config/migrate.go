package config

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

func RunMigrations(cfg *Config) error {
	log.WithField("path", cfg.DB.MigrationsPath).Info("Starting database migration...")

	m, err := migrate.New("file://"+cfg.DB.MigrationsPath, cfg.DB.URL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("Database migration finished successfully.")
	return nil
}
