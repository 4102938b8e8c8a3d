package cmd

import (
	"context"
	"fmt"

	"github.com/khabaroff/admin-auth/src/config"
	"github.com/khabaroff/admin-auth/src/database"
	"github.com/khabaroff/admin-auth/src/repositories"
	"github.com/khabaroff/admin-auth/src/repositories/postgres"
	"github.com/khabaroff/admin-auth/src/repositories/sqlite"
	"github.com/rs/zerolog/log"
)

// openStore connects the configured backend, migrates it and returns a closer
func openStore(ctx context.Context, cfg *config.Config) (repositories.AdminRepository, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store opened")
		return repo, func() { _ = repo.Close() }, nil

	case config.DriverPostgres:
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("database connected")
		return postgres.NewAdminRepository(db.GetPool()), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
}
