package main

import (
	"context"

	"github.com/superapp-lab/backend/migration"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	ctx := context.Background()
	ctx = xcontext.WithDB(ctx, s.db)
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)

	if err := migration.AutoMigrate(ctx); err != nil {
		return err
	}

	s.logger.Infof("Migration completed")
	return nil
}
