package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"usuarios-api/internal/config"
	"usuarios-api/internal/repository/gormrepo"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the usuarios table and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := newLogger(cfg)

			db, err := openDatabase(cfg, logger)
			if err != nil {
				return err
			}
			defer gormrepo.Close(db)

			if err := gormrepo.NewUserRepository(db).Init(cmd.Context()); err != nil {
				return err
			}
			logger.Infof("usuarios table is up to date (%s)", cfg.Database.Driver)
			return nil
		},
	}
}
