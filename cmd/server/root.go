package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"usuarios-api/internal/config"
	"usuarios-api/internal/repository/gormrepo"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "usuarios-api",
		Short:        "HTTP CRUD service for user records",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a config file (yaml, json or toml)")

	serve := newServeCmd(opts)
	root.AddCommand(serve, newMigrateCmd(opts))

	// Running the bare binary starts the server.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func newLogger(cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func openDatabase(cfg config.Config, logger *logrus.Logger) (*gorm.DB, error) {
	db, err := gormrepo.Open(gormrepo.Options{
		Driver: cfg.Database.Driver,
		URL:    cfg.Database.URL,
		Path:   cfg.Database.Path,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
