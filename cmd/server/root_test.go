package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usuarios-api/internal/config"
	"usuarios-api/internal/repository/gormrepo"
)

func TestNewLogger(t *testing.T) {
	var cfg config.Config
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := newLogger(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Log.Level = "chatty"
	cfg.Log.Format = "text"
	logger = newLogger(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	dbPath := filepath.Join(dir, "db", "usuarios.db")
	t.Setenv("USUARIOS_DATABASE_PATH", dbPath)
	t.Setenv("USUARIOS_LOG_LEVEL", "error")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	require.NoError(t, root.Execute())

	db, err := gormrepo.Open(gormrepo.Options{Driver: gormrepo.DriverSQLite, Path: dbPath})
	require.NoError(t, err)
	defer gormrepo.Close(db)

	users, err := gormrepo.NewUserRepository(db).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestMigrateCommandRejectsBadConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("USUARIOS_DATABASE_DRIVER", "postgres")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	root.SilenceErrors = true
	assert.Error(t, root.Execute())
}
