package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"usuarios-api/internal/config"
	apphttp "usuarios-api/internal/http"
	"usuarios-api/internal/repository/gormrepo"
	"usuarios-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config and PORT)")
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	logger := newLogger(cfg)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := gormrepo.Close(db); err != nil {
			logger.Warnf("close database: %v", err)
		}
	}()

	userRepo := gormrepo.NewUserRepository(db)
	if cfg.Database.AutoMigrate {
		if err := userRepo.Init(ctx); err != nil {
			return fmt.Errorf("init user repository: %w", err)
		}
	}

	userService := service.NewUserService(userRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, logger, apphttp.NewMetrics(), cfg.CORS.AllowOrigins)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on http://localhost:%d (%s, %s)", cfg.Server.Port, cfg.Addr(), cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
	return nil
}
