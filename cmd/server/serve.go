package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jamlick126/invoice-manager/internal/httpapi"
	"github.com/Jamlick126/invoice-manager/internal/logger"
	"github.com/Jamlick126/invoice-manager/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the low-stock scheduler",
	Example: `  # File storage under ./data, open API
  server serve

  # Postgres storage with owner login
  STORAGE_BACKEND=postgres DATABASE_URL=postgres://... AUTH_SECRET=... OWNER_PASSWORD=... server serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	startCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	a, err := newApp(startCtx, envFile)
	if err != nil {
		return err
	}
	defer a.close()

	if err := validateSecurityConfig(a.cfg); err != nil {
		return err
	}

	var auth *httpapi.AuthManager
	if a.cfg.AuthEnabled() {
		auth, err = httpapi.NewAuthManager(a.cfg.AuthSecret, time.Duration(a.cfg.AccessTokenTTLMinutes)*time.Minute, a.cfg.OwnerPassword)
		if err != nil {
			return err
		}
	} else {
		a.logger.Warn("AUTH_SECRET and OWNER_PASSWORD not set, API is open")
	}

	sched := scheduler.NewScheduler(a.cfg.LowStockCron, a.service, logger.Named(a.logger, "scheduler"))
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	api := httpapi.New(a.service, auth, a.cfg.AllowedOrigin, logger.Named(a.logger, "http"))
	server := &http.Server{
		Addr:              a.cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", a.cfg.Address()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-sig:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("shutdown error", zap.Error(err))
	}
	a.logger.Info("server stopped")
	return nil
}
