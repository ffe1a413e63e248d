package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdrscope/cdrscope/internal/domain/services"
	"github.com/cdrscope/cdrscope/internal/infrastructure/config"
	"github.com/cdrscope/cdrscope/internal/infrastructure/credentials"
	"github.com/cdrscope/cdrscope/internal/server"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the query service",
		Long:  "Starts the HTTP service: token issuance, record queries, and audit log retrieval.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults plus env overrides when omitted)")

	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	if cfg.Auth.SecretKey == config.DefaultSecretKey {
		logger.Warn("SECRET_KEY is the insecure default; override it in production")
	}

	deps, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	srv := server.New(deps.tokens, deps.queries, deps.recorder, logger)
	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "backend", cfg.Backend.Driver)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

// deps holds the wired service dependencies for serve.
type deps struct {
	tokens   *services.TokenService
	queries  *services.QueryService
	recorder *services.Recorder
	backend  interface{ Close() error }
	audit    interface{ Close() error }
}

func buildDeps(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*deps, error) {
	creds, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	backend, err := buildBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	auditStore, err := buildAuditStore(ctx, cfg)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &deps{
		tokens:   services.NewTokenService(creds, cfg.Auth.SecretKey, cfg.TokenTTL()),
		queries:  services.NewQueryService(backend),
		recorder: services.NewRecorder(auditStore, logger, cfg.Audit.QueueSize),
		backend:  backend,
		audit:    auditStore,
	}, nil
}

// close drains the audit queue first so entries for in-flight requests are
// durably written before the stores go away.
func (d *deps) close(logger *slog.Logger) {
	d.recorder.Close()
	if err := d.audit.Close(); err != nil {
		logger.Error("closing audit store", "error", err)
	}
	if err := d.backend.Close(); err != nil {
		logger.Error("closing backend", "error", err)
	}
}

func loadCredentials(cfg *config.Config) (*credentials.Store, error) {
	if cfg.Auth.UsersFile == "" {
		return nil, errors.New("auth.users_file is required")
	}
	return credentials.Load(cfg.Auth.UsersFile)
}
