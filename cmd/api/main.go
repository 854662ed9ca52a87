package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-lost-found/internal/config"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// estado compartido entre comandos (lo arma PersistentPreRunE)
var (
	cfg *config.Config
	log logger.Logger
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pet-lost-found",
		Short:        "Reportes de mascotas perdidas y encontradas",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			l, err := logger.New(logger.Options{
				Level:  logger.ParseLevel(c.Log.Level),
				Format: logger.ParseFormat(c.Log.Format),
				App:    "pet-lost-found",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			cfg, log = c, l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Levanta el servidor HTTP",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Aplica las migraciones de Postgres",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate(cmd.Context())
			},
		},
	)
	return root
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := wire(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	handler := router.NewRouter(router.Options{
		Logger:         log,
		AuthVerifier:   deps.Verifier,
		Documents:      deps.Documents,
		Objects:        deps.Objects,
		Generator:      deps.Generator,
		Session:        sessionConfig(cfg),
		SessionMaxIdle: cfg.Server.SessionMaxIdle,
		MapRadius:      cfg.Dashboard.MapRadius,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":      srv.Addr,
			"auth":      cfg.Auth.Mode,
			"documents": cfg.Storage.Documents,
			"objects":   cfg.Storage.Objects,
			"assistant": assistantMode(cfg),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func migrate(ctx context.Context) error {
	if cfg.Storage.Documents != config.BackendPostgres {
		return fmt.Errorf("migrate: storage.documents is %q, not postgres", cfg.Storage.Documents)
	}
	n, err := migratePostgres(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info("migrations applied", map[string]any{"count": n})
	return nil
}

func assistantMode(c *config.Config) string {
	if c.AssistantRemote() {
		return "gemini:" + c.Assistant.Model
	}
	return "local"
}
