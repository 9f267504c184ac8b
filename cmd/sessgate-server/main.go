// Package main provides the entry point for sessgate-server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/sessgate-go/internal/core/service"
	"github.com/yndnr/sessgate-go/internal/infra/buildinfo"
	"github.com/yndnr/sessgate-go/internal/infra/confloader"
	"github.com/yndnr/sessgate-go/internal/infra/shutdown"
	"github.com/yndnr/sessgate-go/internal/server/config"
	"github.com/yndnr/sessgate-go/internal/server/httpserver"
	"github.com/yndnr/sessgate-go/internal/storage"
	"github.com/yndnr/sessgate-go/internal/storage/memory"
	"github.com/yndnr/sessgate-go/internal/telemetry/logger"
	"github.com/yndnr/sessgate-go/internal/telemetry/metric"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "sessgate-server",
		Usage:   "SessGate session and authorization service",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"SESSGATE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "HTTP listen address (overrides config)",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Storage directory (overrides config)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error (overrides config)",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(c *cli.Context) error {
					fmt.Println("sessgate-server " + buildinfo.String())
					return nil
				},
			},
		},
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	slogLogger := logger.Unwrap(log)

	log.Info("starting sessgate-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"addr", cfg.Server.HTTP.Addr,
	)

	metrics := metric.New()

	// Durable stores: users, audit events, timeout policy.
	kvCfg := storage.DefaultKVConfig(cfg.Storage.DataDir)
	if cfg.Storage.GCInterval != "" {
		kvCfg.Badger.GCInterval = cfg.Storage.GCInterval
	}
	engine, err := storage.NewBadgerEngine(kvCfg, slogLogger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	engine.RegisterMetrics(metrics.Registry())

	users := storage.NewUserStore(engine)
	audits := storage.NewAuditStore(engine)
	policyStore := storage.NewPolicyStore(engine)

	ctx := context.Background()

	policy, err := service.NewTimeoutPolicy(ctx, policyStore, cfg.Session.DefaultTimeoutSeconds)
	if err != nil {
		engine.Close()
		return fmt.Errorf("init timeout policy: %w", err)
	}

	var credOpts []service.CredentialOption
	if cfg.Session.BcryptCost > 0 {
		credOpts = append(credOpts, service.WithBcryptCost(cfg.Session.BcryptCost))
	}
	credentials := service.NewCredentialService(users, slogLogger, credOpts...)

	if cfg.Session.SeedAdminUsername != "" {
		seeded, err := credentials.SeedAdmin(ctx, cfg.Session.SeedAdminUsername, cfg.Session.SeedAdminPassword)
		if err != nil {
			engine.Close()
			return fmt.Errorf("seed admin: %w", err)
		}
		if seeded {
			log.Info("seeded initial admin account", "username", cfg.Session.SeedAdminUsername)
		}
	}

	// The session table is in-memory only; sessions do not survive a
	// restart.
	table := memory.New(
		memory.WithShardCount(cfg.Session.ShardCount),
		memory.WithEvictionHook(metrics.SessionsExpired.Inc),
	)
	metrics.RegisterSessionGauge(func() float64 { return float64(table.Count()) })

	sessions := service.NewSessionService(table, policy, audits, slogLogger)
	gate := service.NewGate(sessions)

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Gate:                gate,
		SessionService:      sessions,
		CredentialService:   credentials,
		TimeoutPolicy:       policy,
		AuditLog:            audits,
		Metrics:             metrics,
		Logger:              slogLogger,
		CredentialRateLimit: cfg.Server.HTTP.RateLimit,
		CredentialRateBurst: cfg.Server.HTTP.RateBurst,
	})

	server := httpserver.New(cfg.Server.HTTP.Addr, router,
		httpserver.WithTimeouts(cfg.Server.HTTP.ReadTimeout, cfg.Server.HTTP.WriteTimeout))

	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout, shutdown.WithLogger(slogLogger))

	// Hooks run in reverse registration order: server drains before
	// the storage engine closes.
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("closing storage engine")
		return engine.Close()
	})
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("draining HTTP server")
		return server.Shutdown(ctx)
	})

	// Reload the log level when the config file changes.
	if path := c.String("config"); path != "" {
		watcher, werr := startConfigWatcher(path, slogLogger)
		if werr != nil {
			log.Warn("config watcher unavailable", "error", werr)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped")
	return nil
}

// loadConfig builds the effective configuration: defaults, then file,
// then environment, then flags.
func loadConfig(c *cli.Context) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	loader := confloader.NewLoader(opts...)

	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	overrides := map[string]any{}
	if v := c.String("addr"); v != "" {
		overrides["server.http.addr"] = v
	}
	if v := c.String("data-dir"); v != "" {
		overrides["storage.data_dir"] = v
	}
	if v := c.String("log-level"); v != "" {
		overrides["log.level"] = v
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// startConfigWatcher reloads the log level when the config file is
// rewritten. Other settings require a restart.
func startConfigWatcher(path string, slogLogger *slog.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(slogLogger))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(changed string) {
		loader := confloader.NewLoader(confloader.WithConfigFile(changed))
		cfg := config.Default()
		if err := loader.Load(cfg); err != nil {
			slogLogger.Warn("config reload failed", "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			slogLogger.Info("log level updated", "level", cfg.Log.Level)
		}
	})
	watcher.StartAsync()

	return watcher, nil
}
