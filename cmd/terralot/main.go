package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"terralot/internal/config"
	"terralot/internal/export"
	"terralot/internal/identity"
	"terralot/internal/notify"
	"terralot/internal/reminders"
	"terralot/internal/schema"
	"terralot/internal/store"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	registry, err := schema.Farm()
	if err != nil {
		logger.Fatal("invalid schema registry", zap.Error(err))
	}

	who := identity.Static{Ctx: identity.Context{
		UserID:         envOr("TERRALOT_USER_ID", "local-user"),
		OrganizationID: envOr("TERRALOT_ORG_ID", "local-org"),
	}}

	// The store is constructed once here and passed by reference;
	// there is no global handle.
	st, err := store.Open(cfg.Store.Path, registry, cfg.Store.SchemaVersion,
		store.WithLogger(logger),
		store.WithIdentity(who),
	)
	if err != nil {
		logger.Fatal("cannot open store", zap.Error(err))
	}
	defer st.Close()

	transport := notify.NewLocalTransport(logger,
		func(entry notify.ScheduledEntry) {
			logger.Info("reminder fired",
				zap.String("task_id", entry.Payload.TaskID),
				zap.String("title", entry.Payload.Title))
		},
		notify.WithInterval(cfg.Notifications.DispatchInterval),
	)
	if err := transport.Start(); err != nil {
		logger.Fatal("cannot start notification transport", zap.Error(err))
	}
	defer transport.Stop()

	scheduler := reminders.NewScheduler(transport, logger)
	scheduler.Bind(st)

	// Stale exports from previous sessions are not worth keeping.
	exporter := export.NewService(cfg.Export.Dir, logger, nil)
	if err := exporter.Cleanup(); err != nil {
		logger.Warn("cannot clean export directory", zap.Error(err))
	}

	logger.Info("terralot started",
		zap.String("store", cfg.Store.Path),
		zap.Int("schema_version", cfg.Store.SchemaVersion))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
