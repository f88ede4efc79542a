package main

import (
	"log/slog"
	"os"

	"Club_Portal/internal/config"
	"Club_Portal/internal/pkg"
	rdb "Club_Portal/internal/repository/redis"
	"Club_Portal/internal/repository/store"
	"Club_Portal/internal/router"
	"Club_Portal/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	setupLogger(cfg)

	db, err := store.Open(cfg.DBDriver, cfg.DatabaseURL, cfg.DevMode())
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	// schema changes are additive; the bootstrap command runs the same migration
	if err := store.Migrate(db); err != nil {
		slog.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	deps := service.Deps{
		DB:     db,
		Tokens: pkg.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
	}

	if cfg.RedisAddr != "" {
		client, err := rdb.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Error("failed to connect redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer client.Close()
		deps.Sessions = &rdb.SessionRepository{Client: client}
		slog.Info("session registry enabled", "addr", cfg.RedisAddr)
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
		defer producer.Close()
		deps.Audit = &service.KafkaAuditSink{Producer: producer}
		slog.Info("audit stream enabled", "topic", cfg.KafkaTopic)
	}

	if cfg.SMTP.Enabled() {
		deps.Mailer = service.SMTPMailer{Config: cfg.SMTP}
		slog.Info("activation mail enabled", "host", cfg.SMTP.Host)
	}

	r := router.InitRouter(service.New(deps), router.Options{
		DevMode:        cfg.DevMode(),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env, "driver", cfg.DBDriver)
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.Config) {
	var h slog.Handler
	if cfg.DevMode() {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(h))
}
