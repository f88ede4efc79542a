// Command bootstrap migrates the schema, seeds role permissions and creates the first admin.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"Club_Portal/internal/config"
	"Club_Portal/internal/repository/store"
	"Club_Portal/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	db, err := store.Open(cfg.DBDriver, cfg.DatabaseURL, cfg.DevMode())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	boot := service.NewBootstrapService(db)
	if err := boot.Migrate(); err != nil {
		slog.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}
	slog.Info("schema migrated")

	if cfg.PermissionFile != "" {
		f, err := os.Open(cfg.PermissionFile)
		if err != nil {
			slog.Error("failed to open permission seed", "file", cfg.PermissionFile, "error", err)
			os.Exit(1)
		}
		seed, err := service.LoadPermissionSeed(f)
		f.Close()
		if err != nil {
			slog.Error("invalid permission seed", "error", err)
			os.Exit(1)
		}
		if err := boot.SeedPermissions(ctx, seed); err != nil {
			slog.Error("failed to seed permissions", "error", err)
			os.Exit(1)
		}
		slog.Info("permissions seeded", "roles", len(seed.Roles))
	}

	if cfg.Bootstrap.Email == "" {
		slog.Info("no bootstrap admin configured")
		return
	}
	acct, err := boot.CreateFirstAdmin(ctx, service.SignupInput{
		Email:    cfg.Bootstrap.Email,
		Username: cfg.Bootstrap.Username,
		Password: cfg.Bootstrap.Password,
	})
	switch {
	case errors.Is(err, service.ErrAlreadyBootstrapped):
		slog.Info("admin already exists, skipping")
	case err != nil:
		slog.Error("failed to create admin", "error", err)
		os.Exit(1)
	default:
		slog.Info("admin created", "id", acct.ID, "username", acct.Username)
	}
}
