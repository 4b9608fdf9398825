package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"expense-tracker/internal/config"
	"expense-tracker/internal/database"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	if err := run(os.Args[1:]); err != nil {
		slog.Error("Migration error", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: migrate <up|down|version> [N]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db, cfg.Database.MigrationsPath)
	if err := runner.WaitForDatabase(context.Background()); err != nil {
		return err
	}

	switch args[0] {
	case "up":
		if err := runner.RunMigrations(); err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
	case "down":
		steps := 1
		if len(args) > 1 {
			steps, err = strconv.Atoi(args[1])
			if err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
		}
		if err := runner.Steps(-steps); err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		slog.Info("Migrations rolled back", "steps", steps)
	case "version":
		// reported below
	default:
		return fmt.Errorf("unknown command %q: expected up, down or version", args[0])
	}

	version, dirty, err := runner.GetMigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	slog.Info("Migration status", "version", version, "dirty", dirty)
	return nil
}
