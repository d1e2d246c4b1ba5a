package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/m04kA/SMC-BookingSlots/internal/config"
	"github.com/m04kA/SMC-BookingSlots/pkg/logger"
)

func main() {
	var (
		configPath     = flag.String("config", "config.toml", "Path to config file")
		migrationsPath = flag.String("migrations", "migrations", "Path to migrations directory")
		command        = flag.String("command", "up", "Command to run (up, down, steps, version, force)")
		arg            = flag.String("arg", "", "Argument for steps/force")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	m, err := migrate.New(fmt.Sprintf("file://%s", *migrationsPath), cfg.Database.URL())
	if err != nil {
		log.Fatal("Migration init failed: %v", err)
	}
	defer m.Close()

	switch *command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Migration up failed: %v", err)
		}
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Migration down failed: %v", err)
		}
	case "steps":
		n, err := strconv.Atoi(*arg)
		if err != nil {
			log.Fatal("steps requires an integer -arg: %v", err)
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Migration steps failed: %v", err)
		}
	case "force":
		v, err := strconv.Atoi(*arg)
		if err != nil {
			log.Fatal("force requires a version in -arg: %v", err)
		}
		if err := m.Force(v); err != nil {
			log.Fatal("Migration force failed: %v", err)
		}
	case "version":
	default:
		log.Fatal("Unknown command: %s", *command)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal("Get version failed: %v", err)
	}
	log.Info("Migrations at version %d (dirty=%v)", version, dirty)
}
