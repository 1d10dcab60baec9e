package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var databaseURL string
	var migrationsPath string
	var command string

	flag.StringVar(&databaseURL, "database", "", "Database URL (defaults to JULEE_POSTGRES_DSN)")
	flag.StringVar(&migrationsPath, "path", "migrations", "Path to migrations directory")
	flag.StringVar(&command, "command", "up", "Migration command: up, down, version")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("JULEE_POSTGRES_DSN")
	}
	if databaseURL == "" {
		log.Fatal("database URL is required: use -database or JULEE_POSTGRES_DSN")
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), databaseURL)
	if err != nil {
		log.Fatalf("create migration instance: %v", err)
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("database is up to date")
			return
		}
		if err != nil {
			log.Fatalf("run migrations: %v", err)
		}
		log.Println("migrations applied")

	case "down":
		err = m.Down()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("rollback migrations: %v", err)
		}
		log.Println("rollback complete")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("get version: %v", err)
		}
		log.Printf("version %d (dirty: %v)", version, dirty)

	default:
		log.Fatalf("unknown command %q (use: up, down, version)", command)
	}
}
