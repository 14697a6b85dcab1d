package main

import (
	"context"
	"flag"
	"log"

	"github.com/stagepass/stagepass/internal/config"
	"github.com/stagepass/stagepass/internal/migrations"
	"github.com/stagepass/stagepass/internal/postgres"
)

func main() {
	var (
		upFlag     = flag.Bool("up", false, "Apply pending migrations")
		downFlag   = flag.Bool("down", false, "Roll back all migrations")
		statusFlag = flag.Bool("status", false, "Show current schema version")
	)
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := postgres.New(context.Background(), postgres.Config{
		DSN: cfg.Postgres.DSN(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	switch {
	case *statusFlag:
		version, dirty, err := migrations.Version(pool)
		if err != nil {
			log.Fatalf("Failed to read schema version: %v", err)
		}
		log.Printf("Schema version: %d (dirty: %v)", version, dirty)
	case *upFlag:
		if err := migrations.Up(pool); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		log.Println("Migrations applied")
	case *downFlag:
		if err := migrations.Down(pool); err != nil {
			log.Fatalf("Failed to roll back migrations: %v", err)
		}
		log.Println("Migrations rolled back")
	default:
		flag.Usage()
	}
}
