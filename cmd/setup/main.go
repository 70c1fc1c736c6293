// Command setup creates the service database when missing and applies the
// embedded migrations. It reads the same DB_* variables as the server.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/osse101/NotionPet_Go/internal/config"
	"github.com/osse101/NotionPet_Go/internal/database"
)

const setupTimeout = 2 * time.Minute

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	if err := run(ctx, config.LoadDatabase()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	created, err := database.EnsureDatabase(ctx, cfg.MaintenanceConnString(), cfg.DBName)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("created database %s\n", cfg.DBName)
	} else {
		fmt.Printf("database %s already exists\n", cfg.DBName)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), 2, time.Minute, 5*time.Minute)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.DBName, err)
	}
	defer pool.Close()

	pending, err := database.PendingMigrations(ctx, pool)
	if err != nil {
		return err
	}
	if pending == 0 {
		fmt.Println("schema is up to date")
		return nil
	}
	fmt.Printf("applying %d migration(s)\n", pending)
	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	fmt.Println("migrations complete")
	return nil
}
