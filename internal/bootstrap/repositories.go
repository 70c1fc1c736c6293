package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/NotionPet_Go/internal/database/postgres"
	"github.com/osse101/NotionPet_Go/internal/eventlog"
	"github.com/osse101/NotionPet_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Pet      repository.Pet
	Settings repository.Settings
	Token    repository.Token
	EventLog eventlog.Repository
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Pet:      postgres.NewPetRepository(dbPool),
		Settings: postgres.NewSettingsRepository(dbPool),
		Token:    postgres.NewTokenRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
