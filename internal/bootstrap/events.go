package bootstrap

import (
	"log/slog"

	"github.com/osse101/NotionPet_Go/internal/event"
)

// InitializeEventSystem creates the in-process event bus. Handlers run
// synchronously on the publisher's goroutine and a failing handler never
// fails the operation that published.
func InitializeEventSystem() event.Bus {
	bus := event.NewMemoryBus()
	slog.Info(LogMsgEventSystemInitialized)
	return bus
}
