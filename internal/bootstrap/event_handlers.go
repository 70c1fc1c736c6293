package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/NotionPet_Go/internal/config"
	"github.com/osse101/NotionPet_Go/internal/event"
	"github.com/osse101/NotionPet_Go/internal/eventlog"
	"github.com/osse101/NotionPet_Go/internal/metrics"
	"github.com/osse101/NotionPet_Go/internal/notify"
	"github.com/osse101/NotionPet_Go/internal/sse"
	"github.com/osse101/NotionPet_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	Hub             *sse.Hub
	RefreshWorker   *worker.RefreshWorker
	Config          *config.Config
}

// RegisterEventHandlers sets up all event subscribers:
// metrics, the browser stream, Discord level-up posts, the event history
// and the refresh that follows a settings save.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
	slog.Info(LogMsgStreamSubscriberRegistered)

	notifier, err := notify.NewDiscordNotifier(deps.Config.DiscordWebhookURL)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedCreateNotifier, err)
	}
	if notifier != nil {
		notifier.Subscribe(deps.EventBus)
		slog.Info(LogMsgDiscordNotifierEnabled)
	} else {
		slog.Info(LogMsgDiscordNotifierDisabled)
	}

	deps.EventLogService.Subscribe(deps.EventBus)
	slog.Info(LogMsgEventLoggerInitialized, "retention_days", deps.Config.EventRetentionDays)

	deps.RefreshWorker.Subscribe(deps.EventBus)
	slog.Info(LogMsgRefreshWorkerRegistered, "debounce", deps.Config.RefreshDebounce)

	return nil
}
