package worker

import (
	"context"
	"time"

	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/event"
	"github.com/osse101/NotionPet_Go/internal/logger"
)

// Refresher recomputes a user's experience from the task database
type Refresher interface {
	RefreshExperience(ctx context.Context, userID string) (*domain.ExperienceSummary, error)
}

// RefreshWorker re-initializes experience after settings are saved. Repeated
// saves for the same user within the delay collapse into one refresh.
type RefreshWorker struct {
	*debouncer
	refresher Refresher
	delay     time.Duration
	timeout   time.Duration
}

// NewRefreshWorker creates a new RefreshWorker
func NewRefreshWorker(refresher Refresher, delay time.Duration) *RefreshWorker {
	return &RefreshWorker{
		debouncer: newDebouncer(),
		refresher: refresher,
		delay:     delay,
		timeout:   DefaultRefreshTimeout,
	}
}

// Subscribe subscribes the worker to settings changes
func (w *RefreshWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.SettingsSaved, w.handleSettingsSaved)
}

func (w *RefreshWorker) handleSettingsSaved(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.SettingsSavedPayloadV1](e.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUnexpectedPayload, "type", e.Type, "error", err)
		return nil
	}
	if !payload.ExperienceConfigured {
		return nil
	}
	w.Schedule(payload.UserID)
	return nil
}

// Schedule queues a refresh for userID, replacing any refresh already pending
func (w *RefreshWorker) Schedule(userID string) {
	log := logger.FromContext(context.Background())
	if !w.trigger(userID, w.delay, w.refresh(userID)) {
		log.Warn(LogMsgRefreshRejected, "user_id", userID)
		return
	}
	log.Debug(LogMsgRefreshScheduled, "user_id", userID, "delay", w.delay)
}

func (w *RefreshWorker) refresh(userID string) func(ctx context.Context) {
	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(logger.WithUserID(ctx, userID), w.timeout)
		defer cancel()

		log := logger.FromContext(ctx)
		summary, err := w.refresher.RefreshExperience(ctx, userID)
		if err != nil {
			log.Error(LogMsgRefreshFailed, "error", err)
			return
		}
		log.Info(LogMsgRefreshCompleted, "total_exp", summary.TotalExp, "page_count", summary.PageCount)
	}
}

// Shutdown cancels pending refreshes and waits for running ones
func (w *RefreshWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	dropped, err := w.close(ctx)
	if len(dropped) > 0 {
		log.Info(LogMsgRefreshesDropped, "user_ids", dropped)
	}
	if err != nil {
		log.Warn(LogMsgRefreshShutdownTimeout, "error", err)
		return err
	}
	return nil
}
