// Package pet turns the linked task database into the pet's lifetime experience
// and presents it as a card.
package pet

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/NotionPet_Go/internal/difficulty"
	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/event"
	"github.com/osse101/NotionPet_Go/internal/logger"
	"github.com/osse101/NotionPet_Go/internal/metrics"
	"github.com/osse101/NotionPet_Go/internal/notion"
	"github.com/osse101/NotionPet_Go/internal/progression"
	"github.com/osse101/NotionPet_Go/internal/repository"
)

// DifficultyProvider returns the reconciled difficulty order of a user
type DifficultyProvider interface {
	DifficultyOptions(ctx context.Context, userID string) (*domain.DifficultyView, error)
}

// Service defines the pet service interface
type Service interface {
	// GetCard returns the owner's card. A user without stored state gets a fresh card.
	GetCard(ctx context.Context, userID string) (*domain.PetCard, error)

	// GetPublicCard returns the read-only card shared by link
	GetPublicCard(ctx context.Context, userID string) (*domain.PetCard, error)

	// RefreshExperience recomputes lifetime experience from the task database
	RefreshExperience(ctx context.Context, userID string) (*domain.ExperienceSummary, error)

	// SyncAll refreshes every configured user with bounded concurrency
	SyncAll(ctx context.Context) error
}

type service struct {
	pets        repository.Pet
	settings    repository.Settings
	tokens      repository.Token
	client      notion.Client
	difficulty  DifficultyProvider
	bus         event.Bus
	completed   StatusSet
	concurrency int
	now         func() time.Time
}

// NewService creates a new pet service
func NewService(
	pets repository.Pet,
	settings repository.Settings,
	tokens repository.Token,
	client notion.Client,
	difficulty DifficultyProvider,
	bus event.Bus,
	completedStatuses []string,
	concurrency int,
) Service {
	if concurrency < 1 {
		concurrency = DefaultSyncConcurrency
	}
	return &service{
		pets:        pets,
		settings:    settings,
		tokens:      tokens,
		client:      client,
		difficulty:  difficulty,
		bus:         bus,
		completed:   NewStatusSet(completedStatuses),
		concurrency: concurrency,
		now:         time.Now,
	}
}

// GetCard returns the owner's card
func (s *service) GetCard(ctx context.Context, userID string) (*domain.PetCard, error) {
	state, err := s.pets.GetPet(ctx, userID)
	if errors.Is(err, domain.ErrPetNotFound) {
		state = &domain.PetState{UserID: userID}
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPet, err)
	}
	return s.buildCard(state)
}

// GetPublicCard returns the shared card, or ErrPetNotFound
func (s *service) GetPublicCard(ctx context.Context, userID string) (*domain.PetCard, error) {
	state, err := s.pets.GetPet(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPet, err)
	}
	return s.buildCard(state)
}

func (s *service) buildCard(state *domain.PetState) (*domain.PetCard, error) {
	result, err := progression.Compute(state.TotalExp)
	if err != nil {
		return nil, err
	}
	return &domain.PetCard{
		UserID:      state.UserID,
		TotalExp:    state.TotalExp,
		PageCount:   state.PageCount,
		LastUpdated: state.LastUpdated,
		Progression: result,
		Theme:       progression.ThemeFor(result.Level),
		Health:      progression.HealthFor(state.LastUpdated, s.now()),
	}, nil
}

// RefreshExperience recomputes experience on behalf of the user
func (s *service) RefreshExperience(ctx context.Context, userID string) (*domain.ExperienceSummary, error) {
	summary, err := s.refresh(ctx, userID, event.SourceManual)
	metrics.ExperienceRefreshes.WithLabelValues(metrics.ObserveOutcome(err)).Inc()
	return summary, err
}

func (s *service) refresh(ctx context.Context, userID, source string) (*domain.ExperienceSummary, error) {
	log := logger.FromContext(ctx)

	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSettings, err)
	}
	if settings.SelectedDBID == "" {
		return nil, domain.ErrDatabaseNotSelected
	}
	if settings.XPPropertyName == "" {
		return nil, domain.ErrXPPropertyNotSet
	}

	token, err := s.tokens.GetToken(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotionNotConnected) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetToken, err)
	}

	pages, err := s.client.QueryPages(ctx, token.AccessToken, settings.SelectedDBID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPages, err)
	}

	order := s.difficultyOrder(ctx, userID, settings)
	total, count := ComputeExperience(pages, SourceFromSettings(settings, order), s.completed)

	previous, err := s.pets.GetPet(ctx, userID)
	if errors.Is(err, domain.ErrPetNotFound) {
		previous = &domain.PetState{UserID: userID}
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPet, err)
	}

	before, err := progression.Compute(previous.TotalExp)
	if err != nil {
		return nil, err
	}
	// rebirth_count mirrors what the stored total will imply
	mirror, err := progression.Compute(max(total, previous.TotalExp))
	if err != nil {
		return nil, err
	}

	now := s.now()
	saved, err := s.pets.SavePet(ctx, &domain.PetState{
		UserID:       userID,
		TotalExp:     total,
		RebirthCount: mirror.RebirthCount,
		PageCount:    count,
		LastUpdated:  &now,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSavePet, err)
	}

	after, err := progression.Compute(saved.TotalExp)
	if err != nil {
		return nil, err
	}

	summary := &domain.ExperienceSummary{
		UserID:       userID,
		TotalExp:     saved.TotalExp,
		PageCount:    saved.PageCount,
		OldLevel:     before.Level,
		NewLevel:     after.Level,
		OldRebirths:  before.RebirthCount,
		NewRebirths:  after.RebirthCount,
		Reborn:       after.RebirthCount > before.RebirthCount,
		ExpUnchanged: saved.TotalExp == previous.TotalExp,
	}
	summary.LeveledUp = summary.Reborn || after.Level > before.Level

	log.Info(LogMsgExperienceRefreshed,
		"total_exp", summary.TotalExp,
		"computed_exp", total,
		"page_count", summary.PageCount,
		"level", summary.NewLevel,
		"rebirths", summary.NewRebirths,
		"source", source)

	card, err := s.buildCard(saved)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.NewPetUpdatedEvent(*card, source))
	if summary.LeveledUp {
		s.publish(ctx, event.NewPetLeveledUpEvent(*summary, source))
	}

	return summary, nil
}

// difficultyOrder prefers the live reconciled order and falls back to the stored one
func (s *service) difficultyOrder(ctx context.Context, userID string, settings *domain.Settings) []string {
	if settings.DifficultyPropertyName == "" {
		return nil
	}
	if s.difficulty != nil {
		view, err := s.difficulty.DifficultyOptions(ctx, userID)
		if err == nil {
			return view.Order
		}
		logger.FromContext(ctx).Warn(LogMsgDifficultyFallback, "error", err)
	}
	return difficulty.NormalizeNames(settings.DifficultyOptionsOrder)
}

// SyncAll refreshes every configured user. One user's failure does not stop the others.
func (s *service) SyncAll(ctx context.Context) error {
	start := s.now()
	defer func() {
		metrics.SyncDuration.Observe(time.Since(start).Seconds())
	}()

	userIDs, err := s.settings.ListConfiguredUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToListUsers, err)
	}

	var failed int32
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			userCtx := logger.WithUserID(ctx, userID)
			_, err := s.refresh(userCtx, userID, event.SourceScheduled)
			metrics.SyncUsers.WithLabelValues(metrics.ObserveOutcome(err)).Inc()
			if err != nil {
				atomic.AddInt32(&failed, 1)
				logger.FromContext(userCtx).Warn(LogMsgSyncUserFailed, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.FromContext(ctx).Info(LogMsgSyncFinished, "users", len(userIDs), "failed", failed)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if failed > 0 {
		return fmt.Errorf(ErrMsgSyncFailures, failed, len(userIDs))
	}
	return nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
