// Package settings manages a user's task-database configuration: the selected
// database, the properties experience is read from, and the ranked difficulty options.
package settings

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/unicode/norm"

	"github.com/osse101/NotionPet_Go/internal/concurrency"
	"github.com/osse101/NotionPet_Go/internal/difficulty"
	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/event"
	"github.com/osse101/NotionPet_Go/internal/logger"
	"github.com/osse101/NotionPet_Go/internal/notion"
	"github.com/osse101/NotionPet_Go/internal/repository"
)

// Service defines the settings service interface
type Service interface {
	// Get returns the stored settings, or empty settings for a user who never saved
	Get(ctx context.Context, userID string) (*domain.Settings, error)

	// Save validates and stores settings. Changing the database or the difficulty
	// property resets the difficulty order; the order is always reconciled against
	// the live option set before it is stored.
	Save(ctx context.Context, userID string, input domain.Settings) (*domain.Settings, error)

	// DifficultyOptions returns the reconciled difficulty order and the rewards it implies
	DifficultyOptions(ctx context.Context, userID string) (*domain.DifficultyView, error)

	// MoveDifficultyOption moves one option up or down the ranking
	MoveDifficultyOption(ctx context.Context, userID string, index int, dir domain.Direction) (*domain.DifficultyView, error)

	// ManageSelectOption adds, renames or deletes an option of the difficulty property
	ManageSelectOption(ctx context.Context, userID string, change domain.OptionChange) (*domain.DifficultyView, error)

	// CreateProperty creates the default status or difficulty property in the selected database
	CreateProperty(ctx context.Context, userID, propertyType string) (*domain.NotionProperty, error)

	// ConnectNotion exchanges an OAuth code and stores the workspace grant
	ConnectNotion(ctx context.Context, userID, code, redirectURI string) (*domain.NotionToken, error)

	ListDatabases(ctx context.Context, userID string) ([]domain.NotionDatabase, error)

	// GetProperties returns the property schema of a database sorted by name
	GetProperties(ctx context.Context, userID, databaseID string) ([]domain.NotionProperty, error)
}

type service struct {
	repo   repository.Settings
	tokens repository.Token
	client notion.Client
	bus    event.Bus
	cache  *propertyCache
	group  singleflight.Group

	// serializes read-modify-write of one user's order
	locks *concurrency.LockManager
}

// NewService creates a new settings service
func NewService(repo repository.Settings, tokens repository.Token, client notion.Client, bus event.Bus, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:   repo,
		tokens: tokens,
		client: client,
		bus:    bus,
		cache:  newPropertyCache(cacheSize, cacheTTL),
		locks:  concurrency.NewLockManager(),
	}
}

// Get returns the stored settings
func (s *service) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	settings, err := s.repo.GetSettings(ctx, userID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return &domain.Settings{UserID: userID, DifficultyOptionsOrder: []string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSettings, err)
	}
	return settings, nil
}

// Save validates and stores settings
func (s *service) Save(ctx context.Context, userID string, input domain.Settings) (*domain.Settings, error) {
	log := logger.FromContext(ctx)

	defer s.locks.Lock(userID)()

	input.UserID = userID
	input.SelectedDBID = strings.TrimSpace(input.SelectedDBID)
	if input.SelectedDBID == "" {
		return nil, domain.ErrDatabaseNotSelected
	}

	existing, err := s.repo.GetSettings(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrSettingsNotFound) {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSettings, err)
	}

	// The order only carries over while it still ranks the same property
	previous := []string{}
	sameTarget := existing != nil &&
		existing.SelectedDBID == input.SelectedDBID &&
		existing.DifficultyPropertyName == input.DifficultyPropertyName
	if sameTarget {
		previous = existing.DifficultyOptionsOrder
		if len(input.DifficultyOptionsOrder) > 0 {
			previous = input.DifficultyOptionsOrder
		}
	}

	order := []string{}
	if input.XPPropertyName != "" || input.StatusPropertyName != "" || input.DifficultyPropertyName != "" {
		props, err := s.properties(ctx, userID, input.SelectedDBID)
		if err != nil {
			return nil, err
		}
		if err := validateProperties(props, input); err != nil {
			return nil, err
		}
		if input.DifficultyPropertyName != "" {
			order = difficulty.ReconcileOrder(difficulty.NormalizeNames(previous), difficulty.OptionNames(props[input.DifficultyPropertyName]))
		}
	}
	input.DifficultyOptionsOrder = order

	if err := s.repo.SaveSettings(ctx, &input); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSaveSettings, err)
	}

	orderChanged := existing == nil || !slices.Equal(existing.DifficultyOptionsOrder, order)
	log.Info(LogMsgSettingsSaved, "database_id", input.SelectedDBID, "order_changed", orderChanged)
	s.publish(ctx, event.NewSettingsSavedEvent(input, orderChanged))

	return &input, nil
}

func validateProperties(props map[string]domain.NotionProperty, input domain.Settings) error {
	if input.XPPropertyName != "" {
		prop, ok := props[input.XPPropertyName]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, input.XPPropertyName)
		}
		if prop.Type != domain.PropertyTypeNumber && prop.Type != domain.PropertyTypeFormula {
			return fmt.Errorf("%w: "+ErrMsgXPPropertyType, domain.ErrInvalidInput, input.XPPropertyName)
		}
	}
	if input.StatusPropertyName != "" {
		prop, ok := props[input.StatusPropertyName]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, input.StatusPropertyName)
		}
		if prop.Type != domain.PropertyTypeStatus {
			return fmt.Errorf("%w: "+ErrMsgStatusPropertyType, domain.ErrInvalidInput, input.StatusPropertyName)
		}
	}
	if input.DifficultyPropertyName != "" {
		if _, err := selectProperty(props, input.DifficultyPropertyName); err != nil {
			return err
		}
	}
	return nil
}

func selectProperty(props map[string]domain.NotionProperty, name string) (domain.NotionProperty, error) {
	prop, ok := props[name]
	if !ok {
		return domain.NotionProperty{}, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, name)
	}
	if prop.Type != domain.PropertyTypeSelect || prop.Select == nil {
		return domain.NotionProperty{}, fmt.Errorf("%w: %s", domain.ErrPropertyNotSelect, name)
	}
	return prop, nil
}

// DifficultyOptions returns the reconciled order, persisting it when reconciliation changed it
func (s *service) DifficultyOptions(ctx context.Context, userID string) (*domain.DifficultyView, error) {
	defer s.locks.Lock(userID)()

	settings, order, err := s.reconciledOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := difficulty.BuildView(settings.DifficultyPropertyName, order)
	return &view, nil
}

// MoveDifficultyOption moves one option within the reconciled order
func (s *service) MoveDifficultyOption(ctx context.Context, userID string, index int, dir domain.Direction) (*domain.DifficultyView, error) {
	defer s.locks.Lock(userID)()

	settings, order, err := s.reconciledOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings.DifficultyPropertyName == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgDifficultyNotSet)
	}

	moved, err := difficulty.MoveOption(order, index, dir)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(moved, order) {
		if err := s.repo.UpdateDifficultyOrder(ctx, userID, moved); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSaveOrder, err)
		}
	}

	view := difficulty.BuildView(settings.DifficultyPropertyName, moved)
	return &view, nil
}

// reconciledOrder loads settings and reconciles the stored order with the live options.
// Settings without a difficulty property yield an empty order. Callers hold the user's lock.
func (s *service) reconciledOrder(ctx context.Context, userID string) (*domain.Settings, []string, error) {
	settings, err := s.configured(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if settings.DifficultyPropertyName == "" {
		return settings, []string{}, nil
	}

	props, err := s.properties(ctx, userID, settings.SelectedDBID)
	if err != nil {
		return nil, nil, err
	}
	prop, err := selectProperty(props, settings.DifficultyPropertyName)
	if err != nil {
		return nil, nil, err
	}

	order := difficulty.ReconcileOrder(difficulty.NormalizeNames(settings.DifficultyOptionsOrder), difficulty.OptionNames(prop))
	if !slices.Equal(order, settings.DifficultyOptionsOrder) {
		if err := s.repo.UpdateDifficultyOrder(ctx, userID, order); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedToSaveOrder, err)
		}
		logger.FromContext(ctx).Debug(LogMsgOrderReconciled, "before", settings.DifficultyOptionsOrder, "after", order)
		settings.DifficultyOptionsOrder = order
	}
	return settings, order, nil
}

// ManageSelectOption applies an option change by sending the full option list
func (s *service) ManageSelectOption(ctx context.Context, userID string, change domain.OptionChange) (*domain.DifficultyView, error) {
	defer s.locks.Lock(userID)()

	settings, err := s.configured(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings.DifficultyPropertyName == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgDifficultyNotSet)
	}
	token, err := s.token(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Option ids must be current, so skip the cache
	s.cache.Invalidate(userID, settings.SelectedDBID)
	props, err := s.properties(ctx, userID, settings.SelectedDBID)
	if err != nil {
		return nil, err
	}
	prop, err := selectProperty(props, settings.DifficultyPropertyName)
	if err != nil {
		return nil, err
	}

	options, renames, err := applyOptionChange(prop.Select.Options, change)
	if err != nil {
		return nil, err
	}

	if err := s.client.UpdateSelectOptions(ctx, token.AccessToken, settings.SelectedDBID, settings.DifficultyPropertyName, options); err != nil {
		return nil, err
	}
	s.cache.Invalidate(userID, settings.SelectedDBID)

	// A renamed option keeps its rank
	previous := difficulty.NormalizeNames(settings.DifficultyOptionsOrder)
	for i, name := range previous {
		if renamed, ok := renames[name]; ok {
			previous[i] = renamed
		}
	}
	names := make([]string, len(options))
	for i, opt := range options {
		names[i] = opt.Name
	}
	order := difficulty.ReconcileOrder(previous, difficulty.NormalizeNames(names))
	if err := s.repo.UpdateDifficultyOrder(ctx, userID, order); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSaveOrder, err)
	}

	logger.FromContext(ctx).Info(LogMsgOptionsUpdated, "action", change.Action, "options", len(options))
	view := difficulty.BuildView(settings.DifficultyPropertyName, order)
	return &view, nil
}

// applyOptionChange returns the new option list and any rename as old name -> new name
func applyOptionChange(current []domain.SelectOption, change domain.OptionChange) ([]domain.SelectOption, map[string]string, error) {
	options := make([]domain.SelectOption, len(current))
	copy(options, current)
	renames := map[string]string{}
	name := norm.NFC.String(strings.TrimSpace(change.Name))

	find := func(id string) (int, error) {
		if id == "" {
			return -1, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgOptionIDRequired)
		}
		for i, opt := range options {
			if opt.ID == id {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: %s", domain.ErrOptionNotFound, id)
	}
	taken := func(skip int) bool {
		for i, opt := range options {
			if i != skip && norm.NFC.String(opt.Name) == name {
				return true
			}
		}
		return false
	}

	switch change.Action {
	case domain.OptionActionAdd:
		if name == "" {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgOptionNameRequired)
		}
		if taken(-1) {
			return nil, nil, fmt.Errorf("%w: "+ErrMsgOptionExists, domain.ErrInvalidInput, name)
		}
		options = append(options, domain.SelectOption{Name: name})

	case domain.OptionActionUpdate:
		i, err := find(change.OptionID)
		if err != nil {
			return nil, nil, err
		}
		if name == "" {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgOptionNameRequired)
		}
		if taken(i) {
			return nil, nil, fmt.Errorf("%w: "+ErrMsgOptionExists, domain.ErrInvalidInput, name)
		}
		renames[norm.NFC.String(options[i].Name)] = name
		options[i].Name = name

	case domain.OptionActionDelete:
		i, err := find(change.OptionID)
		if err != nil {
			return nil, nil, err
		}
		options = append(options[:i], options[i+1:]...)

	default:
		return nil, nil, fmt.Errorf("%w: "+ErrMsgUnknownOptionAction, domain.ErrInvalidInput, change.Action)
	}

	return options, renames, nil
}

// CreateProperty creates the default status or difficulty property
func (s *service) CreateProperty(ctx context.Context, userID, propertyType string) (*domain.NotionProperty, error) {
	var name string
	switch propertyType {
	case domain.PropertyTypeStatus:
		name = notion.DefaultStatusPropertyName
	case domain.PropertyTypeSelect:
		name = notion.DefaultDifficultyPropertyName
	default:
		return nil, fmt.Errorf("%w: "+ErrMsgUnknownPropertyType, domain.ErrInvalidInput, propertyType)
	}

	settings, err := s.configured(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.token(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.client.CreateProperty(ctx, token.AccessToken, settings.SelectedDBID, name, propertyType); err != nil {
		return nil, err
	}
	s.cache.Invalidate(userID, settings.SelectedDBID)
	logger.FromContext(ctx).Info(LogMsgPropertyCreated, "name", name, "type", propertyType)

	props, err := s.properties(ctx, userID, settings.SelectedDBID)
	if err != nil {
		return nil, err
	}
	prop, ok := props[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, name)
	}
	return &prop, nil
}

// ConnectNotion exchanges an OAuth code and stores the grant
func (s *service) ConnectNotion(ctx context.Context, userID, code, redirectURI string) (*domain.NotionToken, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgCodeRequired)
	}

	token, err := s.client.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return nil, err
	}
	token.UserID = userID
	if err := s.tokens.SaveToken(ctx, token); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSaveToken, err)
	}

	// A new grant can see a different set of databases
	s.cache.InvalidateUser(userID)
	logger.FromContext(ctx).Info(LogMsgNotionConnected, "workspace", token.WorkspaceName)
	return token, nil
}

// ListDatabases lists the databases shared with the user's integration
func (s *service) ListDatabases(ctx context.Context, userID string) ([]domain.NotionDatabase, error) {
	token, err := s.token(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.client.ListDatabases(ctx, token.AccessToken)
}

// GetProperties returns the property schema of a database sorted by name
func (s *service) GetProperties(ctx context.Context, userID, databaseID string) ([]domain.NotionProperty, error) {
	if strings.TrimSpace(databaseID) == "" {
		return nil, domain.ErrDatabaseNotSelected
	}
	props, err := s.properties(ctx, userID, databaseID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.NotionProperty, 0, len(props))
	for _, p := range props {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// properties returns the cached schema, fetching it once for concurrent callers on a miss
func (s *service) properties(ctx context.Context, userID, databaseID string) (map[string]domain.NotionProperty, error) {
	if props, ok := s.cache.Get(userID, databaseID); ok {
		return props, nil
	}

	// The fetch is shared, so it outlives any one caller's cancellation
	ch := s.group.DoChan(cacheKey(userID, databaseID), func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PropertiesFetchTimeout)
		defer cancel()

		token, err := s.token(fetchCtx, userID)
		if err != nil {
			return nil, err
		}
		logger.FromContext(ctx).Debug(LogMsgPropertiesCacheMiss, "database_id", databaseID)
		props, err := s.client.GetProperties(fetchCtx, token.AccessToken, databaseID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProperties, err)
		}
		s.cache.Set(userID, databaseID, props)
		return props, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(map[string]domain.NotionProperty), nil
	}
}

// configured loads settings that have a database selected
func (s *service) configured(ctx context.Context, userID string) (*domain.Settings, error) {
	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSettings, err)
	}
	if settings.SelectedDBID == "" {
		return nil, domain.ErrDatabaseNotSelected
	}
	return settings, nil
}

func (s *service) token(ctx context.Context, userID string) (*domain.NotionToken, error) {
	token, err := s.tokens.GetToken(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotionNotConnected) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetToken, err)
	}
	return token, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
