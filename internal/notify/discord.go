// Package notify posts level-up and rebirth announcements to a Discord webhook.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/NotionPet_Go/internal/event"
	"github.com/osse101/NotionPet_Go/internal/logger"
)

// WebhookExecutor is the part of a discordgo session used to post webhook messages
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier announces pet level-ups to a Discord channel
type DiscordNotifier struct {
	session   WebhookExecutor
	webhookID string
	token     string
	timeout   time.Duration
}

// NewDiscordNotifier creates a notifier for webhookURL. It returns nil, nil when the
// URL is empty so callers can skip the subscription.
func NewDiscordNotifier(webhookURL string) (*DiscordNotifier, error) {
	if webhookURL == "" {
		return nil, nil
	}
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &DiscordNotifier{session: session, webhookID: id, token: token, timeout: WebhookTimeout}, nil
}

// NewDiscordNotifierWithExecutor creates a notifier over an existing executor
func NewDiscordNotifierWithExecutor(session WebhookExecutor, webhookID, token string) *DiscordNotifier {
	return &DiscordNotifier{session: session, webhookID: webhookID, token: token, timeout: WebhookTimeout}
}

// ParseWebhookURL extracts the id and token from .../api/webhooks/{id}/{token}
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "", errors.New(ErrMsgInvalidWebhookURL)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == webhookPathSegment && i+2 < len(parts) {
			id, token = parts[i+1], parts[i+2]
			break
		}
	}
	if id == "" || token == "" {
		return "", "", errors.New(ErrMsgInvalidWebhookURL)
	}
	return id, token, nil
}

// Subscribe registers the notifier for level-up events
func (n *DiscordNotifier) Subscribe(bus event.Bus) {
	bus.Subscribe(event.PetLeveledUp, n.handleLevelUp)
}

func (n *DiscordNotifier) handleLevelUp(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.PetLeveledUpPayloadV1](evt.Payload)
	if err != nil {
		log.Warn(LogMsgParseError, "error", err)
		return nil
	}

	reqCtx, cancel := n.requestContext(ctx)
	defer cancel()

	params := &discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{levelUpEmbed(payload)}}
	if _, err := n.session.WebhookExecute(n.webhookID, n.token, false, params, discordgo.WithContext(reqCtx)); err != nil {
		// A lost announcement does not fail the refresh that caused it
		log.Warn(LogMsgNotificationError, "error", err)
		return nil
	}
	log.Info(LogMsgNotificationSent, "new_level", payload.NewLevel, "new_rebirths", payload.NewRebirths)
	return nil
}

// requestContext bounds a webhook call; handlers run inline with the publisher
func (n *DiscordNotifier) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, n.timeout)
}

func levelUpEmbed(p event.PetLeveledUpPayloadV1) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       TitleLevelUp,
		Description: fmt.Sprintf(DescLevelUpFormat, p.NewLevel),
		Color:       ColorLevelUp,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldLevel, Value: fmt.Sprintf("%d → %d", p.OldLevel, p.NewLevel), Inline: true},
			{Name: FieldTotalExp, Value: fmt.Sprintf("%d", p.TotalExp), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: FooterText},
	}
	if p.Timestamp > 0 {
		embed.Timestamp = time.Unix(p.Timestamp, 0).UTC().Format(time.RFC3339)
	}
	if p.NewRebirths > p.OldRebirths {
		embed.Title = TitleRebirth
		embed.Description = fmt.Sprintf(DescRebirthFormat, p.NewRebirths)
		embed.Color = ColorRebirth
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: FieldRebirths, Value: fmt.Sprintf("%d", p.NewRebirths), Inline: true,
		})
	}
	return embed
}
