package notify

import "time"

// WebhookTimeout bounds one webhook post
const WebhookTimeout = 5 * time.Second

// Embed colors
const (
	ColorLevelUp = 0xFFD700 // Gold
	ColorRebirth = 0x9B59B6 // Purple
)

// Embed text
const (
	TitleLevelUp      = "🎉 레벨 업!"
	TitleRebirth      = "✨ 환생!"
	DescLevelUpFormat = "펫이 **레벨 %d**에 도달했어요!"
	DescRebirthFormat = "펫이 **%d번째 환생**을 했어요!"
	FieldLevel        = "레벨"
	FieldRebirths     = "환생"
	FieldTotalExp     = "누적 경험치"
	FooterText        = "NotionPet"
)

const webhookPathSegment = "webhooks"

// Log messages
const (
	LogMsgNotificationSent  = "Discord notification sent"
	LogMsgNotificationError = "Failed to send Discord notification"
	LogMsgParseError        = "Failed to parse level up payload"
	LogMsgDisabled          = "Discord webhook not configured, level up notifications disabled"
)

// Error messages
const (
	ErrMsgInvalidWebhookURL = "invalid discord webhook url"
)
