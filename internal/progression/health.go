package progression

import (
	"fmt"
	"time"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// HealthFor grades how recently the pet received experience.
// Returns nil when the pet has never been updated.
func HealthFor(lastUpdated *time.Time, now time.Time) *domain.HealthStatus {
	if lastUpdated == nil || lastUpdated.IsZero() {
		return nil
	}

	days := int(now.Sub(*lastUpdated).Hours() / 24)
	if days < 0 {
		days = 0
	}

	switch {
	case days < HealthyMaxDays:
		return &domain.HealthStatus{
			Icon:           HealthIconHealthy,
			Status:         HealthStatusHealthy,
			Message:        HealthMessageHealthy,
			Color:          HealthColorHealthy,
			LastUpdateText: LastUpdateJustNow,
			DaysSince:      days,
		}
	case days <= CautionMaxDays:
		return &domain.HealthStatus{
			Icon:           HealthIconCaution,
			Status:         HealthStatusCaution,
			Message:        HealthMessageCaution,
			Color:          HealthColorCaution,
			LastUpdateText: fmt.Sprintf(LastUpdateDaysFormat, days),
			DaysSince:      days,
		}
	default:
		return &domain.HealthStatus{
			Icon:           HealthIconSick,
			Status:         HealthStatusSick,
			Message:        HealthMessageSick,
			Color:          HealthColorSick,
			LastUpdateText: fmt.Sprintf(LastUpdateDaysFormat, days),
			DaysSince:      days,
		}
	}
}
