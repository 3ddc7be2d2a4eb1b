package earnings

import (
	"time"

	"MarketLens/internal/domain/models"
	"MarketLens/pkg/config"
	"MarketLens/pkg/util"
)

// DeriveContext relates now to an earnings record: today (split by timing),
// upcoming within the configured window, recent within the window, or none.
func DeriveContext(rec *models.EarningsRecord, now time.Time, cfg config.ConfidenceConfig) models.EarningsContext {
	if rec == nil || rec.Date.IsZero() {
		return models.EarningsContext{Status: models.StatusNone}
	}

	days := util.DaysBetween(rec.Date, now) // positive: earnings in the past
	switch {
	case days == 0:
		if rec.Timing == models.TimingAfterClose {
			return models.EarningsContext{Status: models.StatusTodayAfterClose}
		}
		return models.EarningsContext{Status: models.StatusTodayBeforeOpen}
	case days < 0:
		away := -days
		if away <= cfg.UpcomingDays {
			return models.EarningsContext{Status: models.StatusUpcoming, DaysAway: away}
		}
	default:
		if days <= cfg.RecentDays {
			return models.EarningsContext{Status: models.StatusRecent, DaysSince: days}
		}
	}
	return models.EarningsContext{Status: models.StatusNone}
}
