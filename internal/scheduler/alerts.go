package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/goodbuddi/internal/model"
)

// AlertsFor builds start alerts for the timed events of a day. Events whose
// time token does not resolve to a clock, or whose trigger already passed,
// are skipped. Maybe events are tentative and never alert.
func AlertsFor(dateKey string, events []model.Event, lead time.Duration, now time.Time) []Alert {
	day, err := model.ParseDateKey(dateKey)
	if err != nil {
		return nil
	}
	out := make([]Alert, 0)
	for _, ev := range events {
		if ev.Kind() != model.EventKindTimed {
			continue
		}
		start, ok := model.ClockOn(*ev.Time, day)
		if !ok {
			continue
		}
		trigger := start.Add(-lead)
		if trigger.Before(now) {
			continue
		}
		out = append(out, Alert{
			ID:        uuid.NewString(),
			DateKey:   dateKey,
			EventID:   ev.ID,
			Title:     ev.Title,
			StartsAt:  start,
			TriggerAt: trigger,
		})
	}
	return out
}
