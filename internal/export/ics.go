// Package export writes day plans as iCalendar documents.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/sandeepkv93/goodbuddi/internal/model"
)

const productID = "-//goodbuddi//day planner//EN"

// Calendar builds one VEVENT per event of every plan. Timed events get a
// DTSTART and, when the duration is understood, a DTEND. Everything else is
// an all-day entry on the plan's date.
func Calendar(plans []model.DayPlan, stamp time.Time) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, plan := range plans {
		day, err := model.ParseDateKey(plan.DateKey)
		if err != nil {
			return nil, err
		}
		for _, ev := range plan.Events {
			addEvent(cal, day, ev, stamp)
		}
	}
	return cal, nil
}

func addEvent(cal *ical.Calendar, day time.Time, ev model.Event, stamp time.Time) {
	vev := cal.AddEvent(ev.ID + "@goodbuddi")
	vev.SetDtStampTime(stamp)
	vev.SetSummary(ev.Title)
	if desc := describe(ev); desc != "" {
		vev.SetDescription(desc)
	}

	switch {
	case ev.IsMaybe:
		vev.SetStatus(ical.ObjectStatusTentative)
	case ev.Completed:
		vev.SetStatus(ical.ObjectStatusConfirmed)
	}

	var start time.Time
	timed := false
	if ev.Time != nil {
		start, timed = model.ClockOn(*ev.Time, day)
	}
	if !timed {
		vev.SetAllDayStartAt(day)
		vev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		return
	}
	vev.SetStartAt(start)
	if ev.Duration != nil {
		if span, ok := model.SpanOf(*ev.Duration); ok && span > 0 {
			vev.SetEndAt(start.Add(span))
		}
	}
}

// describe lists activities with their details, marking finished and
// skipped ones.
func describe(ev model.Event) string {
	var sb strings.Builder
	for _, a := range ev.Activities {
		mark := " "
		switch {
		case a.Completed:
			mark = "x"
		case a.Skipped:
			mark = "-"
		}
		fmt.Fprintf(&sb, "[%s] %s\n", mark, a.Name)
		for _, d := range a.Details {
			fmt.Fprintf(&sb, "    • %s\n", d)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// WriteICS writes the events of one date as a calendar.
func WriteICS(w io.Writer, dateKey string, events []model.Event) error {
	return WritePlans(w, []model.DayPlan{{DateKey: dateKey, Events: events}}, time.Now())
}

func WritePlans(w io.Writer, plans []model.DayPlan, stamp time.Time) error {
	cal, err := Calendar(plans, stamp)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}
