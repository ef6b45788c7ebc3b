package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrActivityNotFound = errors.New("model: activity not found")
	ErrEventNotFound    = errors.New("model: event not found")
)

type EventKind string

const (
	EventKindMaybe    EventKind = "maybe"
	EventKindTimed    EventKind = "timed"
	EventKindFlexible EventKind = "flexible"
)

type Activity struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Details   []string `json:"details"`
	Completed bool     `json:"completed"`
	Skipped   bool     `json:"skipped,omitempty"`
}

// Event is a top-level planned item for a day. Completed mirrors the state
// of its activities and is only changed through CompleteActivity.
type Event struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Time       *string    `json:"time"`
	Duration   *string    `json:"duration"`
	IsMaybe    bool       `json:"isMaybe"`
	Activities []Activity `json:"activities"`
	Completed  bool       `json:"completed"`
}

func (e Event) Kind() EventKind {
	if e.IsMaybe {
		return EventKindMaybe
	}
	if e.Time != nil {
		return EventKindTimed
	}
	return EventKindFlexible
}

func (e Event) CompletedCount() int {
	n := 0
	for _, a := range e.Activities {
		if a.Completed {
			n++
		}
	}
	return n
}

func (e Event) allActivitiesCompleted() bool {
	if len(e.Activities) == 0 {
		return false
	}
	for _, a := range e.Activities {
		if !a.Completed {
			return false
		}
	}
	return true
}

func (e *Event) CompleteActivity(activityID string) error {
	idx := e.activityIndex(activityID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrActivityNotFound, activityID)
	}
	e.Activities[idx].Completed = true
	e.Completed = e.allActivitiesCompleted()
	return nil
}

func (e *Event) SkipActivity(activityID string) error {
	idx := e.activityIndex(activityID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrActivityNotFound, activityID)
	}
	e.Activities[idx].Skipped = true
	return nil
}

func (e Event) activityIndex(activityID string) int {
	for i := range e.Activities {
		if e.Activities[i].ID == activityID {
			return i
		}
	}
	return -1
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: event id is required")
	}
	seen := make(map[string]bool, len(e.Activities))
	for _, a := range e.Activities {
		if strings.TrimSpace(a.ID) == "" {
			return errors.New("model: activity id is required")
		}
		if seen[a.ID] {
			return fmt.Errorf("model: duplicate activity id %q", a.ID)
		}
		seen[a.ID] = true
	}
	if e.Completed != e.allActivitiesCompleted() {
		return errors.New("model: event completed flag does not match its activities")
	}
	return nil
}

func FindEvent(events []Event, eventID string) (int, error) {
	for i := range events {
		if events[i].ID == eventID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrEventNotFound, eventID)
}

// CloneEvents deep-copies events so callers can mutate the copy without
// touching slices shared with a stored plan.
func CloneEvents(events []Event) []Event {
	if events == nil {
		return nil
	}
	out := make([]Event, len(events))
	for i, ev := range events {
		out[i] = ev
		if ev.Time != nil {
			t := *ev.Time
			out[i].Time = &t
		}
		if ev.Duration != nil {
			d := *ev.Duration
			out[i].Duration = &d
		}
		out[i].Activities = make([]Activity, len(ev.Activities))
		for j, a := range ev.Activities {
			out[i].Activities[j] = a
			out[i].Activities[j].Details = make([]string, len(a.Details))
			copy(out[i].Activities[j].Details, a.Details)
		}
	}
	return out
}
