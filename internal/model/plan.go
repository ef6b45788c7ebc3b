package model

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const MaxPhrases = 10

var (
	ErrTooManyPhrases = errors.New("model: too many phrases")
	ErrNoPhrases      = errors.New("model: at least one phrase is required")
	ErrPhraseIndex    = errors.New("model: phrase index out of range")
)

var DefaultPhrases = []string{
	"Let's get it poppin!",
	"Today is your canvas. Paint it with intention.",
	"Small steps create great journeys.",
	"You have everything you need right now.",
	"Energy flows where attention goes.",
}

// DayPlan is what the store keeps per date: the raw scratchpad and the result
// of its last commit.
type DayPlan struct {
	DateKey    string
	Scratchpad string
	Events     []Event
	UpdatedAt  time.Time
}

func (p DayPlan) Validate() error {
	if _, err := ParseDateKey(p.DateKey); err != nil {
		return err
	}
	for _, ev := range p.Events {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("event %s: %w", ev.ID, err)
		}
	}
	return nil
}

// PreviewTitles returns up to limit event titles for the week overview.
func (p DayPlan) PreviewTitles(limit int) []string {
	out := make([]string, 0, limit)
	for _, ev := range p.Events {
		if len(out) == limit {
			break
		}
		out = append(out, ev.Title)
	}
	return out
}

// CompletedActivityNames lists completed activities in document order, as
// shown on the end-of-day summary.
func CompletedActivityNames(events []Event) []string {
	out := make([]string, 0)
	for _, ev := range events {
		for _, a := range ev.Activities {
			if a.Completed {
				out = append(out, a.Name)
			}
		}
	}
	return out
}

type Reflection struct {
	DateKey   string
	Completed []string
	Exciting  string
	SavedAt   time.Time
}

// PhraseBook holds the user's light-up phrases. Pinned is -1 when the daily
// phrase should be picked at random.
type PhraseBook struct {
	Phrases []string
	Pinned  int
}

func DefaultPhraseBook() PhraseBook {
	return PhraseBook{Phrases: append([]string(nil), DefaultPhrases...), Pinned: -1}
}

func (b PhraseBook) Validate() error {
	if len(b.Phrases) == 0 {
		return ErrNoPhrases
	}
	if len(b.Phrases) > MaxPhrases {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPhrases, len(b.Phrases), MaxPhrases)
	}
	if b.Pinned >= len(b.Phrases) {
		return fmt.Errorf("%w: %d", ErrPhraseIndex, b.Pinned)
	}
	return nil
}

// Cleaned drops blank phrases. A pin that pointed at a dropped or shifted
// phrase is released.
func (b PhraseBook) Cleaned() PhraseBook {
	out := PhraseBook{Phrases: make([]string, 0, len(b.Phrases)), Pinned: -1}
	for i, p := range b.Phrases {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if i == b.Pinned {
			out.Pinned = len(out.Phrases)
		}
		out.Phrases = append(out.Phrases, p)
	}
	return out
}

func (b PhraseBook) Add(phrase string) (PhraseBook, error) {
	if len(b.Phrases) >= MaxPhrases {
		return b, ErrTooManyPhrases
	}
	b.Phrases = append(append([]string(nil), b.Phrases...), phrase)
	return b, nil
}

func (b PhraseBook) Remove(idx int) (PhraseBook, error) {
	if idx < 0 || idx >= len(b.Phrases) {
		return b, fmt.Errorf("%w: %d", ErrPhraseIndex, idx)
	}
	if len(b.Phrases) <= 1 {
		return b, ErrNoPhrases
	}
	next := make([]string, 0, len(b.Phrases)-1)
	next = append(next, b.Phrases[:idx]...)
	next = append(next, b.Phrases[idx+1:]...)
	switch {
	case b.Pinned == idx:
		b.Pinned = -1
	case b.Pinned > idx:
		b.Pinned--
	}
	b.Phrases = next
	return b, nil
}

func (b PhraseBook) Pin(idx int) (PhraseBook, error) {
	if idx < -1 || idx >= len(b.Phrases) {
		return b, fmt.Errorf("%w: %d", ErrPhraseIndex, idx)
	}
	b.Pinned = idx
	return b, nil
}

// Daily returns the pinned phrase, or a random one when nothing is pinned.
func (b PhraseBook) Daily(r *rand.Rand) string {
	if b.Pinned >= 0 && b.Pinned < len(b.Phrases) {
		return b.Phrases[b.Pinned]
	}
	if len(b.Phrases) == 0 {
		return ""
	}
	if r == nil {
		return b.Phrases[rand.IntN(len(b.Phrases))]
	}
	return b.Phrases[r.IntN(len(b.Phrases))]
}
