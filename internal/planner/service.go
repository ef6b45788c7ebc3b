// Package planner coordinates parsing, storage and day-level bookkeeping for
// the TUI, the CLI and the file watcher.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/scratchpad"
	"github.com/sandeepkv93/goodbuddi/internal/storage"
)

// PreviewLimit is the number of event titles shown per day in the week view.
const PreviewLimit = 3

type Service struct {
	repo   storage.Repository
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(repo storage.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Now() time.Time { return s.now() }

func (s *Service) Today() string { return model.DateKey(s.now()) }

// Commit parses text and replaces whatever was stored for dateKey.
func (s *Service) Commit(ctx context.Context, dateKey, text string) (model.DayPlan, error) {
	if _, err := model.ParseDateKey(dateKey); err != nil {
		return model.DayPlan{}, err
	}
	plan := model.DayPlan{
		DateKey:    dateKey,
		Scratchpad: text,
		Events:     scratchpad.Parse(text),
		UpdatedAt:  s.now(),
	}
	if err := s.repo.SaveDayPlan(ctx, plan); err != nil {
		return model.DayPlan{}, fmt.Errorf("save plan %s: %w", dateKey, err)
	}
	s.logger.Info("plan_committed",
		zap.String("date_key", dateKey),
		zap.Int("events", len(plan.Events)),
	)
	return plan, nil
}

// Load returns the stored plan for dateKey or an empty plan.
func (s *Service) Load(ctx context.Context, dateKey string) (model.DayPlan, error) {
	plan, err := s.repo.GetDayPlan(ctx, dateKey)
	if errors.Is(err, storage.ErrNotFound) {
		return model.DayPlan{DateKey: dateKey, Events: make([]model.Event, 0)}, nil
	}
	if err != nil {
		return model.DayPlan{}, fmt.Errorf("load plan %s: %w", dateKey, err)
	}
	return plan, nil
}

// Week returns seven plans starting at the Monday of the week containing
// day. Days without a stored plan come back empty.
func (s *Service) Week(ctx context.Context, day time.Time) ([]model.DayPlan, error) {
	days := model.WeekDays(model.MondayOfWeek(day))
	stored, err := s.repo.ListDayPlans(ctx, storage.DayPlanRange{
		FromKey: model.DateKey(days[0]),
		ToKey:   model.DateKey(days[6]),
	})
	if err != nil {
		return nil, fmt.Errorf("list week: %w", err)
	}
	byKey := make(map[string]model.DayPlan, len(stored))
	for _, p := range stored {
		byKey[p.DateKey] = p
	}
	out := make([]model.DayPlan, 0, len(days))
	for _, d := range days {
		key := model.DateKey(d)
		if p, ok := byKey[key]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, model.DayPlan{DateKey: key, Events: make([]model.Event, 0)})
	}
	return out, nil
}

// CompleteActivity marks an activity done in plan and persists the event.
func (s *Service) CompleteActivity(ctx context.Context, plan *model.DayPlan, eventID, activityID string) (model.Event, error) {
	return s.updateActivity(ctx, plan, eventID, func(ev *model.Event) error {
		return ev.CompleteActivity(activityID)
	})
}

func (s *Service) SkipActivity(ctx context.Context, plan *model.DayPlan, eventID, activityID string) (model.Event, error) {
	return s.updateActivity(ctx, plan, eventID, func(ev *model.Event) error {
		return ev.SkipActivity(activityID)
	})
}

func (s *Service) updateActivity(ctx context.Context, plan *model.DayPlan, eventID string, fn func(*model.Event) error) (model.Event, error) {
	idx, err := model.FindEvent(plan.Events, eventID)
	if err != nil {
		return model.Event{}, err
	}
	next := model.CloneEvents(plan.Events[idx : idx+1])[0]
	if err := fn(&next); err != nil {
		return model.Event{}, err
	}
	if err := s.repo.SaveEventProgress(ctx, next); err != nil {
		return model.Event{}, fmt.Errorf("save progress for %s: %w", eventID, err)
	}
	plan.Events[idx] = next
	return next, nil
}

// Reflect stores the end-of-day reflection for plan's date.
func (s *Service) Reflect(ctx context.Context, plan model.DayPlan, exciting string) (model.Reflection, error) {
	r := model.Reflection{
		DateKey:   plan.DateKey,
		Completed: model.CompletedActivityNames(plan.Events),
		Exciting:  exciting,
		SavedAt:   s.now(),
	}
	if err := s.repo.SaveReflection(ctx, r); err != nil {
		return model.Reflection{}, fmt.Errorf("save reflection %s: %w", plan.DateKey, err)
	}
	s.logger.Info("day_reflected", zap.String("date_key", plan.DateKey), zap.Int("completed", len(r.Completed)))
	return r, nil
}

func (s *Service) Reflection(ctx context.Context, dateKey string) (model.Reflection, bool, error) {
	r, err := s.repo.GetReflection(ctx, dateKey)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Reflection{}, false, nil
	}
	if err != nil {
		return model.Reflection{}, false, err
	}
	return r, true, nil
}

func (s *Service) Phrases(ctx context.Context) (model.PhraseBook, error) {
	return s.repo.GetPhraseBook(ctx)
}

// SavePhrases drops blank phrases before storing the book.
func (s *Service) SavePhrases(ctx context.Context, book model.PhraseBook) (model.PhraseBook, error) {
	cleaned := book.Cleaned()
	if err := s.repo.SavePhraseBook(ctx, cleaned); err != nil {
		return model.PhraseBook{}, err
	}
	return cleaned, nil
}
